// Package levels provides the level configuration maintenance commands.
package levels

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	appent "github.com/atelier-community/atelier/internal/application/entitlement"
	"github.com/atelier-community/atelier/internal/application/levelconfig/dto"
	lcusecases "github.com/atelier-community/atelier/internal/application/levelconfig/usecases"
	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/work"
	"github.com/atelier-community/atelier/internal/infrastructure/cache"
	"github.com/atelier-community/atelier/internal/infrastructure/database"
	"github.com/atelier-community/atelier/internal/infrastructure/persistence/seeds"
	"github.com/atelier-community/atelier/internal/infrastructure/repository"
	"github.com/atelier-community/atelier/internal/interfaces/cli/bootstrap"
	"github.com/atelier-community/atelier/internal/shared/services/markdown"
)

var (
	env        string
	configPath string
	seedFile   string
	showRank   int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Level configuration tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Upsert level configurations from a YAML file",
		RunE:  runSeed,
	}
	seed.Flags().StringVarP(&seedFile, "file", "f", "configs/levels.yaml", "Seed file")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective entitlements of a rank",
		RunE:  runShow,
	}
	show.Flags().IntVarP(&showRank, "rank", "r", 0, "Rank value")

	cmd.AddCommand(seed, show)
	return cmd
}

type upserter interface {
	Execute(ctx context.Context, rank int, req dto.UpsertLevelConfigRequest) (*dto.LevelConfigResponse, error)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(bootstrap.ResolveEnv(env), configPath)
	if err != nil {
		return err
	}

	entries, err := seeds.LoadLevelSeedsFile(seedFile)
	if err != nil {
		return err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	ctx := commandContext(cmd)
	redisClient, err := bootstrap.OpenRedis(ctx, cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	repo := repository.NewLevelConfigRepository(database.Get(), log)
	invalidator := cache.NewCachedLevelConfigReader(redisClient, repo, cfg.Entitlement.CacheTTL(), cfg.Entitlement.NullTTL(), log)
	uc := lcusecases.NewUpsertLevelConfigUseCase(repo, invalidator, markdown.NewRenderer(), log)

	return applySeeds(ctx, uc, entries, cmd.OutOrStdout())
}

func applySeeds(ctx context.Context, uc upserter, entries []seeds.LevelSeed, out io.Writer) error {
	for _, s := range entries {
		resp, err := uc.Execute(ctx, s.Rank, s.Request())
		if err != nil {
			return fmt.Errorf("seed rank %d: %w", s.Rank, err)
		}
		fmt.Fprintf(out, "seeded rank %d (%s)\n", resp.Rank, resp.Name)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(bootstrap.ResolveEnv(env), configPath)
	if err != nil {
		return err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	repo := repository.NewLevelConfigRepository(database.Get(), log)
	policies := appent.NewPolicyTable(repo, appent.NopRecorder(), log)
	resolver := appent.NewResolver(policies, appent.NopRecorder(), log)

	return writeRankTable(commandContext(cmd), cmd.OutOrStdout(), resolver, policies, level.Of(showRank))
}

type rankResolver interface {
	ResolveAll(ctx context.Context, viewer *work.Viewer, features ...entitlement.Feature) map[entitlement.Feature]entitlement.Result
}

type quotaSource interface {
	QuotaFor(ctx context.Context, rank level.Rank) (int, error)
}

func writeRankTable(ctx context.Context, out io.Writer, resolver rankResolver, quotas quotaSource, rank level.Rank) error {
	var viewer *work.Viewer
	if !rank.IsGuest() {
		viewer = &work.Viewer{Rank: rank}
	}
	results := resolver.ResolveAll(ctx, viewer, entitlement.AllFeatures()...)

	fmt.Fprintf(out, "rank %d (%s)\n", rank.Int(), rank.Name())

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FEATURE\tSTATUS\tTARGET\tMESSAGE")
	for _, f := range entitlement.AllFeatures() {
		r := results[f]
		target := "-"
		if r.TargetLevelName != nil {
			target = *r.TargetLevelName
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f, r.Status, target, r.Message)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	quota, err := quotas.QuotaFor(ctx, rank)
	if err != nil {
		quota = entitlement.DefaultQuota(rank)
	}
	if quota < 0 {
		fmt.Fprintln(out, "daily uploads: unlimited")
	} else {
		fmt.Fprintf(out, "daily uploads: %d\n", quota)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

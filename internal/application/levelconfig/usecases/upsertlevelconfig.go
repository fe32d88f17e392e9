package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/text/cases"

	"github.com/atelier-community/atelier/internal/application/levelconfig/dto"
	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/levelconfig"
	"github.com/atelier-community/atelier/internal/shared/errors"
	"github.com/atelier-community/atelier/internal/shared/logger"
	"github.com/atelier-community/atelier/internal/shared/services/markdown"
	"github.com/atelier-community/atelier/internal/shared/utils"
)

// UpsertLevelConfigUseCase creates or replaces the configuration of a rank
type UpsertLevelConfigUseCase struct {
	repo        levelconfig.Repository
	invalidator levelconfig.Invalidator
	renderer    markdown.Renderer
	logger      logger.Interface
}

// NewUpsertLevelConfigUseCase creates a new upsert level config use case
func NewUpsertLevelConfigUseCase(
	repo levelconfig.Repository,
	invalidator levelconfig.Invalidator,
	renderer markdown.Renderer,
	logger logger.Interface,
) *UpsertLevelConfigUseCase {
	return &UpsertLevelConfigUseCase{
		repo:        repo,
		invalidator: invalidator,
		renderer:    renderer,
		logger:      logger,
	}
}

// Execute validates the request and stores it as the row for rank
func (uc *UpsertLevelConfigUseCase) Execute(
	ctx context.Context,
	rank int,
	req dto.UpsertLevelConfigRequest,
) (*dto.LevelConfigResponse, error) {
	uc.logger.Infow("executing upsert level config use case", "rank", rank)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	perms, err := parsePermissions(req.Permissions)
	if err != nil {
		uc.logger.Warnw("invalid level permissions", "rank", rank, "error", err)
		return nil, err
	}

	description, err := uc.renderer.ToHTML(req.Description)
	if err != nil {
		return nil, errors.NewValidationError("invalid description markdown", err.Error())
	}
	display := levelconfig.Display{
		Name:        uc.renderer.StripTags(req.Name),
		Description: description,
		Color:       req.Color,
		Icon:        uc.renderer.StripTags(req.Icon),
	}

	r := level.Of(rank)
	if err := uc.checkNameUnique(ctx, r, display.Name); err != nil {
		return nil, err
	}

	cfg, err := uc.repo.FindByRank(ctx, r)
	switch {
	case err == nil:
		err = cfg.Replace(display, perms, req.UploadQuota)
	case stderrors.Is(err, levelconfig.ErrLevelConfigNotFound):
		cfg, err = levelconfig.NewLevelConfig(r, display, perms, req.UploadQuota)
	default:
		uc.logger.Errorw("failed to load level config", "rank", rank, "error", err)
		return nil, fmt.Errorf("failed to load level config: %w", err)
	}
	if err != nil {
		return nil, errors.NewValidationError("invalid level config", err.Error())
	}

	if err := uc.repo.Upsert(ctx, cfg); err != nil {
		uc.logger.Errorw("failed to save level config", "rank", rank, "error", err)
		return nil, fmt.Errorf("failed to save level config: %w", err)
	}

	if err := uc.invalidator.Invalidate(ctx, r); err != nil {
		uc.logger.Warnw("failed to invalidate level config cache", "rank", rank, "error", err)
	}

	uc.logger.Infow("level config saved", "rank", rank, "version", cfg.Version())
	return dto.ToLevelConfigResponse(cfg), nil
}

// checkNameUnique rejects a name that differs from another rank's only by case.
func (uc *UpsertLevelConfigUseCase) checkNameUnique(ctx context.Context, rank level.Rank, name string) error {
	existing, err := uc.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list level configs: %w", err)
	}

	fold := cases.Fold()
	want := fold.String(name)
	for _, cfg := range existing {
		if cfg.Rank() != rank && fold.String(cfg.Name()) == want {
			return errors.NewValidationError("level name already in use", fmt.Sprintf("rank %d", cfg.Rank().Int()))
		}
	}
	return nil
}

func parsePermissions(raw map[string]string) (levelconfig.Permissions, error) {
	statuses := make(map[entitlement.Feature]entitlement.Status, len(raw))
	for k, v := range raw {
		f, err := entitlement.ParseFeature(k)
		if err != nil {
			return levelconfig.Permissions{}, errors.NewValidationError("unknown feature", k)
		}
		s, err := entitlement.ParseStatus(v)
		if err != nil {
			return levelconfig.Permissions{}, errors.NewValidationError("invalid status", fmt.Sprintf("%s: %s", k, v))
		}
		statuses[f] = s
	}

	perms, err := levelconfig.NewPermissions(statuses)
	if err != nil {
		return levelconfig.Permissions{}, errors.NewValidationError("invalid permissions", err.Error())
	}
	if !perms.IsComplete() {
		return levelconfig.Permissions{}, errors.NewValidationError("permissions must configure every feature", fmt.Sprintf("missing %v", perms.Missing()))
	}
	return perms, nil
}

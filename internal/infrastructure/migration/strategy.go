package migration

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/atelier-community/atelier/internal/shared/logger"
)

//go:embed scripts/*.sql
var embeddedScripts embed.FS

// Scripts returns the embedded SQL migrations rooted at their directory.
func Scripts() fs.FS {
	sub, err := fs.Sub(embeddedScripts, "scripts")
	if err != nil {
		panic(err)
	}
	return sub
}

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate brings the schema up to date
	Migrate(ctx context.Context) error
	// GetName returns the strategy name
	GetName() string
}

// GooseStrategy applies the embedded SQL scripts with goose.
type GooseStrategy struct {
	provider *goose.Provider
	logger   logger.Interface
}

// NewGooseStrategy creates a goose strategy for db. dialect is a goose
// dialect such as goose.DialectMySQL.
func NewGooseStrategy(db *gorm.DB, dialect goose.Dialect, scripts fs.FS) (*GooseStrategy, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	provider, err := goose.NewProvider(dialect, sqlDB, scripts)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}

	return &GooseStrategy{
		provider: provider,
		logger:   logger.WithComponent("migration.goose"),
	}, nil
}

// Migrate applies every pending migration
func (s *GooseStrategy) Migrate(ctx context.Context) error {
	currentVersion, err := s.provider.GetDBVersion(ctx)
	if err != nil {
		s.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}

	s.logger.Infow("current migration status", "version", currentVersion)

	results, err := s.provider.Up(ctx)
	if err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := s.provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion,
		"applied", len(results))

	return nil
}

// GetName returns the strategy name
func (s *GooseStrategy) GetName() string {
	return "goose"
}

// MigrateDown rolls back the given number of migrations
func (s *GooseStrategy) MigrateDown(ctx context.Context, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	for i := 0; i < steps; i++ {
		if _, err := s.provider.Down(ctx); err != nil {
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	s.logger.Infow("down migration completed successfully")
	return nil
}

// MigrationStatus is one line of the status report.
type MigrationStatus struct {
	Version int64
	Path    string
	Applied bool
}

// Status reports the state of every known migration
func (s *GooseStrategy) Status(ctx context.Context) ([]MigrationStatus, error) {
	statuses, err := s.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	out := make([]MigrationStatus, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, MigrationStatus{
			Version: st.Source.Version,
			Path:    st.Source.Path,
			Applied: st.State == goose.StateApplied,
		})
	}
	return out, nil
}

// Sources lists the migrations known to the provider.
func (s *GooseStrategy) Sources() []MigrationStatus {
	sources := s.provider.ListSources()
	out := make([]MigrationStatus, 0, len(sources))
	for _, src := range sources {
		out = append(out, MigrationStatus{Version: src.Version, Path: src.Path})
	}
	return out
}

// AutoMigrateStrategy creates tables from the GORM models. It is meant for
// local SQLite databases where the MySQL scripts do not apply.
type AutoMigrateStrategy struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewAutoMigrateStrategy creates an auto-migrate strategy
func NewAutoMigrateStrategy(db *gorm.DB) *AutoMigrateStrategy {
	return &AutoMigrateStrategy{
		db:     db,
		logger: logger.WithComponent("migration.automigrate"),
	}
}

// Migrate runs gorm AutoMigrate over AutoMigrateModels
func (s *AutoMigrateStrategy) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(AutoMigrateModels()...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	s.logger.Infow("auto migration completed", "models", len(AutoMigrateModels()))
	return nil
}

// GetName returns the strategy name
func (s *AutoMigrateStrategy) GetName() string {
	return "automigrate"
}

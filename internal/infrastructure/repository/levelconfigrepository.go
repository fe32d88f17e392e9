package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/levelconfig"
	"github.com/atelier-community/atelier/internal/infrastructure/persistence/mappers"
	"github.com/atelier-community/atelier/internal/infrastructure/persistence/models"
	"github.com/atelier-community/atelier/internal/shared/logger"
)

// LevelConfigRepository implements levelconfig.Repository
type LevelConfigRepository struct {
	db     *gorm.DB
	logger logger.Interface
	mapper mappers.LevelConfigMapper
}

// NewLevelConfigRepository creates a new LevelConfigRepository
func NewLevelConfigRepository(db *gorm.DB, logger logger.Interface) *LevelConfigRepository {
	return &LevelConfigRepository{
		db:     db,
		logger: logger,
		mapper: mappers.NewLevelConfigMapper(),
	}
}

// FindByRank retrieves the row of a rank
func (r *LevelConfigRepository) FindByRank(ctx context.Context, rank level.Rank) (*levelconfig.LevelConfig, error) {
	var model models.LevelConfigModel

	err := r.db.WithContext(ctx).
		Where("rank_value = ?", rank.Int()).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, levelconfig.ErrLevelConfigNotFound
		}
		r.logger.Errorw("failed to get level config by rank", "rank", rank.Int(), "error", err)
		return nil, fmt.Errorf("failed to get level config by rank: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// List retrieves every row ordered by rank
func (r *LevelConfigRepository) List(ctx context.Context) ([]*levelconfig.LevelConfig, error) {
	var modelList []*models.LevelConfigModel

	err := r.db.WithContext(ctx).
		Order("rank_value ASC").
		Find(&modelList).Error
	if err != nil {
		r.logger.Errorw("failed to list level configs", "error", err)
		return nil, fmt.Errorf("failed to list level configs: %w", err)
	}

	return r.mapper.ToDomainList(modelList)
}

// Upsert creates or replaces the row of the config's rank
func (r *LevelConfigRepository) Upsert(ctx context.Context, cfg *levelconfig.LevelConfig) error {
	model, err := r.mapper.ToModel(cfg)
	if err != nil {
		return err
	}
	// The row is keyed by rank; let the insert path assign its own ID.
	model.ID = 0

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "rank_value"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "color", "icon", "permissions", "upload_quota", "version", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert level config", "rank", cfg.Rank().Int(), "error", err)
		return fmt.Errorf("failed to upsert level config: %w", err)
	}

	// Update the domain entity with the generated ID if it was an insert
	if cfg.ID() == 0 {
		cfg.SetID(model.ID)
	}

	return nil
}

// Delete removes the row of a rank
func (r *LevelConfigRepository) Delete(ctx context.Context, rank level.Rank) error {
	result := r.db.WithContext(ctx).
		Where("rank_value = ?", rank.Int()).
		Delete(&models.LevelConfigModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete level config", "rank", rank.Int(), "error", result.Error)
		return fmt.Errorf("failed to delete level config: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return levelconfig.ErrLevelConfigNotFound
	}

	return nil
}

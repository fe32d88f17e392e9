package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/atelier-community/atelier/internal/application/levelconfig/dto"
	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/levelconfig"
	"github.com/atelier-community/atelier/internal/shared/errors"
	"github.com/atelier-community/atelier/internal/shared/logger"
)

// GetLevelConfigUseCase handles reading the stored configuration of one rank
type GetLevelConfigUseCase struct {
	repo   levelconfig.Repository
	logger logger.Interface
}

// NewGetLevelConfigUseCase creates a new get level config use case
func NewGetLevelConfigUseCase(repo levelconfig.Repository, logger logger.Interface) *GetLevelConfigUseCase {
	return &GetLevelConfigUseCase{repo: repo, logger: logger}
}

// Execute executes the get level config use case
func (uc *GetLevelConfigUseCase) Execute(ctx context.Context, rank int) (*dto.LevelConfigResponse, error) {
	cfg, err := uc.repo.FindByRank(ctx, level.Of(rank))
	if stderrors.Is(err, levelconfig.ErrLevelConfigNotFound) {
		return nil, errors.NewNotFoundError("level config not found", fmt.Sprintf("rank %d", rank))
	}
	if err != nil {
		uc.logger.Errorw("failed to get level config", "rank", rank, "error", err)
		return nil, fmt.Errorf("failed to get level config: %w", err)
	}
	return dto.ToLevelConfigResponse(cfg), nil
}

package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/levelconfig"
	"github.com/atelier-community/atelier/internal/shared/errors"
	"github.com/atelier-community/atelier/internal/shared/logger"
)

// DeleteLevelConfigUseCase removes the stored row of a rank so that the
// compiled-in defaults apply again
type DeleteLevelConfigUseCase struct {
	repo        levelconfig.Repository
	invalidator levelconfig.Invalidator
	logger      logger.Interface
}

// NewDeleteLevelConfigUseCase creates a new delete level config use case
func NewDeleteLevelConfigUseCase(
	repo levelconfig.Repository,
	invalidator levelconfig.Invalidator,
	logger logger.Interface,
) *DeleteLevelConfigUseCase {
	return &DeleteLevelConfigUseCase{repo: repo, invalidator: invalidator, logger: logger}
}

// Execute executes the delete level config use case
func (uc *DeleteLevelConfigUseCase) Execute(ctx context.Context, rank int) error {
	uc.logger.Infow("executing delete level config use case", "rank", rank)

	r := level.Of(rank)
	if err := uc.repo.Delete(ctx, r); err != nil {
		if stderrors.Is(err, levelconfig.ErrLevelConfigNotFound) {
			return errors.NewNotFoundError("level config not found", fmt.Sprintf("rank %d", rank))
		}
		uc.logger.Errorw("failed to delete level config", "rank", rank, "error", err)
		return fmt.Errorf("failed to delete level config: %w", err)
	}

	if err := uc.invalidator.Invalidate(ctx, r); err != nil {
		uc.logger.Warnw("failed to invalidate level config cache", "rank", rank, "error", err)
	}

	uc.logger.Infow("level config deleted", "rank", rank)
	return nil
}

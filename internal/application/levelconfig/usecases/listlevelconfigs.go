package usecases

import (
	"context"
	"fmt"

	"github.com/atelier-community/atelier/internal/application/levelconfig/dto"
	"github.com/atelier-community/atelier/internal/domain/levelconfig"
	"github.com/atelier-community/atelier/internal/shared/logger"
)

// ListLevelConfigsUseCase lists every stored level configuration
type ListLevelConfigsUseCase struct {
	repo   levelconfig.Repository
	logger logger.Interface
}

// NewListLevelConfigsUseCase creates a new list level configs use case
func NewListLevelConfigsUseCase(repo levelconfig.Repository, logger logger.Interface) *ListLevelConfigsUseCase {
	return &ListLevelConfigsUseCase{repo: repo, logger: logger}
}

// Execute executes the list level configs use case
func (uc *ListLevelConfigsUseCase) Execute(ctx context.Context) ([]*dto.LevelConfigResponse, error) {
	cfgs, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list level configs", "error", err)
		return nil, fmt.Errorf("failed to list level configs: %w", err)
	}
	return dto.ToLevelConfigResponses(cfgs), nil
}

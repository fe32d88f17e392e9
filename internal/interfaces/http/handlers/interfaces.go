package handlers

import (
	"context"

	entdto "github.com/atelier-community/atelier/internal/application/entitlement/dto"
	lcdto "github.com/atelier-community/atelier/internal/application/levelconfig/dto"
	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/work"
)

// Engine interfaces

type responseAssembler interface {
	BuildWorkResponse(ctx context.Context, w *work.Work, viewer *work.Viewer) (*entdto.WorkResponse, error)
	BuildWorkListResponse(ctx context.Context, works []*work.Work, viewer *work.Viewer) (*entdto.WorkListResponse, error)
	BuildViewerEntitlements(ctx context.Context, viewer *work.Viewer) *entdto.ViewerEntitlements
}

type featureResolver interface {
	Resolve(ctx context.Context, viewer *work.Viewer, feature entitlement.Feature) entitlement.Result
}

type uploadConsumer interface {
	Consume(ctx context.Context, viewer *work.Viewer) (int, error)
}

// Use case interfaces for LevelConfigHandler

type upsertLevelConfigUseCase interface {
	Execute(ctx context.Context, rank int, req lcdto.UpsertLevelConfigRequest) (*lcdto.LevelConfigResponse, error)
}

type getLevelConfigUseCase interface {
	Execute(ctx context.Context, rank int) (*lcdto.LevelConfigResponse, error)
}

type listLevelConfigsUseCase interface {
	Execute(ctx context.Context) ([]*lcdto.LevelConfigResponse, error)
}

type deleteLevelConfigUseCase interface {
	Execute(ctx context.Context, rank int) error
}

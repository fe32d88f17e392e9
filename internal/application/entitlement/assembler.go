package entitlement

import (
	"context"

	"github.com/atelier-community/atelier/internal/application/entitlement/dto"
	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/work"
	"github.com/atelier-community/atelier/internal/shared/logger"
)

// reportable is the ordered set of features exposed in permissionStatus.
var reportable = []struct {
	key     string
	feature entitlement.Feature
}{
	{"prompt", entitlement.FeatureViewPrompt},
	{"source", entitlement.FeatureViewSource},
	{"vote", entitlement.FeatureVote},
	{"comment", entitlement.FeatureComment},
	{"upload", entitlement.FeatureUpload},
	{"premiumContent", entitlement.FeatureViewPremiumContent},
}

// Assembler builds the response bodies returned to clients.
type Assembler struct {
	resolver  *Resolver
	projector *Projector
	quotas    *QuotaResolver
	logger    logger.Interface
}

// NewAssembler creates a response assembler.
func NewAssembler(resolver *Resolver, projector *Projector, quotas *QuotaResolver, logger logger.Interface) *Assembler {
	return &Assembler{
		resolver:  resolver,
		projector: projector,
		quotas:    quotas,
		logger:    logger,
	}
}

// BuildWorkResponse projects w for viewer and attaches the viewer's level and
// permission metadata.
func (a *Assembler) BuildWorkResponse(ctx context.Context, w *work.Work, viewer *work.Viewer) (*dto.WorkResponse, error) {
	proj, err := a.projector.Project(ctx, w, viewer)
	if err != nil {
		return nil, err
	}

	resp := &dto.WorkResponse{
		Visible:          proj.Visible,
		PermissionStatus: a.permissionStatus(ctx, viewer),
		UserLevel:        UserLevelOf(viewer),
	}
	if proj.Visible {
		resp.RedactedWork = &proj.Work
	}
	return resp, nil
}

// BuildWorkListResponse projects works for viewer, keeping only visible ones.
func (a *Assembler) BuildWorkListResponse(ctx context.Context, works []*work.Work, viewer *work.Viewer) (*dto.WorkListResponse, error) {
	items, err := a.projector.ProjectList(ctx, works, viewer)
	if err != nil {
		return nil, err
	}
	return &dto.WorkListResponse{
		Items:            items,
		Total:            len(items),
		PermissionStatus: a.permissionStatus(ctx, viewer),
		UserLevel:        UserLevelOf(viewer),
	}, nil
}

// BuildViewerEntitlements summarises every non-hidden feature for viewer.
func (a *Assembler) BuildViewerEntitlements(ctx context.Context, viewer *work.Viewer) *dto.ViewerEntitlements {
	all := a.resolver.ResolveAll(ctx, viewer, entitlement.AllFeatures()...)
	features := make(map[entitlement.Feature]entitlement.Result, len(all))
	for f, r := range all {
		if r.Status != entitlement.StatusHidden {
			features[f] = r
		}
	}

	out := &dto.ViewerEntitlements{
		UserLevel:  UserLevelOf(viewer),
		Features:   features,
		DailyQuota: a.quotas.DailyQuota(ctx, viewer),
	}
	if all[entitlement.FeatureUpload].Status == entitlement.StatusVisible {
		out.RemainingUploads = a.remaining(ctx, viewer)
	}
	return out
}

// UserLevelOf describes the viewer's rank and next step.
func UserLevelOf(viewer *work.Viewer) dto.UserLevel {
	rank := work.RankOf(viewer)
	ul := dto.UserLevel{Current: rank, Name: rank.Name()}
	if next, ok := rank.Next(); ok {
		ul.NextLevel = &next
	}
	return ul
}

func (a *Assembler) permissionStatus(ctx context.Context, viewer *work.Viewer) dto.PermissionStatus {
	out := make(dto.PermissionStatus, len(reportable))
	for _, rf := range reportable {
		result := a.resolver.Resolve(ctx, viewer, rf.feature)
		if result.Status == entitlement.StatusHidden {
			continue
		}

		entry := dto.PermissionEntry{Result: result}
		if rf.feature == entitlement.FeatureUpload && result.Status == entitlement.StatusVisible {
			quota := a.quotas.DailyQuota(ctx, viewer)
			entry.DailyQuota = &quota
			entry.RemainingUploads = a.remaining(ctx, viewer)
		}
		out[rf.key] = entry
	}
	return out
}

func (a *Assembler) remaining(ctx context.Context, viewer *work.Viewer) *int {
	n, err := a.quotas.Remaining(ctx, viewer)
	if err != nil {
		a.logger.Warnw("failed to read remaining uploads", "error", err)
		return nil
	}
	return &n
}

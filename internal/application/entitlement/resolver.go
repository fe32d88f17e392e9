package entitlement

import (
	"context"
	"fmt"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/work"
	"github.com/atelier-community/atelier/internal/shared/logger"
)

// Resolver turns a (viewer, feature) pair into a Result. It never returns an
// error; anything that goes wrong resolves to HIDDEN.
type Resolver struct {
	policies PolicySource
	recorder Recorder
	logger   logger.Interface
}

// NewResolver creates a resolver. A nil recorder disables metrics.
func NewResolver(policies PolicySource, recorder Recorder, logger logger.Interface) *Resolver {
	if recorder == nil {
		recorder = NopRecorder()
	}
	return &Resolver{
		policies: policies,
		recorder: recorder,
		logger:   logger,
	}
}

// Resolve resolves one feature. A nil viewer is a guest.
func (r *Resolver) Resolve(ctx context.Context, viewer *work.Viewer, feature entitlement.Feature) (result entitlement.Result) {
	defer func() {
		if p := recover(); p != nil {
			result = r.failClosed(viewer, feature, fmt.Errorf("panic: %v", p))
		}
	}()

	if viewer.IsAdmin() {
		result = entitlement.Result{HasAccess: true, Status: entitlement.StatusVisible}
		r.recorder.ObserveResolution(feature, result.Status)
		return result
	}

	rank := work.RankOf(viewer)
	policy, err := r.policies.PolicyFor(ctx, feature, rank)
	if err != nil {
		return r.failClosed(viewer, feature, err)
	}

	switch policy.Status {
	case entitlement.StatusVisible:
		result = entitlement.Result{HasAccess: true, Status: entitlement.StatusVisible, Message: msgGranted}
	case entitlement.StatusPrompt:
		result = r.prompt(ctx, rank, feature, policy)
	default:
		result = entitlement.Result{Status: entitlement.StatusHidden, Message: msgUnavailable}
	}

	r.recorder.ObserveResolution(feature, result.Status)
	return result
}

// ResolveAll resolves each feature for the same viewer.
func (r *Resolver) ResolveAll(ctx context.Context, viewer *work.Viewer, features ...entitlement.Feature) map[entitlement.Feature]entitlement.Result {
	out := make(map[entitlement.Feature]entitlement.Result, len(features))
	for _, f := range features {
		out[f] = r.Resolve(ctx, viewer, f)
	}
	return out
}

func (r *Resolver) prompt(ctx context.Context, rank level.Rank, feature entitlement.Feature, policy Policy) entitlement.Result {
	pt := entitlement.PromptUpgrade
	if rank.IsGuest() {
		pt = entitlement.PromptLogin
	}

	result := entitlement.Result{
		Status:     entitlement.StatusPrompt,
		PromptType: &pt,
	}

	target, ok := r.target(ctx, rank, feature, policy)
	name := ""
	if ok {
		name = target.Name()
		result.TargetRank = &target
		result.TargetLevelName = &name
	}
	result.Message = promptMessage(feature, pt, name)
	return result
}

// target is the static threshold for a default entry when that rank is still
// VISIBLE after stored overrides, otherwise the first canonical rank above
// rank at which the feature is VISIBLE. Ranks outside the canonical chain are
// never offered.
func (r *Resolver) target(ctx context.Context, rank level.Rank, feature entitlement.Feature, policy Policy) (level.Rank, bool) {
	if policy.FromDefault && policy.TargetRank != nil && r.visibleAt(ctx, feature, *policy.TargetRank) {
		return *policy.TargetRank, true
	}
	for _, candidate := range level.Above(rank) {
		if r.visibleAt(ctx, feature, candidate) {
			return candidate, true
		}
	}
	return 0, false
}

func (r *Resolver) visibleAt(ctx context.Context, feature entitlement.Feature, rank level.Rank) bool {
	p, err := r.policies.PolicyFor(ctx, feature, rank)
	return err == nil && p.Status == entitlement.StatusVisible
}

func (r *Resolver) failClosed(viewer *work.Viewer, feature entitlement.Feature, err error) entitlement.Result {
	r.logger.Warnw("entitlement resolution failed, denying access",
		"feature", feature,
		"rank", work.RankOf(viewer).Int(),
		"error", err,
	)
	r.recorder.IncFailClosed(feature)
	return entitlement.Result{Status: entitlement.StatusHidden, Message: msgUnavailable}
}

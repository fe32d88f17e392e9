package entitlement

import (
	"context"
	"fmt"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/work"
	"github.com/atelier-community/atelier/internal/shared/biztime"
	"github.com/atelier-community/atelier/internal/shared/errors"
	"github.com/atelier-community/atelier/internal/shared/logger"
)

// UploadCounter counts uploads per user and business day.
type UploadCounter interface {
	// Used returns the number of uploads already reserved on day.
	Used(ctx context.Context, userID uint, day string) (int, error)
	// Reserve takes one upload if fewer than limit are used and returns the
	// new count. ok is false when the limit was already reached.
	Reserve(ctx context.Context, userID uint, day string, limit int) (used int, ok bool, err error)
}

// QuotaResolver answers upload quota questions for a viewer.
type QuotaResolver struct {
	policies PolicySource
	resolver *Resolver
	counter  UploadCounter
	logger   logger.Interface
}

// NewQuotaResolver creates a quota resolver.
func NewQuotaResolver(policies PolicySource, resolver *Resolver, counter UploadCounter, logger logger.Interface) *QuotaResolver {
	return &QuotaResolver{
		policies: policies,
		resolver: resolver,
		counter:  counter,
		logger:   logger,
	}
}

// DailyQuota returns the viewer's daily upload quota: -1 unlimited, 0 none.
func (q *QuotaResolver) DailyQuota(ctx context.Context, viewer *work.Viewer) int {
	if viewer.IsAdmin() {
		return entitlement.UnlimitedQuota
	}
	rank := work.RankOf(viewer)
	quota, err := q.policies.QuotaFor(ctx, rank)
	if err != nil {
		q.logger.Warnw("failed to resolve upload quota, denying uploads",
			"rank", rank.Int(),
			"error", err,
		)
		return 0
	}
	return quota
}

// Remaining returns the uploads left today, -1 when unlimited.
func (q *QuotaResolver) Remaining(ctx context.Context, viewer *work.Viewer) (int, error) {
	quota := q.DailyQuota(ctx, viewer)
	if quota == entitlement.UnlimitedQuota {
		return entitlement.UnlimitedQuota, nil
	}
	if viewer == nil || quota <= 0 {
		return 0, nil
	}

	used, err := q.counter.Used(ctx, viewer.ID, biztime.DayKey(biztime.NowUTC()))
	if err != nil {
		return 0, fmt.Errorf("failed to read upload counter: %w", err)
	}
	return max(quota-used, 0), nil
}

// Consume reserves one upload for today and returns the uploads left.
func (q *QuotaResolver) Consume(ctx context.Context, viewer *work.Viewer) (int, error) {
	if viewer == nil {
		return 0, errors.NewUnauthorizedError("login required to upload")
	}

	result := q.resolver.Resolve(ctx, viewer, entitlement.FeatureUpload)
	if !result.HasAccess {
		return 0, errors.NewForbiddenError(result.Message)
	}

	quota := q.DailyQuota(ctx, viewer)
	if quota == entitlement.UnlimitedQuota {
		return entitlement.UnlimitedQuota, nil
	}
	if quota == 0 {
		return 0, errors.NewForbiddenError("no daily upload quota for your level")
	}

	used, ok, err := q.counter.Reserve(ctx, viewer.ID, biztime.DayKey(biztime.NowUTC()), quota)
	if err != nil {
		q.logger.Errorw("failed to reserve upload", "user_id", viewer.ID, "error", err)
		return 0, errors.NewInternalError("failed to reserve upload")
	}
	if !ok {
		q.logger.Infow("daily upload quota exhausted", "user_id", viewer.ID, "quota", quota)
		return 0, errors.NewQuotaExhaustedError("daily upload quota exhausted", fmt.Sprintf("quota: %d", quota))
	}

	q.logger.Infow("upload reserved", "user_id", viewer.ID, "used", used, "quota", quota)
	return quota - used, nil
}

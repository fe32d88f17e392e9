package entitlement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/level"
	apperrors "github.com/atelier-community/atelier/internal/shared/errors"
)

func TestQuotaResolver_DailyQuota(t *testing.T) {
	ctx := context.Background()
	e := newEngine(rowsReader())

	assert.Equal(t, 0, e.quotas.DailyQuota(ctx, nil))
	assert.Equal(t, 0, e.quotas.DailyQuota(ctx, viewerAt(level.Basic)))
	assert.Equal(t, 3, e.quotas.DailyQuota(ctx, viewerAt(level.Member)))
	assert.Equal(t, 10, e.quotas.DailyQuota(ctx, viewerAt(level.Premium)))
	assert.Equal(t, 50, e.quotas.DailyQuota(ctx, viewerAt(level.CoCreator)))
	assert.Equal(t, entitlement.UnlimitedQuota, e.quotas.DailyQuota(ctx, viewerAt(level.Founder)))
	assert.Equal(t, entitlement.UnlimitedQuota, e.quotas.DailyQuota(ctx, admin()))
}

func TestQuotaResolver_Remaining(t *testing.T) {
	ctx := context.Background()
	e := newEngine(rowsReader())
	member := viewerAt(level.Member)

	left, err := e.quotas.Remaining(ctx, member)
	require.NoError(t, err)
	assert.Equal(t, 3, left)

	e.counter.used[member.ID] = 5
	left, err = e.quotas.Remaining(ctx, member)
	require.NoError(t, err)
	assert.Equal(t, 0, left)

	left, err = e.quotas.Remaining(ctx, viewerAt(level.Founder))
	require.NoError(t, err)
	assert.Equal(t, entitlement.UnlimitedQuota, left)

	e.counter.err = errors.New("redis down")
	_, err = e.quotas.Remaining(ctx, member)
	assert.Error(t, err)
}

func TestQuotaResolver_Consume(t *testing.T) {
	ctx := context.Background()

	t.Run("guest is unauthorized", func(t *testing.T) {
		e := newEngine(rowsReader())
		_, err := e.quotas.Consume(ctx, nil)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
	})

	t.Run("prompted upload is forbidden", func(t *testing.T) {
		e := newEngine(rowsReader())
		_, err := e.quotas.Consume(ctx, viewerAt(level.Basic))
		assert.True(t, apperrors.IsForbiddenError(err))
		assert.False(t, apperrors.IsQuotaExhaustedError(err))
	})

	t.Run("member uses up the daily quota", func(t *testing.T) {
		e := newEngine(rowsReader())
		member := viewerAt(level.Member)

		for want := 2; want >= 0; want-- {
			left, err := e.quotas.Consume(ctx, member)
			require.NoError(t, err)
			assert.Equal(t, want, left)
		}

		_, err := e.quotas.Consume(ctx, member)
		assert.True(t, apperrors.IsForbiddenError(err))
		assert.True(t, apperrors.IsQuotaExhaustedError(err))
	})

	t.Run("visible upload with zero quota is forbidden", func(t *testing.T) {
		e := newEngine(rowsReader(row(t, level.Basic, map[entitlement.Feature]entitlement.Status{
			entitlement.FeatureUpload: entitlement.StatusVisible,
		}, nil)))
		_, err := e.quotas.Consume(ctx, viewerAt(level.Basic))
		assert.True(t, apperrors.IsForbiddenError(err))
	})

	t.Run("unlimited never touches the counter", func(t *testing.T) {
		e := newEngine(rowsReader())
		e.counter.err = errors.New("must not be called")

		left, err := e.quotas.Consume(ctx, viewerAt(level.Founder))
		require.NoError(t, err)
		assert.Equal(t, entitlement.UnlimitedQuota, left)
	})

	t.Run("counter failure is internal", func(t *testing.T) {
		e := newEngine(rowsReader())
		e.counter.err = errors.New("redis down")

		_, err := e.quotas.Consume(ctx, viewerAt(level.Premium))
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
	})
}

package entitlement

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/work"
)

func TestAssembler_Scenarios(t *testing.T) {
	ctx := context.Background()
	e := newEngine(rowsReader())

	t.Run("guest on a public work is asked to log in", func(t *testing.T) {
		resp, err := e.assembler.BuildWorkResponse(ctx, sampleWork(work.VisibilityPublic), nil)
		require.NoError(t, err)

		keys := keysOf(t, resp)
		assert.NotContains(t, keys, "prompt")
		prompt := resp.PermissionStatus["prompt"]
		require.NotNil(t, prompt.PromptType)
		assert.Equal(t, entitlement.PromptLogin, *prompt.PromptType)
		assert.NotContains(t, resp.PermissionStatus, "source")
		assert.NotContains(t, resp.PermissionStatus, "premiumContent")
	})

	t.Run("basic user is pointed at member", func(t *testing.T) {
		resp, err := e.assembler.BuildWorkResponse(ctx, sampleWork(work.VisibilityPublic), viewerAt(level.Basic))
		require.NoError(t, err)

		prompt := resp.PermissionStatus["prompt"]
		require.NotNil(t, prompt.TargetRank)
		assert.Equal(t, level.Member, *prompt.TargetRank)
		require.NotNil(t, prompt.TargetLevelName)
		assert.Equal(t, level.Member.Name(), *prompt.TargetLevelName)
	})

	t.Run("member sees the prompt text", func(t *testing.T) {
		resp, err := e.assembler.BuildWorkResponse(ctx, sampleWork(work.VisibilityPublic), viewerAt(level.Member))
		require.NoError(t, err)
		require.NotNil(t, resp.RedactedWork)
		require.NotNil(t, resp.Prompt)
		assert.Equal(t, "koi fish, neon, long exposure", *resp.Prompt)
		assert.NotContains(t, keysOf(t, resp), "repositoryUrl")
	})

	t.Run("co-creator sees the repository link", func(t *testing.T) {
		resp, err := e.assembler.BuildWorkResponse(ctx, sampleWork(work.VisibilityPublic), viewerAt(level.CoCreator))
		require.NoError(t, err)
		assert.Contains(t, keysOf(t, resp), "repositoryUrl")
	})

	t.Run("admin sees a private work of someone else", func(t *testing.T) {
		resp, err := e.assembler.BuildWorkResponse(ctx, sampleWork(work.VisibilityPrivate), admin())
		require.NoError(t, err)
		assert.True(t, resp.Visible)
		assert.NotNil(t, resp.Prompt)
		assert.NotNil(t, resp.RepositoryURL)
		for _, key := range []string{"prompt", "source", "vote", "comment", "upload", "premiumContent"} {
			require.Contains(t, resp.PermissionStatus, key)
			assert.True(t, resp.PermissionStatus[key].HasAccess, key)
		}
	})

	t.Run("basic upload is prompted without quota details", func(t *testing.T) {
		assert.Equal(t, 0, e.quotas.DailyQuota(ctx, viewerAt(level.Basic)))

		resp, err := e.assembler.BuildWorkResponse(ctx, sampleWork(work.VisibilityPublic), viewerAt(level.Basic))
		require.NoError(t, err)
		upload, ok := resp.PermissionStatus["upload"]
		require.True(t, ok)
		assert.Equal(t, entitlement.StatusPrompt, upload.Status)
		assert.Nil(t, upload.RemainingUploads)
		assert.Nil(t, upload.DailyQuota)
	})
}

func TestAssembler_UploadQuotaAttachedWhenVisible(t *testing.T) {
	ctx := context.Background()
	e := newEngine(rowsReader())
	premium := viewerAt(level.Premium)
	e.counter.used[premium.ID] = 4

	resp, err := e.assembler.BuildWorkResponse(ctx, sampleWork(work.VisibilityPublic), premium)
	require.NoError(t, err)

	upload := resp.PermissionStatus["upload"]
	require.NotNil(t, upload.DailyQuota)
	require.NotNil(t, upload.RemainingUploads)
	assert.Equal(t, 10, *upload.DailyQuota)
	assert.Equal(t, 6, *upload.RemainingUploads)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"remainingUploads":6`)
}

func TestAssembler_InvisibleWorkHasNoRecordFields(t *testing.T) {
	e := newEngine(rowsReader())

	resp, err := e.assembler.BuildWorkResponse(context.Background(), sampleWork(work.VisibilityPrivate), viewerAt(level.Member))
	require.NoError(t, err)
	assert.False(t, resp.Visible)

	keys := keysOf(t, resp)
	assert.NotContains(t, keys, "title")
	assert.Contains(t, keys, "permissionStatus")
	assert.Contains(t, keys, "userLevel")
}

func TestAssembler_ShapeIsStable(t *testing.T) {
	e := newEngine(rowsReader())
	viewers := []*work.Viewer{nil, viewerAt(level.Basic), viewerAt(level.Founder), admin()}

	var want []string
	for i, v := range viewers {
		resp, err := e.assembler.BuildWorkResponse(context.Background(), sampleWork(work.VisibilityPublic), v)
		require.NoError(t, err)

		var got []string
		for k := range keysOf(t, resp) {
			if k != "prompt" && k != "repositoryUrl" {
				got = append(got, k)
			}
		}
		if i == 0 {
			want = got
			continue
		}
		assert.ElementsMatch(t, want, got)
	}
}

func TestAssembler_UserLevel(t *testing.T) {
	ul := UserLevelOf(nil)
	assert.Equal(t, level.Guest, ul.Current)
	require.NotNil(t, ul.NextLevel)
	assert.Equal(t, level.Basic, ul.NextLevel.Level)

	ul = UserLevelOf(viewerAt(level.Founder))
	assert.Equal(t, "Founder", ul.Name)
	assert.Nil(t, ul.NextLevel)
}

func TestAssembler_BuildWorkListResponse(t *testing.T) {
	e := newEngine(rowsReader())
	works := []*work.Work{
		sampleWork(work.VisibilityPublic),
		sampleWork(work.VisibilityPrivate),
	}

	resp, err := e.assembler.BuildWorkListResponse(context.Background(), works, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Nil(t, resp.Items[0].Prompt)
	assert.Contains(t, resp.PermissionStatus, "vote")
}

func TestAssembler_BuildViewerEntitlements(t *testing.T) {
	e := newEngine(rowsReader())

	guest := e.assembler.BuildViewerEntitlements(context.Background(), nil)
	assert.NotContains(t, guest.Features, entitlement.FeatureViewSource)
	assert.Contains(t, guest.Features, entitlement.FeatureShare)
	assert.Equal(t, 0, guest.DailyQuota)
	assert.Nil(t, guest.RemainingUploads)

	member := e.assembler.BuildViewerEntitlements(context.Background(), viewerAt(level.Member))
	assert.Equal(t, 3, member.DailyQuota)
	require.NotNil(t, member.RemainingUploads)
	assert.Equal(t, 3, *member.RemainingUploads)
}

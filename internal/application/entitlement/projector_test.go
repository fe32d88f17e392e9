package entitlement

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/work"
	"github.com/atelier-community/atelier/internal/shared/authorization"
)

func sampleWork(visibility work.Visibility) *work.Work {
	return &work.Work{
		ID:            11,
		Title:         "Neon koi",
		Description:   "Koi in a neon pond",
		AuthorID:      7,
		AuthorName:    "mika",
		VoteCount:     12,
		CreatedAt:     testTime,
		UpdatedAt:     testTime,
		Visibility:    visibility,
		Prompt:        strPtr("koi fish, neon, long exposure"),
		RepositoryURL: strPtr("https://git.example.com/mika/koi"),
	}
}

func keysOf(t *testing.T, v any) map[string]json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestProjector_Project(t *testing.T) {
	ctx := context.Background()
	e := newEngine(rowsReader())

	t.Run("missing visibility is an error", func(t *testing.T) {
		w := sampleWork("")
		_, err := e.projector.Project(ctx, w, nil)
		assert.ErrorIs(t, err, work.ErrMissingVisibility)

		_, err = e.projector.Project(ctx, nil, nil)
		assert.ErrorIs(t, err, work.ErrMissingVisibility)
	})

	t.Run("guest gets no gated keys", func(t *testing.T) {
		p, err := e.projector.Project(ctx, sampleWork(work.VisibilityPublic), nil)
		require.NoError(t, err)
		assert.True(t, p.Visible)

		keys := keysOf(t, p.Work)
		assert.NotContains(t, keys, "prompt")
		assert.NotContains(t, keys, "repositoryUrl")
		assert.Contains(t, keys, "title")
	})

	t.Run("member sees the prompt only", func(t *testing.T) {
		p, err := e.projector.Project(ctx, sampleWork(work.VisibilityPublic), viewerAt(level.Member))
		require.NoError(t, err)
		require.NotNil(t, p.Work.Prompt)
		assert.Equal(t, "koi fish, neon, long exposure", *p.Work.Prompt)
		assert.Nil(t, p.Work.RepositoryURL)
	})

	t.Run("co-creator sees the repository", func(t *testing.T) {
		p, err := e.projector.Project(ctx, sampleWork(work.VisibilityPublic), viewerAt(level.CoCreator))
		require.NoError(t, err)
		require.NotNil(t, p.Work.RepositoryURL)
		assert.Equal(t, "https://git.example.com/mika/koi", *p.Work.RepositoryURL)
	})

	t.Run("missing gated field stays absent", func(t *testing.T) {
		w := sampleWork(work.VisibilityPublic)
		w.Prompt = nil
		p, err := e.projector.Project(ctx, w, viewerAt(level.Founder))
		require.NoError(t, err)
		assert.NotContains(t, keysOf(t, p.Work), "prompt")
	})

	t.Run("private is invisible to other viewers", func(t *testing.T) {
		for _, v := range []*work.Viewer{nil, viewerAt(level.Founder)} {
			p, err := e.projector.Project(ctx, sampleWork(work.VisibilityPrivate), v)
			require.NoError(t, err)
			assert.False(t, p.Visible)
		}
	})

	t.Run("author sees own private work in full", func(t *testing.T) {
		author := &work.Viewer{ID: 7, Rank: level.Guest, Role: authorization.RoleUser}
		p, err := e.projector.Project(ctx, sampleWork(work.VisibilityPrivate), author)
		require.NoError(t, err)
		assert.True(t, p.Visible)
		assert.NotNil(t, p.Work.Prompt)
		assert.NotNil(t, p.Work.RepositoryURL)
	})

	t.Run("projection does not alias the source", func(t *testing.T) {
		w := sampleWork(work.VisibilityPublic)
		p, err := e.projector.Project(ctx, w, admin())
		require.NoError(t, err)
		*p.Work.Prompt = "changed"
		assert.Equal(t, "koi fish, neon, long exposure", *w.Prompt)
	})
}

func TestProjector_ProjectList(t *testing.T) {
	ctx := context.Background()
	e := newEngine(rowsReader())

	var works []*work.Work
	for i := 1; i <= 20; i++ {
		w := sampleWork(work.VisibilityPublic)
		w.ID = uint(i)
		if i%3 == 0 {
			w.Visibility = work.VisibilityPrivate
		}
		works = append(works, w)
	}

	out, err := e.projector.ProjectList(ctx, works, viewerAt(level.Basic))
	require.NoError(t, err)

	var ids []uint
	for _, w := range out {
		ids = append(ids, w.ID)
		assert.Nil(t, w.Prompt)
	}
	assert.Equal(t, []uint{1, 2, 4, 5, 7, 8, 10, 11, 13, 14, 16, 17, 19, 20}, ids)

	works[4].Visibility = ""
	_, err = e.projector.ProjectList(ctx, works, viewerAt(level.Basic))
	assert.ErrorIs(t, err, work.ErrMissingVisibility)

	out, err = e.projector.ProjectList(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestProjector_Properties(t *testing.T) {
	e := newEngine(rowsReader())
	visibilities := []work.Visibility{work.VisibilityPublic, work.VisibilityPrivate}
	properties := gopter.NewProperties(nil)

	properties.Property("admins see every record in full", prop.ForAll(
		func(vi, rank int) bool {
			v := &work.Viewer{ID: 3, Rank: level.Rank(rank), Role: authorization.RoleAdmin}
			p, err := e.projector.Project(context.Background(), sampleWork(visibilities[vi]), v)
			return err == nil && p.Visible && p.Work.Prompt != nil && p.Work.RepositoryURL != nil
		},
		gen.IntRange(0, 1),
		gen.IntRange(-5, 120),
	))

	properties.Property("authors always see their private records", prop.ForAll(
		func(rank int) bool {
			v := &work.Viewer{ID: 7, Rank: level.Rank(rank), Role: authorization.RoleUser}
			p, err := e.projector.Project(context.Background(), sampleWork(work.VisibilityPrivate), v)
			return err == nil && p.Visible
		},
		gen.IntRange(-5, 120),
	))

	properties.Property("projection is idempotent", prop.ForAll(
		func(vi, rank int) bool {
			w := sampleWork(visibilities[vi])
			v := viewerAt(level.Rank(rank))
			a, errA := e.projector.Project(context.Background(), w, v)
			b, errB := e.projector.Project(context.Background(), w, v)
			if errA != nil || errB != nil {
				return false
			}
			ja, _ := json.Marshal(a.Work)
			jb, _ := json.Marshal(b.Work)
			return a.Visible == b.Visible && string(ja) == string(jb)
		},
		gen.IntRange(0, 1),
		gen.IntRange(-5, 120),
	))

	properties.TestingRun(t)
}

package entitlement

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/levelconfig"
	"github.com/atelier-community/atelier/internal/shared/logger"
)

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type mockReader struct {
	findByRankFunc func(ctx context.Context, rank level.Rank) (*levelconfig.LevelConfig, error)
}

func (m *mockReader) FindByRank(ctx context.Context, rank level.Rank) (*levelconfig.LevelConfig, error) {
	if m.findByRankFunc != nil {
		return m.findByRankFunc(ctx, rank)
	}
	return nil, levelconfig.ErrLevelConfigNotFound
}

// rowsReader serves fixed rows and reports not found for every other rank.
func rowsReader(rows ...*levelconfig.LevelConfig) *mockReader {
	byRank := make(map[level.Rank]*levelconfig.LevelConfig, len(rows))
	for _, r := range rows {
		byRank[r.Rank()] = r
	}
	return &mockReader{findByRankFunc: func(_ context.Context, rank level.Rank) (*levelconfig.LevelConfig, error) {
		if cfg, ok := byRank[rank]; ok {
			return cfg, nil
		}
		return nil, levelconfig.ErrLevelConfigNotFound
	}}
}

type mockCounter struct {
	mu   sync.Mutex
	used map[uint]int
	err  error
}

func newMockCounter() *mockCounter {
	return &mockCounter{used: map[uint]int{}}
}

func (m *mockCounter) Used(_ context.Context, userID uint, _ string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return m.used[userID], nil
}

func (m *mockCounter) Reserve(_ context.Context, userID uint, _ string, limit int) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, false, m.err
	}
	if m.used[userID] >= limit {
		return m.used[userID], false, nil
	}
	m.used[userID]++
	return m.used[userID], true, nil
}

type countingRecorder struct {
	mu          sync.Mutex
	resolutions map[entitlement.Status]int
	fallbacks   map[string]int
	failClosed  int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		resolutions: map[entitlement.Status]int{},
		fallbacks:   map[string]int{},
	}
}

func (c *countingRecorder) ObserveResolution(_ entitlement.Feature, status entitlement.Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolutions[status]++
}

func (c *countingRecorder) IncStoreFallback(operation string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallbacks[operation]++
}

func (c *countingRecorder) IncFailClosed(entitlement.Feature) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failClosed++
}

// row builds a stored level config that only configures the given features.
func row(t *testing.T, rank level.Rank, statuses map[entitlement.Feature]entitlement.Status, quota *int) *levelconfig.LevelConfig {
	t.Helper()
	perms, err := levelconfig.NewPermissions(statuses)
	require.NoError(t, err)
	return levelconfig.ReconstructLevelConfig(uint(rank)+1, rank, levelconfig.Display{Name: rank.Name()}, perms, quota, 1, testTime, testTime)
}

// malformedRow builds a stored row whose value for feature is not a status.
func malformedRow(t *testing.T, rank level.Rank, feature entitlement.Feature) *levelconfig.LevelConfig {
	t.Helper()
	perms, err := levelconfig.DecodePermissions([]byte(`{"` + string(feature) + `":"SOMETIMES"}`))
	require.NoError(t, err)
	return levelconfig.ReconstructLevelConfig(1, rank, levelconfig.Display{Name: "broken"}, perms, nil, 1, testTime, testTime)
}

type engine struct {
	table     *PolicyTable
	resolver  *Resolver
	quotas    *QuotaResolver
	projector *Projector
	assembler *Assembler
	counter   *mockCounter
	recorder  *countingRecorder
}

func newEngine(reader levelconfig.Reader) *engine {
	log := logger.NewNop()
	rec := newCountingRecorder()
	counter := newMockCounter()

	table := NewPolicyTable(reader, rec, log)
	resolver := NewResolver(table, rec, log)
	quotas := NewQuotaResolver(table, resolver, counter, log)
	projector := NewProjector(resolver, 4)
	return &engine{
		table:     table,
		resolver:  resolver,
		quotas:    quotas,
		projector: projector,
		assembler: NewAssembler(resolver, projector, quotas, log),
		counter:   counter,
		recorder:  rec,
	}
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

// Package entitlement resolves what a viewer may see and do, and redacts
// content records accordingly.
package entitlement

import (
	"context"
	"errors"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/levelconfig"
	"github.com/atelier-community/atelier/internal/shared/logger"
)

// Policy is a resolved table entry. FromDefault is set when the entry came
// from the compiled-in table rather than a stored level config.
type Policy struct {
	entitlement.Entry
	FromDefault bool
}

// PolicySource is the two-tier lookup the resolver depends on.
type PolicySource interface {
	PolicyFor(ctx context.Context, feature entitlement.Feature, rank level.Rank) (Policy, error)
	QuotaFor(ctx context.Context, rank level.Rank) (int, error)
}

// PolicyTable reads a stored level config first and falls back to the
// compiled-in table.
type PolicyTable struct {
	reader   levelconfig.Reader
	recorder Recorder
	logger   logger.Interface
}

// NewPolicyTable creates a policy table over reader. A nil recorder disables metrics.
func NewPolicyTable(reader levelconfig.Reader, recorder Recorder, logger logger.Interface) *PolicyTable {
	if recorder == nil {
		recorder = NopRecorder()
	}
	return &PolicyTable{
		reader:   reader,
		recorder: recorder,
		logger:   logger,
	}
}

// PolicyFor returns the policy of feature at rank. The only error it returns
// is entitlement.ErrMalformedConfig for a stored row that cannot be trusted.
func (t *PolicyTable) PolicyFor(ctx context.Context, feature entitlement.Feature, rank level.Rank) (Policy, error) {
	cfg, ok, err := t.load(ctx, rank, "policy")
	if err != nil {
		return Policy{}, err
	}
	if !ok {
		return Policy{Entry: entitlement.DefaultEntry(feature, rank), FromDefault: true}, nil
	}

	status, defined, err := cfg.Status(feature)
	if err != nil {
		return Policy{}, err
	}
	if !defined {
		return Policy{Entry: entitlement.DefaultEntry(feature, rank), FromDefault: true}, nil
	}
	return Policy{Entry: entitlement.Entry{Status: status}}, nil
}

// QuotaFor returns the daily upload quota of rank.
func (t *PolicyTable) QuotaFor(ctx context.Context, rank level.Rank) (int, error) {
	cfg, ok, err := t.load(ctx, rank, "quota")
	if err != nil {
		return 0, err
	}
	if ok {
		if q := cfg.UploadQuota(); q != nil {
			return *q, nil
		}
	}
	return entitlement.DefaultQuota(rank), nil
}

// load reports ok=false when the static table should be used.
func (t *PolicyTable) load(ctx context.Context, rank level.Rank, operation string) (*levelconfig.LevelConfig, bool, error) {
	cfg, err := t.reader.FindByRank(ctx, rank)
	switch {
	case err == nil && cfg != nil:
		return cfg, true, nil
	case err == nil, errors.Is(err, levelconfig.ErrLevelConfigNotFound):
		return nil, false, nil
	case errors.Is(err, entitlement.ErrMalformedConfig):
		return nil, false, err
	default:
		t.logger.Warnw("level config unavailable, using default policy",
			"rank", rank.Int(),
			"operation", operation,
			"error", err,
		)
		t.recorder.IncStoreFallback(operation)
		return nil, false, nil
	}
}

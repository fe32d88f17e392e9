// Package resilience guards the level-config read path with a circuit
// breaker so a failing store degrades to the static policy table quickly.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/levelconfig"
	"github.com/atelier-community/atelier/internal/shared/logger"
)

// BreakerSettings configures BreakingLevelConfigReader.
type BreakerSettings struct {
	Name string
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures int
	// Timeout is how long the circuit stays open before a trial request.
	Timeout time.Duration
}

// BreakingLevelConfigReader wraps a levelconfig.Reader with a circuit breaker.
// Missing rows and malformed rows are answers, not failures.
type BreakingLevelConfigReader struct {
	next    levelconfig.Reader
	breaker *gobreaker.CircuitBreaker[*levelconfig.LevelConfig]
	logger  logger.Interface
}

// NewBreakingLevelConfigReader creates the decorator
func NewBreakingLevelConfigReader(next levelconfig.Reader, settings BreakerSettings, logger logger.Interface) *BreakingLevelConfigReader {
	maxFailures := settings.MaxFailures
	if maxFailures <= 0 {
		maxFailures = 5
	}
	name := settings.Name
	if name == "" {
		name = "level-config-store"
	}

	cb := gobreaker.NewCircuitBreaker[*levelconfig.LevelConfig](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(maxFailures)
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnw("level config breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &BreakingLevelConfigReader{next: next, breaker: cb, logger: logger}
}

func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, levelconfig.ErrLevelConfigNotFound) ||
		errors.Is(err, entitlement.ErrMalformedConfig) ||
		errors.Is(err, context.Canceled)
}

// FindByRank reads through the breaker. An open circuit is reported as
// levelconfig.ErrStoreUnavailable.
func (r *BreakingLevelConfigReader) FindByRank(ctx context.Context, rank level.Rank) (*levelconfig.LevelConfig, error) {
	cfg, err := r.breaker.Execute(func() (*levelconfig.LevelConfig, error) {
		return r.next.FindByRank(ctx, rank)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", levelconfig.ErrStoreUnavailable, err)
	}
	return cfg, err
}

// State reports the breaker state for health checks
func (r *BreakingLevelConfigReader) State() string {
	return r.breaker.State().String()
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/levelconfig"
	"github.com/atelier-community/atelier/internal/shared/logger"
)

const (
	levelConfigKeyPrefix = "levelconfig:rank:"
	fieldName            = "name"
	fieldDescription     = "description"
	fieldColor           = "color"
	fieldIcon            = "icon"
	fieldPermissions     = "permissions"
	fieldUploadQuota     = "upload_quota"
	fieldVersion         = "version"
	fieldID              = "id"
	fieldCreatedAt       = "created_at"
	fieldUpdatedAt       = "updated_at"
	fieldNullMarker      = "_null"
)

// CachedLevelConfigReader is a cache-aside levelconfig.Reader backed by a
// Redis hash per rank. Ranks without a row are remembered with a short-lived
// null marker.
type CachedLevelConfigReader struct {
	client  *redis.Client
	next    levelconfig.Reader
	ttl     time.Duration
	nullTTL time.Duration
	logger  logger.Interface
}

// NewCachedLevelConfigReader wraps next. ttl is the base TTL of cached rows;
// a random jitter of up to a third of it is added per write.
func NewCachedLevelConfigReader(
	client *redis.Client,
	next levelconfig.Reader,
	ttl, nullTTL time.Duration,
	logger logger.Interface,
) *CachedLevelConfigReader {
	return &CachedLevelConfigReader{
		client:  client,
		next:    next,
		ttl:     ttl,
		nullTTL: nullTTL,
		logger:  logger,
	}
}

func (c *CachedLevelConfigReader) key(rank level.Rank) string {
	return levelConfigKeyPrefix + strconv.Itoa(rank.Int())
}

// FindByRank serves from Redis and falls through to next on a miss. A Redis
// failure is logged and bypassed.
func (c *CachedLevelConfigReader) FindByRank(ctx context.Context, rank level.Rank) (*levelconfig.LevelConfig, error) {
	cfg, hit, err := c.get(ctx, rank)
	if err != nil {
		c.logger.Warnw("level config cache read failed", "rank", rank.Int(), "error", err)
	} else if hit {
		if cfg == nil {
			return nil, levelconfig.ErrLevelConfigNotFound
		}
		return cfg, nil
	}

	cfg, err = c.next.FindByRank(ctx, rank)
	switch {
	case errors.Is(err, levelconfig.ErrLevelConfigNotFound):
		if setErr := c.setNullMarker(ctx, rank); setErr != nil {
			c.logger.Warnw("failed to cache level config null marker", "rank", rank.Int(), "error", setErr)
		}
		return nil, err
	case err != nil:
		return nil, err
	}

	if setErr := c.set(ctx, cfg); setErr != nil {
		c.logger.Warnw("failed to cache level config", "rank", rank.Int(), "error", setErr)
	}
	return cfg, nil
}

// Invalidate removes the cached row of rank
func (c *CachedLevelConfigReader) Invalidate(ctx context.Context, rank level.Rank) error {
	if err := c.client.Del(ctx, c.key(rank)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate level config cache: %w", err)
	}
	c.logger.Debugw("level config cache invalidated", "rank", rank.Int())
	return nil
}

// get returns hit=false on a miss and cfg=nil on a null marker hit.
func (c *CachedLevelConfigReader) get(ctx context.Context, rank level.Rank) (*levelconfig.LevelConfig, bool, error) {
	result, err := c.client.HGetAll(ctx, c.key(rank)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get level config from cache: %w", err)
	}
	if len(result) == 0 {
		return nil, false, nil
	}
	if result[fieldNullMarker] == "1" {
		return nil, true, nil
	}

	perms, err := levelconfig.DecodePermissions([]byte(result[fieldPermissions]))
	if err != nil {
		return nil, false, err
	}

	var quota *int
	if s := result[fieldUploadQuota]; s != "" {
		q, err := strconv.Atoi(s)
		if err != nil {
			return nil, false, fmt.Errorf("invalid cached upload quota %q: %w", s, err)
		}
		quota = &q
	}

	id, _ := strconv.ParseUint(result[fieldID], 10, 64)
	version, _ := strconv.Atoi(result[fieldVersion])
	createdAt, _ := strconv.ParseInt(result[fieldCreatedAt], 10, 64)
	updatedAt, _ := strconv.ParseInt(result[fieldUpdatedAt], 10, 64)

	return levelconfig.ReconstructLevelConfig(
		uint(id),
		rank,
		levelconfig.Display{
			Name:        result[fieldName],
			Description: result[fieldDescription],
			Color:       result[fieldColor],
			Icon:        result[fieldIcon],
		},
		perms,
		quota,
		version,
		time.Unix(createdAt, 0).UTC(),
		time.Unix(updatedAt, 0).UTC(),
	), true, nil
}

func (c *CachedLevelConfigReader) set(ctx context.Context, cfg *levelconfig.LevelConfig) error {
	perms, err := cfg.Permissions().Encode()
	if err != nil {
		return err
	}

	quota := ""
	if q := cfg.UploadQuota(); q != nil {
		quota = strconv.Itoa(*q)
	}

	key := c.key(cfg.Rank())
	fields := map[string]any{
		fieldID:          cfg.ID(),
		fieldName:        cfg.Name(),
		fieldDescription: cfg.Description(),
		fieldColor:       cfg.Color(),
		fieldIcon:        cfg.Icon(),
		fieldPermissions: string(perms),
		fieldUploadQuota: quota,
		fieldVersion:     cfg.Version(),
		fieldCreatedAt:   cfg.CreatedAt().Unix(),
		fieldUpdatedAt:   cfg.UpdatedAt().Unix(),
	}

	pipe := c.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttlWithJitter(c.ttl))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set level config in cache: %w", err)
	}

	c.logger.Debugw("level config cached", "rank", cfg.Rank().Int(), "version", cfg.Version())
	return nil
}

func (c *CachedLevelConfigReader) setNullMarker(ctx context.Context, rank level.Rank) error {
	key := c.key(rank)

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fieldNullMarker, "1")
	pipe.Expire(ctx, key, c.nullTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set null marker in cache: %w", err)
	}
	return nil
}

// ttlWithJitter returns a TTL in [base, base+base/3) to spread expiry.
func ttlWithJitter(base time.Duration) time.Duration {
	if base <= 0 {
		return base
	}
	spread := int64(base / 3)
	if spread <= 0 {
		return base
	}
	return base + time.Duration(rand.Int64N(spread))
}

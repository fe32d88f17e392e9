// Package levelconfig holds the DB-backed per-level override of the
// entitlement policy. A row is a complete replacement of the compiled-in
// table for its rank.
package levelconfig

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/level"
)

const maxNameLength = 50

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LevelConfig is the configuration row of one rank.
type LevelConfig struct {
	id          uint
	rank        level.Rank
	name        string
	description string // sanitised HTML
	color       string
	icon        string
	permissions Permissions
	uploadQuota *int // nil falls back to the default quota; -1 is unlimited
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// Display holds the free-text metadata that does not affect resolution.
type Display struct {
	Name        string
	Description string
	Color       string
	Icon        string
}

// NewLevelConfig creates a row. The permission map must configure every feature.
func NewLevelConfig(rank level.Rank, display Display, permissions Permissions, uploadQuota *int) (*LevelConfig, error) {
	if !permissions.IsComplete() {
		return nil, fmt.Errorf("%w: missing %v", ErrIncompletePermissions, permissions.Missing())
	}

	cfg := &LevelConfig{
		rank:        rank,
		permissions: permissions,
		version:     1,
	}
	if err := cfg.applyDisplay(display); err != nil {
		return nil, err
	}
	if err := cfg.applyQuota(uploadQuota); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cfg.createdAt = now
	cfg.updatedAt = now
	return cfg, nil
}

// ReconstructLevelConfig rebuilds a row from persistence without validation;
// stored rows may predate the current feature set.
func ReconstructLevelConfig(
	id uint,
	rank level.Rank,
	display Display,
	permissions Permissions,
	uploadQuota *int,
	version int,
	createdAt, updatedAt time.Time,
) *LevelConfig {
	return &LevelConfig{
		id:          id,
		rank:        rank,
		name:        display.Name,
		description: display.Description,
		color:       display.Color,
		icon:        display.Icon,
		permissions: permissions,
		uploadQuota: uploadQuota,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (c *LevelConfig) ID() uint                 { return c.id }
func (c *LevelConfig) Rank() level.Rank         { return c.rank }
func (c *LevelConfig) Name() string             { return c.name }
func (c *LevelConfig) Description() string      { return c.description }
func (c *LevelConfig) Color() string            { return c.color }
func (c *LevelConfig) Icon() string             { return c.icon }
func (c *LevelConfig) Permissions() Permissions { return c.permissions }
func (c *LevelConfig) Version() int             { return c.version }
func (c *LevelConfig) CreatedAt() time.Time     { return c.createdAt }
func (c *LevelConfig) UpdatedAt() time.Time     { return c.updatedAt }

// UploadQuota returns the configured quota, or nil when the row does not set one.
func (c *LevelConfig) UploadQuota() *int {
	if c.uploadQuota == nil {
		return nil
	}
	q := *c.uploadQuota
	return &q
}

// SetID sets the row ID (only for persistence layer use)
func (c *LevelConfig) SetID(id uint) {
	c.id = id
}

// Status looks up the stored status of f. See Permissions.Lookup.
func (c *LevelConfig) Status(f entitlement.Feature) (entitlement.Status, bool, error) {
	return c.permissions.Lookup(f)
}

// Replace overwrites the row with new content and bumps the version.
func (c *LevelConfig) Replace(display Display, permissions Permissions, uploadQuota *int) error {
	if !permissions.IsComplete() {
		return fmt.Errorf("%w: missing %v", ErrIncompletePermissions, permissions.Missing())
	}
	if err := c.applyDisplay(display); err != nil {
		return err
	}
	if err := c.applyQuota(uploadQuota); err != nil {
		return err
	}
	c.permissions = permissions
	c.version++
	c.updatedAt = time.Now().UTC()
	return nil
}

func (c *LevelConfig) applyDisplay(d Display) error {
	name := norm.NFC.String(strings.TrimSpace(d.Name))
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("%w: must be 1-%d characters", ErrInvalidName, maxNameLength)
	}
	if d.Color != "" && !colorPattern.MatchString(d.Color) {
		return fmt.Errorf("%w: %s", ErrInvalidColor, d.Color)
	}
	c.name = name
	c.description = strings.TrimSpace(d.Description)
	c.color = strings.ToLower(d.Color)
	c.icon = strings.TrimSpace(d.Icon)
	return nil
}

func (c *LevelConfig) applyQuota(q *int) error {
	if q == nil {
		c.uploadQuota = nil
		return nil
	}
	if *q < entitlement.UnlimitedQuota {
		return fmt.Errorf("%w: %d", ErrInvalidQuota, *q)
	}
	v := *q
	c.uploadQuota = &v
	return nil
}

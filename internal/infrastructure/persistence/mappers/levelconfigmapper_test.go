package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/infrastructure/persistence/models"
)

func TestLevelConfigMapper_ToDomain(t *testing.T) {
	quota := 4
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	m := NewLevelConfigMapper()

	cfg, err := m.ToDomain(&models.LevelConfigModel{
		ID:          3,
		Rank:        2,
		Name:        "Member",
		Permissions: datatypes.JSON(`{"vote":"VISIBLE","upload":"PROMPT"}`),
		UploadQuota: &quota,
		Version:     2,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	assert.Equal(t, level.Member, cfg.Rank())
	assert.Equal(t, 4, *cfg.UploadQuota())

	s, ok, err := cfg.Status(entitlement.FeatureUpload)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entitlement.StatusPrompt, s)

	back, err := m.ToModel(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, back.Rank)
	assert.JSONEq(t, `{"vote":"VISIBLE","upload":"PROMPT"}`, string(back.Permissions))
}

func TestLevelConfigMapper_UndecodableRow(t *testing.T) {
	m := NewLevelConfigMapper()

	_, err := m.ToDomain(&models.LevelConfigModel{Rank: 1, Permissions: datatypes.JSON(`"oops"`)})
	assert.ErrorIs(t, err, entitlement.ErrMalformedConfig)

	_, err = m.ToDomainList([]*models.LevelConfigModel{{Rank: 1, Permissions: datatypes.JSON(`[]`)}})
	assert.ErrorIs(t, err, entitlement.ErrMalformedConfig)

	cfg, err := m.ToDomain(nil)
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

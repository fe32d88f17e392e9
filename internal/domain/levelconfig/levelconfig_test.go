package levelconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/level"
)

func fullPermissions(t *testing.T, s entitlement.Status) Permissions {
	t.Helper()
	m := map[entitlement.Feature]entitlement.Status{}
	for _, f := range entitlement.AllFeatures() {
		m[f] = s
	}
	p, err := NewPermissions(m)
	require.NoError(t, err)
	return p
}

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func TestNewLevelConfig(t *testing.T) {
	p := fullPermissions(t, entitlement.StatusVisible)

	cfg, err := NewLevelConfig(level.Member, Display{Name: "  Member  ", Color: "#A1B2C3"}, p, intPtr(5))
	require.NoError(t, err)
	assert.Equal(t, "Member", cfg.Name())
	assert.Equal(t, "#a1b2c3", cfg.Color())
	assert.Equal(t, 1, cfg.Version())
	require.NotNil(t, cfg.UploadQuota())
	assert.Equal(t, 5, *cfg.UploadQuota())
	assert.False(t, cfg.CreatedAt().IsZero())
}

func TestNewLevelConfig_Validation(t *testing.T) {
	full := fullPermissions(t, entitlement.StatusHidden)

	tests := []struct {
		name    string
		display Display
		perms   Permissions
		quota   *int
		wantErr error
	}{
		{"empty name", Display{Name: "   "}, full, nil, ErrInvalidName},
		{"long name", Display{Name: string(make([]rune, 51))}, full, nil, ErrInvalidName},
		{"bad color", Display{Name: "x", Color: "red"}, full, nil, ErrInvalidColor},
		{"quota below unlimited", Display{Name: "x"}, full, intPtr(-2), ErrInvalidQuota},
		{"incomplete", Display{Name: "x"}, Permissions{}, nil, ErrIncompletePermissions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLevelConfig(level.Basic, tt.display, tt.perms, tt.quota)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewLevelConfig_NormalizesName(t *testing.T) {
	// "e" followed by a combining acute accent composes to a single rune.
	cfg, err := NewLevelConfig(level.Basic, Display{Name: "Cre\u0301ateur"}, fullPermissions(t, entitlement.StatusVisible), nil)
	require.NoError(t, err)
	assert.Equal(t, "Cr\u00e9ateur", cfg.Name())
	assert.Nil(t, cfg.UploadQuota())
}

func TestLevelConfig_Replace(t *testing.T) {
	cfg, err := NewLevelConfig(level.Premium, Display{Name: "Premium"}, fullPermissions(t, entitlement.StatusVisible), nil)
	require.NoError(t, err)

	err = cfg.Replace(Display{Name: "Premium+"}, fullPermissions(t, entitlement.StatusPrompt), intPtr(-1))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Version())
	assert.Equal(t, "Premium+", cfg.Name())

	s, ok, err := cfg.Status(entitlement.FeatureUpload)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entitlement.StatusPrompt, s)
	assert.Equal(t, entitlement.UnlimitedQuota, *cfg.UploadQuota())

	err = cfg.Replace(Display{Name: "Premium"}, Permissions{}, nil)
	assert.ErrorIs(t, err, ErrIncompletePermissions)
	assert.Equal(t, 2, cfg.Version())
}

func TestLevelConfig_UploadQuotaIsCopied(t *testing.T) {
	cfg := ReconstructLevelConfig(1, level.Member, Display{Name: "Member"}, Permissions{}, intPtr(3), 1, testTime, testTime)
	q := cfg.UploadQuota()
	*q = 99
	assert.Equal(t, 3, *cfg.UploadQuota())
}

func TestDecodePermissions(t *testing.T) {
	p, err := DecodePermissions([]byte(`{"vote":"VISIBLE","upload":"SOMETIMES","teleport":"VISIBLE"}`))
	require.NoError(t, err)

	s, ok, err := p.Lookup(entitlement.FeatureVote)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entitlement.StatusVisible, s)

	_, ok, err = p.Lookup(entitlement.FeatureUpload)
	assert.True(t, ok)
	assert.ErrorIs(t, err, entitlement.ErrMalformedConfig)

	_, ok, err = p.Lookup(entitlement.FeatureShare)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.False(t, p.IsComplete())
	assert.NotContains(t, p.Map(), entitlement.Feature("teleport"))
}

func TestDecodePermissions_Garbage(t *testing.T) {
	_, err := DecodePermissions([]byte(`["not", "an", "object"]`))
	assert.True(t, errors.Is(err, entitlement.ErrMalformedConfig))

	p, err := DecodePermissions(nil)
	require.NoError(t, err)
	assert.Empty(t, p.Map())
}

func TestPermissions_EncodeRoundTrip(t *testing.T) {
	p := fullPermissions(t, entitlement.StatusPrompt)
	data, err := p.Encode()
	require.NoError(t, err)

	decoded, err := DecodePermissions(data)
	require.NoError(t, err)
	assert.Equal(t, p.Map(), decoded.Map())
	assert.True(t, decoded.IsComplete())
}

func TestPermissions_EncodeKeepsInvalid(t *testing.T) {
	p, err := DecodePermissions([]byte(`{"vote":"VISIBLE","view_source":"VISIBL"}`))
	require.NoError(t, err)

	data, err := p.Encode()
	require.NoError(t, err)
	decoded, err := DecodePermissions(data)
	require.NoError(t, err)

	_, ok, err := decoded.Lookup(entitlement.FeatureViewSource)
	assert.True(t, ok)
	assert.ErrorIs(t, err, entitlement.ErrMalformedConfig)
	assert.Equal(t, p.Map(), decoded.Map())
}

func TestNewPermissions_Rejects(t *testing.T) {
	_, err := NewPermissions(map[entitlement.Feature]entitlement.Status{"teleport": entitlement.StatusVisible})
	assert.ErrorIs(t, err, entitlement.ErrUnknownFeature)

	_, err = NewPermissions(map[entitlement.Feature]entitlement.Status{entitlement.FeatureVote: "MAYBE"})
	assert.ErrorIs(t, err, entitlement.ErrMalformedConfig)
}

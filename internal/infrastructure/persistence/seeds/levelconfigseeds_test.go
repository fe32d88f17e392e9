package seeds

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
)

const sample = `
levels:
  - rank: 2
    name: Member
    description: "Members can **upload**"
    color: "#3366ff"
    upload_quota: 3
    permissions:
      view_prompt: VISIBLE
      upload: VISIBLE
  - rank: 100
    name: Founder
    upload_quota: -1
    permissions:
      view_source: VISIBLE
`

func TestLoadLevelSeeds(t *testing.T) {
	seeds, err := LoadLevelSeeds(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, seeds, 2)

	assert.Equal(t, 2, seeds[0].Rank)
	assert.Equal(t, "Member", seeds[0].Name)
	assert.Equal(t, "VISIBLE", seeds[0].Permissions["upload"])
	require.NotNil(t, seeds[0].UploadQuota)
	assert.Equal(t, 3, *seeds[0].UploadQuota)
	assert.Equal(t, -1, *seeds[1].UploadQuota)
}

func TestLevelSeed_Request(t *testing.T) {
	seeds, err := LoadLevelSeeds(strings.NewReader(sample))
	require.NoError(t, err)

	req := seeds[0].Request()
	assert.Equal(t, "Member", req.Name)
	assert.Len(t, req.Permissions, len(entitlement.AllFeatures()))
	assert.Equal(t, "VISIBLE", req.Permissions["upload"])
	assert.Equal(t, "PROMPT", req.Permissions["view_source"])
	assert.Equal(t, "VISIBLE", req.Permissions["vote"])

	// unknown keys are passed through for the use case to reject
	seed := LevelSeed{Rank: 1}
	seed.Permissions = map[string]string{"teleport": "VISIBLE"}
	assert.Equal(t, "VISIBLE", seed.Request().Permissions["teleport"])
	assert.Len(t, seeds[0].Permissions, 2)
}

func TestLoadLevelSeeds_Rejects(t *testing.T) {
	_, err := LoadLevelSeeds(strings.NewReader("levels:\n  - rank: 1\n  - rank: 1\n"))
	assert.ErrorContains(t, err, "duplicate rank 1")

	_, err = LoadLevelSeeds(strings.NewReader("levels:\n  - rank: 1\n    colour: red\n"))
	assert.Error(t, err)

	seeds, err := LoadLevelSeeds(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, seeds)
}

func TestLoadLevelSeedsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	seeds, err := LoadLevelSeedsFile(path)
	require.NoError(t, err)
	assert.Len(t, seeds, 2)

	_, err = LoadLevelSeedsFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

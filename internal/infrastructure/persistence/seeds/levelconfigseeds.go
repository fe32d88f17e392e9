// Package seeds loads level configuration rows from a YAML seed file.
package seeds

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/atelier-community/atelier/internal/application/levelconfig/dto"
	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/level"
)

// LevelSeed is one entry of the seed file.
type LevelSeed struct {
	Rank                         int `yaml:"rank"`
	dto.UpsertLevelConfigRequest `yaml:",inline"`
}

// Request returns the upsert request of the seed. Features the seed does not
// list take their compiled-in status for the rank, so a seed may be partial.
func (s LevelSeed) Request() dto.UpsertLevelConfigRequest {
	req := s.UpsertLevelConfigRequest
	perms := make(map[string]string, len(entitlement.AllFeatures()))
	for _, f := range entitlement.AllFeatures() {
		perms[f.String()] = entitlement.DefaultStatus(f, level.Of(s.Rank)).String()
	}
	for k, v := range s.Permissions {
		perms[k] = v
	}
	req.Permissions = perms
	return req
}

type seedFile struct {
	Levels []LevelSeed `yaml:"levels"`
}

// LoadLevelSeedsFile reads seeds from path.
func LoadLevelSeedsFile(path string) ([]LevelSeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return LoadLevelSeeds(f)
}

// LoadLevelSeeds parses seeds and rejects duplicate ranks.
func LoadLevelSeeds(r io.Reader) ([]LevelSeed, error) {
	var file seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	seen := make(map[int]bool, len(file.Levels))
	for _, s := range file.Levels {
		if seen[s.Rank] {
			return nil, fmt.Errorf("duplicate rank %d in seed file", s.Rank)
		}
		seen[s.Rank] = true
	}
	return file.Levels, nil
}

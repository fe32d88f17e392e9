package dto

import (
	"sort"
	"time"

	"github.com/atelier-community/atelier/internal/domain/levelconfig"
)

// UpsertLevelConfigRequest replaces the configuration of one rank.
type UpsertLevelConfigRequest struct {
	Name        string            `json:"name" yaml:"name" binding:"required,max=50" validate:"required,max=50"`
	Description string            `json:"description" yaml:"description" binding:"max=4000" validate:"max=4000"`
	Color       string            `json:"color" yaml:"color" binding:"omitempty,hexcolor" validate:"omitempty,hexcolor"`
	Icon        string            `json:"icon" yaml:"icon" binding:"max=64" validate:"max=64"`
	Permissions map[string]string `json:"permissions" yaml:"permissions" binding:"required" validate:"required"`
	UploadQuota *int              `json:"uploadQuota,omitempty" yaml:"upload_quota" binding:"omitempty,min=-1" validate:"omitempty,min=-1"`
}

// LevelConfigResponse is the admin view of a stored row.
type LevelConfigResponse struct {
	Rank        int               `json:"rank"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Color       string            `json:"color,omitempty"`
	Icon        string            `json:"icon,omitempty"`
	Permissions map[string]string `json:"permissions"`
	UploadQuota *int              `json:"uploadQuota,omitempty"`
	Version     int               `json:"version"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ToLevelConfigResponse converts a domain row into its response.
func ToLevelConfigResponse(cfg *levelconfig.LevelConfig) *LevelConfigResponse {
	perms := make(map[string]string)
	for f, s := range cfg.Permissions().Map() {
		perms[string(f)] = string(s)
	}
	return &LevelConfigResponse{
		Rank:        cfg.Rank().Int(),
		Name:        cfg.Name(),
		Description: cfg.Description(),
		Color:       cfg.Color(),
		Icon:        cfg.Icon(),
		Permissions: perms,
		UploadQuota: cfg.UploadQuota(),
		Version:     cfg.Version(),
		CreatedAt:   cfg.CreatedAt(),
		UpdatedAt:   cfg.UpdatedAt(),
	}
}

// ToLevelConfigResponses converts rows, ordered by rank.
func ToLevelConfigResponses(cfgs []*levelconfig.LevelConfig) []*LevelConfigResponse {
	out := make([]*LevelConfigResponse, 0, len(cfgs))
	for _, cfg := range cfgs {
		out = append(out, ToLevelConfigResponse(cfg))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}

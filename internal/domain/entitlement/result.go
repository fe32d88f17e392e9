package entitlement

import "github.com/atelier-community/atelier/internal/domain/level"

// Result is a resolved entitlement for one viewer and one feature. It is
// computed per request and never persisted.
type Result struct {
	HasAccess       bool        `json:"hasAccess"`
	Status          Status      `json:"status"`
	Message         string      `json:"message"`
	PromptType      *PromptType `json:"promptType,omitempty"`
	TargetRank      *level.Rank `json:"targetLevel,omitempty"`
	TargetLevelName *string     `json:"targetLevelName,omitempty"`
}

package dto

import (
	"github.com/atelier-community/atelier/internal/domain/entitlement"
	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/domain/work"
)

// UserLevel describes the viewer's position on the level chain.
type UserLevel struct {
	Current   level.Rank       `json:"current"`
	Name      string           `json:"name"`
	NextLevel *level.NextLevel `json:"nextLevel,omitempty"`
}

// PermissionEntry is one reportable feature. Quota fields are only set for
// a VISIBLE upload feature.
type PermissionEntry struct {
	entitlement.Result
	DailyQuota       *int `json:"dailyQuota,omitempty"`
	RemainingUploads *int `json:"remainingUploads,omitempty"`
}

// PermissionStatus maps a reportable key (prompt, source, ...) to its entry.
// HIDDEN features have no key.
type PermissionStatus map[string]PermissionEntry

// WorkResponse is a single redacted record. The record fields are flattened
// into the top level and are absent when Visible is false.
type WorkResponse struct {
	*work.RedactedWork
	Visible          bool             `json:"visible"`
	PermissionStatus PermissionStatus `json:"permissionStatus"`
	UserLevel        UserLevel        `json:"userLevel"`
}

// WorkListResponse carries the visible records of a list in input order.
type WorkListResponse struct {
	Items            []work.RedactedWork `json:"items"`
	Total            int                 `json:"total"`
	PermissionStatus PermissionStatus    `json:"permissionStatus"`
	UserLevel        UserLevel           `json:"userLevel"`
}

// ViewerEntitlements is the viewer's own entitlement summary.
type ViewerEntitlements struct {
	UserLevel        UserLevel                                  `json:"userLevel"`
	Features         map[entitlement.Feature]entitlement.Result `json:"features"`
	DailyQuota       int                                        `json:"dailyQuota"`
	RemainingUploads *int                                       `json:"remainingUploads,omitempty"`
}

// WorkRequest is the body of the projection endpoints.
type WorkRequest struct {
	Work *work.Work `json:"work" binding:"required"`
}

// WorkListRequest is the body of the list projection endpoint.
type WorkListRequest struct {
	Works []*work.Work `json:"works" binding:"required,dive,required"`
}

// ConsumeUploadResponse reports what is left after reserving one upload.
type ConsumeUploadResponse struct {
	RemainingUploads int `json:"remainingUploads"`
}

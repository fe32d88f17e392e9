// Package work describes the community content records that the entitlement
// engine redacts before they are returned to a viewer.
package work

import (
	"errors"
	"time"

	"github.com/atelier-community/atelier/internal/domain/level"
	"github.com/atelier-community/atelier/internal/shared/authorization"
)

// ErrMissingVisibility is returned when a record is passed without a
// visibility value.
var ErrMissingVisibility = errors.New("work visibility is required")

// Visibility is the record-level gate.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// IsValid checks if the visibility is valid
func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Work is a content record as loaded by the caller. Prompt and RepositoryURL
// are gated; a nil pointer means the record has no such field.
type Work struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CoverImage    string     `json:"coverImage"`
	Category      string     `json:"category"`
	AuthorID      uint       `json:"authorId"`
	AuthorName    string     `json:"authorName"`
	VoteCount     int        `json:"voteCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Visibility    Visibility `json:"visibility"`
	Prompt        *string    `json:"prompt,omitempty"`
	RepositoryURL *string    `json:"repositoryUrl,omitempty"`
}

// Viewer is the acting user. A nil *Viewer is a guest.
type Viewer struct {
	ID   uint
	Rank level.Rank
	Role authorization.UserRole
}

// RankOf returns the viewer's rank, Guest for a nil viewer.
func RankOf(v *Viewer) level.Rank {
	if v == nil {
		return level.Guest
	}
	return v.Rank
}

// IsAdmin reports whether v bypasses every entitlement check.
func (v *Viewer) IsAdmin() bool {
	return v != nil && v.Role.IsAdmin()
}

// IsAuthorOf reports whether v wrote w. Guests author nothing.
func (v *Viewer) IsAuthorOf(w *Work) bool {
	return v != nil && w != nil && v.ID != 0 && v.ID == w.AuthorID
}

// RedactedWork is a Work with every gated field the viewer may not see left
// out. Gated fields use omitempty so an absent field has no key at all.
type RedactedWork struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CoverImage    string     `json:"coverImage"`
	Category      string     `json:"category"`
	AuthorID      uint       `json:"authorId"`
	AuthorName    string     `json:"authorName"`
	VoteCount     int        `json:"voteCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Visibility    Visibility `json:"visibility"`
	Prompt        *string    `json:"prompt,omitempty"`
	RepositoryURL *string    `json:"repositoryUrl,omitempty"`
}

// Public copies the always-visible fields of w.
func Public(w *Work) RedactedWork {
	return RedactedWork{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		CoverImage:  w.CoverImage,
		Category:    w.Category,
		AuthorID:    w.AuthorID,
		AuthorName:  w.AuthorName,
		VoteCount:   w.VoteCount,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
		Visibility:  w.Visibility,
	}
}

// Full copies every field of w, gated ones included. The gated strings are
// copied so the result does not alias the source record.
func Full(w *Work) RedactedWork {
	r := Public(w)
	r.Prompt = cloneString(w.Prompt)
	r.RepositoryURL = cloneString(w.RepositoryURL)
	return r
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

package entitlement

import "fmt"

// Status is the visibility outcome for a (feature, rank) pair. PROMPT and
// HIDDEN both deny access; they differ only in whether the UI may advertise
// the feature.
type Status string

const (
	StatusHidden  Status = "HIDDEN"
	StatusPrompt  Status = "PROMPT"
	StatusVisible Status = "VISIBLE"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return s == StatusHidden || s == StatusPrompt || s == StatusVisible
}

// GrantsAccess reports whether s allows functional use of the feature.
func (s Status) GrantsAccess() bool {
	return s == StatusVisible
}

// ParseStatus validates a stored status value.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: invalid status %q", ErrMalformedConfig, s)
	}
	return st, nil
}

// PromptType says what remediation a PROMPT status asks for.
type PromptType string

const (
	PromptLogin   PromptType = "LOGIN"
	PromptUpgrade PromptType = "UPGRADE"
)

func (p PromptType) String() string {
	return string(p)
}

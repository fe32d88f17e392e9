// Package level is the catalog of user levels: numeric ranks, their display
// names and the fixed upgrade chain. Ranks are the only source of truth;
// names are derived and never compared.
package level

import "sort"

// Rank orders user levels. Higher is more privileged. Ranks need not be
// contiguous and unknown ranks are valid values.
type Rank int

const (
	Guest     Rank = 0
	Basic     Rank = 1
	Member    Rank = 2
	Premium   Rank = 3
	CoCreator Rank = 4
	Founder   Rank = 100
)

// UnknownName is shown for ranks outside the canonical chain.
const UnknownName = "Unknown Level"

type tier struct {
	rank   Rank
	name   string
	action string // call to action for reaching this tier
}

// chain is ascending by rank.
var chain = []tier{
	{Guest, "Guest", ""},
	{Basic, "Registered User", "Sign up"},
	{Member, "Member", "Join the membership"},
	{Premium, "Premium Member", "Upgrade to premium"},
	{CoCreator, "Co-Creator", "Apply to co-create"},
	{Founder, "Founder", "Become a founder"},
}

// NextLevel describes the next step up the chain.
type NextLevel struct {
	Level  Rank   `json:"level"`
	Name   string `json:"name"`
	Action string `json:"action"`
}

// Of converts a stored numeric level into a Rank.
func Of(v int) Rank {
	return Rank(v)
}

// Int returns the numeric rank.
func (r Rank) Int() int {
	return int(r)
}

// IsGuest reports whether r is the reserved guest sentinel.
func (r Rank) IsGuest() bool {
	return r == Guest
}

// AtLeast reports whether r grants access at or above min.
func (r Rank) AtLeast(min Rank) bool {
	return r >= min
}

// IsKnown reports whether r is part of the canonical chain.
func (r Rank) IsKnown() bool {
	_, ok := find(r)
	return ok
}

// Name returns the display name, or UnknownName.
func (r Rank) Name() string {
	if t, ok := find(r); ok {
		return t.name
	}
	return UnknownName
}

// Next returns the first canonical rank strictly above r. It reports false
// when r is already at or above the top of the chain.
func (r Rank) Next() (NextLevel, bool) {
	i := sort.Search(len(chain), func(i int) bool { return chain[i].rank > r })
	if i == len(chain) {
		return NextLevel{}, false
	}
	t := chain[i]
	return NextLevel{Level: t.rank, Name: t.name, Action: t.action}, true
}

// Chain returns the canonical ranks in ascending order.
func Chain() []Rank {
	out := make([]Rank, len(chain))
	for i, t := range chain {
		out[i] = t.rank
	}
	return out
}

// Above returns the canonical ranks strictly greater than r, ascending.
func Above(r Rank) []Rank {
	i := sort.Search(len(chain), func(i int) bool { return chain[i].rank > r })
	out := make([]Rank, 0, len(chain)-i)
	for _, t := range chain[i:] {
		out = append(out, t.rank)
	}
	return out
}

func find(r Rank) (tier, bool) {
	i := sort.Search(len(chain), func(i int) bool { return chain[i].rank >= r })
	if i < len(chain) && chain[i].rank == r {
		return chain[i], true
	}
	return tier{}, false
}

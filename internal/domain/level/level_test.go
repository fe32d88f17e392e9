package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank_Name(t *testing.T) {
	tests := []struct {
		rank Rank
		want string
	}{
		{Guest, "Guest"},
		{Basic, "Registered User"},
		{Member, "Member"},
		{Premium, "Premium Member"},
		{CoCreator, "Co-Creator"},
		{Founder, "Founder"},
		{Rank(7), UnknownName},
		{Rank(-3), UnknownName},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rank.Name())
		})
	}
}

func TestRank_Next(t *testing.T) {
	t.Run("walks the chain", func(t *testing.T) {
		next, ok := Guest.Next()
		assert.True(t, ok)
		assert.Equal(t, NextLevel{Level: Basic, Name: "Registered User", Action: "Sign up"}, next)

		next, ok = CoCreator.Next()
		assert.True(t, ok)
		assert.Equal(t, Founder, next.Level)
	})

	t.Run("top of chain has no next level", func(t *testing.T) {
		_, ok := Founder.Next()
		assert.False(t, ok)

		_, ok = Rank(500).Next()
		assert.False(t, ok)
	})

	t.Run("unknown rank between tiers jumps to next canonical tier", func(t *testing.T) {
		next, ok := Rank(50).Next()
		assert.True(t, ok)
		assert.Equal(t, Founder, next.Level)
	})

	t.Run("rank below guest leads to guest", func(t *testing.T) {
		next, ok := Rank(-1).Next()
		assert.True(t, ok)
		assert.Equal(t, Guest, next.Level)
	})
}

func TestChainAndAbove(t *testing.T) {
	assert.Equal(t, []Rank{Guest, Basic, Member, Premium, CoCreator, Founder}, Chain())
	assert.Equal(t, []Rank{Premium, CoCreator, Founder}, Above(Member))
	assert.Empty(t, Above(Founder))
}

func TestRank_Comparisons(t *testing.T) {
	assert.True(t, Founder.AtLeast(CoCreator))
	assert.True(t, Member.AtLeast(Member))
	assert.False(t, Basic.AtLeast(Member))
	assert.True(t, Guest.IsGuest())
	assert.False(t, Basic.IsGuest())
	assert.True(t, Premium.IsKnown())
	assert.False(t, Rank(42).IsKnown())
}

package entitlement

import "github.com/atelier-community/atelier/internal/domain/level"

// Entry is the policy for one (feature, rank) pair. TargetRank is only set
// for PROMPT and names the lowest rank at which the feature is VISIBLE.
type Entry struct {
	Status     Status
	TargetRank *level.Rank
}

// UnlimitedQuota marks an upload quota without a daily cap.
const UnlimitedQuota = -1

const (
	hid = StatusHidden
	prm = StatusPrompt
	vis = StatusVisible
)

// defaultTable is the single compiled-in policy. Every other component reads
// thresholds through DefaultEntry; nothing else may hold a copy.
var defaultTable = map[Feature]map[level.Rank]Status{
	FeatureViewPrompt:         row(prm, prm, vis, vis, vis, vis),
	FeatureViewSource:         row(hid, prm, prm, prm, vis, vis),
	FeatureVote:               row(prm, vis, vis, vis, vis, vis),
	FeatureComment:            row(prm, vis, vis, vis, vis, vis),
	FeatureShare:              row(vis, vis, vis, vis, vis, vis),
	FeatureUpload:             row(prm, prm, vis, vis, vis, vis),
	FeatureDownload:           row(hid, prm, vis, vis, vis, vis),
	FeatureViewPremiumContent: row(hid, prm, prm, vis, vis, vis),
	FeatureViewCreatorInfo:    row(prm, vis, vis, vis, vis, vis),
}

// defaultTargets is the fixed feature -> unlock threshold table.
var defaultTargets = map[Feature]level.Rank{
	FeatureViewPrompt:         level.Member,
	FeatureViewSource:         level.CoCreator,
	FeatureVote:               level.Basic,
	FeatureComment:            level.Basic,
	FeatureUpload:             level.Member,
	FeatureDownload:           level.Member,
	FeatureViewPremiumContent: level.Premium,
	FeatureViewCreatorInfo:    level.Basic,
}

var defaultQuotas = map[level.Rank]int{
	level.Guest:     0,
	level.Basic:     0,
	level.Member:    3,
	level.Premium:   10,
	level.CoCreator: 50,
	level.Founder:   UnlimitedQuota,
}

// row maps statuses onto the canonical chain in ascending rank order.
func row(statuses ...Status) map[level.Rank]Status {
	ranks := level.Chain()
	m := make(map[level.Rank]Status, len(ranks))
	for i, r := range ranks {
		m[r] = statuses[i]
	}
	return m
}

// DefaultStatus returns the compiled-in status. Ranks absent from the table
// resolve to HIDDEN.
func DefaultStatus(f Feature, r level.Rank) Status {
	if s, ok := defaultTable[f][r]; ok {
		return s
	}
	return StatusHidden
}

// DefaultEntry returns the compiled-in entry, with the static unlock
// threshold attached when the status is PROMPT and the threshold is itself
// VISIBLE in the default table.
func DefaultEntry(f Feature, r level.Rank) Entry {
	e := Entry{Status: DefaultStatus(f, r)}
	if e.Status != StatusPrompt {
		return e
	}
	if target, ok := defaultTargets[f]; ok && target > r && DefaultStatus(f, target) == StatusVisible {
		e.TargetRank = &target
	}
	return e
}

// DefaultQuota returns the compiled-in daily upload quota. Unknown ranks get 0.
func DefaultQuota(r level.Rank) int {
	return defaultQuotas[r]
}

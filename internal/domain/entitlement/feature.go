package entitlement

import "fmt"

// Feature is a gated capability. The set is closed; unknown names are
// rejected at the storage and HTTP boundaries by ParseFeature.
type Feature string

const (
	FeatureViewPrompt         Feature = "view_prompt"
	FeatureViewSource         Feature = "view_source"
	FeatureVote               Feature = "vote"
	FeatureComment            Feature = "comment"
	FeatureShare              Feature = "share"
	FeatureUpload             Feature = "upload"
	FeatureDownload           Feature = "download"
	FeatureViewPremiumContent Feature = "view_premium_content"
	FeatureViewCreatorInfo    Feature = "view_creator_info"
)

var allFeatures = []Feature{
	FeatureViewPrompt,
	FeatureViewSource,
	FeatureVote,
	FeatureComment,
	FeatureShare,
	FeatureUpload,
	FeatureDownload,
	FeatureViewPremiumContent,
	FeatureViewCreatorInfo,
}

// AllFeatures returns every feature in a stable order.
func AllFeatures() []Feature {
	out := make([]Feature, len(allFeatures))
	copy(out, allFeatures)
	return out
}

func (f Feature) String() string {
	return string(f)
}

// IsValid reports whether f is a member of the closed feature set.
func (f Feature) IsValid() bool {
	for _, known := range allFeatures {
		if f == known {
			return true
		}
	}
	return false
}

// ParseFeature validates a feature name coming from outside the process.
func ParseFeature(s string) (Feature, error) {
	f := Feature(s)
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownFeature, s)
	}
	return f, nil
}

package entitlement

import (
	"fmt"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
)

const (
	msgGranted     = "Access granted"
	msgUnavailable = "This feature is not available"
	msgUpgrade     = "Upgrade your level for more access"
)

type promptCopy struct {
	login   string
	upgrade string // %s is the target level name
}

var promptMessages = map[entitlement.Feature]promptCopy{
	entitlement.FeatureViewPrompt:         {"Log in to view the prompt", "Upgrade to %s to view the prompt"},
	entitlement.FeatureViewSource:         {"Log in to view the source code", "Upgrade to %s to view the source code"},
	entitlement.FeatureVote:               {"Log in to vote for this work", "Upgrade to %s to vote"},
	entitlement.FeatureComment:            {"Log in to join the discussion", "Upgrade to %s to comment"},
	entitlement.FeatureUpload:             {"Log in to upload your work", "Upgrade to %s to upload your work"},
	entitlement.FeatureDownload:           {"Log in to download", "Upgrade to %s to download"},
	entitlement.FeatureViewPremiumContent: {"Log in to see premium content", "Upgrade to %s to unlock premium content"},
	entitlement.FeatureViewCreatorInfo:    {"Log in to see who made this", "Upgrade to %s to see creator details"},
}

func promptMessage(f entitlement.Feature, pt entitlement.PromptType, targetName string) string {
	c, ok := promptMessages[f]
	if !ok {
		return msgUpgrade
	}
	if pt == entitlement.PromptLogin {
		return c.login
	}
	if targetName == "" {
		return msgUpgrade
	}
	return fmt.Sprintf(c.upgrade, targetName)
}

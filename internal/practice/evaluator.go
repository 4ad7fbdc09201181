package practice

import "strings"

// Tier is the feedback classification of a response.
type Tier string

const (
	TierBrief      Tier = "Brief"
	TierNoQuestion Tier = "NoQuestion"
	TierComplete   Tier = "Complete"
)

// minWords is the word count at which a response stops being Brief.
const minWords = 6

// Message is the feedback text shown for the tier.
func (t Tier) Message() string {
	switch t {
	case TierBrief:
		return "Good start. Try adding one more sentence to make it feel natural."
	case TierNoQuestion:
		return "Nice! Consider adding a polite question to keep the conversation going."
	case TierComplete:
		return "Great flow! Your response sounds conversational and polite."
	default:
		return ""
	}
}

// Evaluate trims the response and classifies it. Blank input is ErrEmptyResponse.
func Evaluate(response string) (Tier, error) {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return "", ErrEmptyResponse
	}
	return Classify(trimmed), nil
}

// Classify applies the word-count rule first, then the question-mark rule.
// The input must already be trimmed.
func Classify(trimmed string) Tier {
	switch {
	case len(strings.Fields(trimmed)) < minWords:
		return TierBrief
	case !strings.HasSuffix(trimmed, "?"):
		return TierNoQuestion
	default:
		return TierComplete
	}
}

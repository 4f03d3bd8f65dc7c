package pipeline

import (
	"strings"

	"github.com/claimpilot/claimpilot/internal/model"
)

// ClassifyDecision normalizes the synthesizer's free-text proposal into the
// three-way decision taxonomy. A response beginning with "approve" or
// "reject" (case-insensitive) keeps the full text as the reason; anything
// else collapses to the conservative Flag outcome, with the reason being
// everything after the first colon (or the whole response if there is none).
//
// Pure function; the synthesizer output is unreliable free text, so all
// parsing of it lives here and nowhere else.
func ClassifyDecision(raw string) (model.Decision, string) {
	text := strings.TrimSpace(raw)
	lower := strings.ToLower(text)

	switch {
	case strings.HasPrefix(lower, "approve"):
		return model.DecisionApprove, text
	case strings.HasPrefix(lower, "reject"):
		return model.DecisionReject, text
	}

	reason := text
	if i := strings.Index(text, ":"); i >= 0 {
		reason = strings.TrimSpace(text[i+1:])
	}
	return model.DecisionFlag, reason
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/claimpilot/claimpilot/internal/llm"
	"github.com/claimpilot/claimpilot/internal/model"
)

// LLMMisrepDetector scores the key facts against the policy terms
type LLMMisrepDetector struct {
	llmService
}

// DetectMisrepresentation asks the model for a verdict and derives Found
// from it
func (d *LLMMisrepDetector) DetectMisrepresentation(ctx context.Context, keyFacts string, policy model.Policy) (model.Misrepresentation, error) {
	if err := d.wait(ctx); err != nil {
		return model.Misrepresentation{}, failure("misrep", err)
	}

	prompt := fmt.Sprintf(`You are checking an insurance claim for misrepresentation.

KEY FACTS:
%s

POLICY:
- Start date: %s
- Date of loss: %s
- Location: %s

Does anything in the key facts contradict the policy terms or look fabricated?
Answer on one line starting with "yes" or "no", followed by a short reason.`,
		keyFacts, policy.PolicyStartDate, policy.DateOfLoss, policy.Location)

	resp, err := d.provider.Complete(ctx, llm.CompletionRequest{Prompt: prompt})
	if err != nil {
		return model.Misrepresentation{}, failure("misrep", err)
	}

	verdict := strings.TrimSpace(resp.Text)
	return model.Misrepresentation{
		Verdict: verdict,
		Found:   VerdictAffirmative(verdict),
	}, nil
}

// VerdictAffirmative reports whether the free-text verdict contains the
// affirmative token, case-insensitively
func VerdictAffirmative(verdict string) bool {
	return strings.Contains(strings.ToLower(verdict), "yes")
}

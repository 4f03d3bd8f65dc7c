package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/claimpilot/claimpilot/internal/llm"
)

// LLMDecisionSynthesizer proposes the final decision from the aggregated
// evidence bundle
type LLMDecisionSynthesizer struct {
	llmService
}

// Synthesize returns the model's one-line proposal. The pipeline normalizes
// the free text into the decision taxonomy; this adapter does no parsing.
func (s *LLMDecisionSynthesizer) Synthesize(ctx context.Context, bundle EvidenceBundle) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", failure("decision", err)
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Prompt: BuildDecisionPrompt(bundle),
	})
	if err != nil {
		return "", failure("decision", err)
	}

	return strings.TrimSpace(resp.Text), nil
}

// BuildDecisionPrompt lays the full evidence bundle in front of the model
func BuildDecisionPrompt(bundle EvidenceBundle) string {
	labels := "none detected"
	if len(bundle.Labels) > 0 {
		labels = strings.Join(bundle.Labels, ", ")
	}

	var b strings.Builder
	b.WriteString("Decision on insurance claim:\n\n")
	fmt.Fprintf(&b, "Summary: %s\n", orNA(bundle.Summary))
	fmt.Fprintf(&b, "Misrepresentation verdict: %s\n", orNA(bundle.MisrepVerdict))
	fmt.Fprintf(&b, "Capture date: %s\n", orNA(bundle.CaptureDate))
	fmt.Fprintf(&b, "Capture vs policy start: %s\n", orNA(bundle.DateVsPolicy))
	fmt.Fprintf(&b, "Capture vs date of loss: %s\n", orNA(bundle.DateVsLoss))
	fmt.Fprintf(&b, "Policy start: %s\n", orNA(bundle.PolicyStart))
	fmt.Fprintf(&b, "Date of loss: %s\n", orNA(bundle.DateOfLoss))
	fmt.Fprintf(&b, "Image labels: %s\n", labels)
	if bundle.WeatherSummary != "" {
		fmt.Fprintf(&b, "Weather check: %s\n", bundle.WeatherSummary)
	}
	b.WriteString("\nReturn one line: APPROVE / REJECT / FLAG <reason>.")
	return b.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

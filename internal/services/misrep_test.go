package services

import (
	"strings"
	"testing"
)

func TestVerdictAffirmative(t *testing.T) {
	tests := []struct {
		verdict string
		want    bool
	}{
		{"Yes, the incident date is before the policy start.", true},
		{"YES - fabricated amounts", true},
		{"no, everything lines up", false},
		{"No contradiction found.", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := VerdictAffirmative(tt.verdict); got != tt.want {
			t.Errorf("VerdictAffirmative(%q) = %v, want %v", tt.verdict, got, tt.want)
		}
	}
}

func TestBuildDecisionPrompt_IncludesBundle(t *testing.T) {
	bundle := EvidenceBundle{
		Summary:       "Flood damaged the garage.",
		MisrepVerdict: "no contradiction",
		CaptureDate:   "2024-06-03",
		PolicyStart:   "2024-01-01",
		DateOfLoss:    "2024-06-01",
		Labels:        []string{"flooded", "street"},
		DateVsPolicy:  "valid",
		DateVsLoss:    "within_tolerance",
	}

	prompt := BuildDecisionPrompt(bundle)

	for _, want := range []string{"Flood damaged the garage.", "flooded, street", "2024-01-01", "within_tolerance", "APPROVE / REJECT / FLAG"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildDecisionPrompt_EmptyFieldsMarkedNA(t *testing.T) {
	prompt := BuildDecisionPrompt(EvidenceBundle{})

	if !strings.Contains(prompt, "N/A") {
		t.Error("Expected empty bundle fields to render as N/A")
	}
	if !strings.Contains(prompt, "none detected") {
		t.Error("Expected empty labels to render as none detected")
	}
}

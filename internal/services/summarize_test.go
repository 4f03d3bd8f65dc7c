package services

import (
	"strings"
	"testing"
)

func TestParseSummaryResponse_ValidJSON(t *testing.T) {
	raw := `{"summary": "Claimant reports a flooded street damaged their car. Water entered the engine bay.", "label_match_score": 8, "insight": "-"}`

	got := ParseSummaryResponse(raw)

	if !strings.Contains(got.AbstractText, "flooded street") {
		t.Errorf("Unexpected abstract: %q", got.AbstractText)
	}
	if got.LabelMatchScore != 8 {
		t.Errorf("LabelMatchScore = %d, want 8", got.LabelMatchScore)
	}
}

func TestParseSummaryResponse_CodeFencedJSON(t *testing.T) {
	raw := "```json\n{\"summary\": \"Abstract.\", \"label_match_score\": 5, \"insight\": \"-\"}\n```"

	got := ParseSummaryResponse(raw)

	if got.AbstractText != "Abstract." {
		t.Errorf("Expected fenced JSON to parse, got abstract %q", got.AbstractText)
	}
	if got.LabelMatchScore != 5 {
		t.Errorf("LabelMatchScore = %d, want 5", got.LabelMatchScore)
	}
}

func TestParseSummaryResponse_MalformedDegradesToZero(t *testing.T) {
	raw := "I could not produce JSON but here is my summary anyway."

	got := ParseSummaryResponse(raw)

	if got.LabelMatchScore != 0 {
		t.Errorf("Expected score 0 for malformed output, got %d", got.LabelMatchScore)
	}
	if got.AbstractText != raw {
		t.Errorf("Expected raw text preserved as abstract, got %q", got.AbstractText)
	}
	if got.Insight == "" {
		t.Error("Expected explanatory insight for malformed output")
	}
}

func TestParseSummaryResponse_OutOfRangeScoreClamped(t *testing.T) {
	raw := `{"summary": "s", "label_match_score": 42, "insight": "-"}`

	if got := ParseSummaryResponse(raw); got.LabelMatchScore != 0 {
		t.Errorf("Expected out-of-range score to collapse to 0, got %d", got.LabelMatchScore)
	}
}

func TestSplitLabels(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"car, flooded street, debris", []string{"car", "flooded street", "debris"}},
		{" tree ,, , house ", []string{"tree", "house"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		got := splitLabels(tt.raw)
		if len(got) != len(tt.want) {
			t.Errorf("splitLabels(%q) = %v, want %v", tt.raw, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitLabels(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
			}
		}
	}
}

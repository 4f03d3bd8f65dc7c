package pipeline

import (
	"testing"

	"github.com/claimpilot/claimpilot/internal/model"
)

func TestClassifyDecision(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantKind   model.Decision
		wantReason string
	}{
		{
			name:       "approve prefix keeps full text",
			raw:        "Approved: meets all criteria",
			wantKind:   model.DecisionApprove,
			wantReason: "Approved: meets all criteria",
		},
		{
			name:       "reject prefix is case-insensitive",
			raw:        "REJECT: date mismatch",
			wantKind:   model.DecisionReject,
			wantReason: "REJECT: date mismatch",
		},
		{
			name:       "anything else flags with after-colon reason",
			raw:        "Needs manual review: unclear photo",
			wantKind:   model.DecisionFlag,
			wantReason: "unclear photo",
		},
		{
			name:       "flag without colon keeps whole response",
			raw:        "uncertain about the evidence",
			wantKind:   model.DecisionFlag,
			wantReason: "uncertain about the evidence",
		},
		{
			name:       "leading whitespace is ignored",
			raw:        "  approve, everything checks out",
			wantKind:   model.DecisionApprove,
			wantReason: "approve, everything checks out",
		},
		{
			name:       "explicit FLAG prefix still goes through colon rule",
			raw:        "FLAG: capture date predates policy",
			wantKind:   model.DecisionFlag,
			wantReason: "capture date predates policy",
		},
		{
			name:       "empty response flags with empty reason",
			raw:        "",
			wantKind:   model.DecisionFlag,
			wantReason: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, reason := ClassifyDecision(tt.raw)
			if kind != tt.wantKind {
				t.Errorf("decision = %q, want %q", kind, tt.wantKind)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

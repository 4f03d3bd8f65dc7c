package exif

import (
	"testing"
	"time"

	"github.com/claimpilot/claimpilot/internal/model"
)

func mustDate(t *testing.T, s string) *time.Time {
	t.Helper()
	tm, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return &tm
}

func TestCompareDates(t *testing.T) {
	policy := model.Policy{
		PolicyStartDate: "2024-01-01",
		DateOfLoss:      "2024-03-10",
		ToleranceDays:   10,
	}

	tests := []struct {
		name         string
		capture      *time.Time
		policy       model.Policy
		wantVsPolicy model.DateCheck
		wantVsLoss   model.LossCheck
	}{
		{
			name:         "capture within policy and tolerance",
			capture:      mustDate(t, "2024-03-15"),
			policy:       policy,
			wantVsPolicy: model.DateValid,
			wantVsLoss:   model.LossWithinTolerance,
		},
		{
			name:         "capture before policy start",
			capture:      mustDate(t, "2023-12-01"),
			policy:       policy,
			wantVsPolicy: model.DateInvalid,
			wantVsLoss:   model.LossTooFar,
		},
		{
			name:         "capture absent",
			capture:      nil,
			policy:       policy,
			wantVsPolicy: model.DateUnknown,
			wantVsLoss:   model.LossUnknown,
		},
		{
			name:         "capture exactly on policy start",
			capture:      mustDate(t, "2024-01-01"),
			policy:       policy,
			wantVsPolicy: model.DateValid,
			wantVsLoss:   model.LossTooFar,
		},
		{
			name:         "capture exactly at tolerance boundary",
			capture:      mustDate(t, "2024-03-20"),
			policy:       policy,
			wantVsPolicy: model.DateValid,
			wantVsLoss:   model.LossWithinTolerance,
		},
		{
			name:    "timestamp policy dates are truncated",
			capture: mustDate(t, "2024-03-15"),
			policy: model.Policy{
				PolicyStartDate: "2024-01-01T09:30:00Z",
				DateOfLoss:      "2024-03-10T23:59:59Z",
				ToleranceDays:   10,
			},
			wantVsPolicy: model.DateValid,
			wantVsLoss:   model.LossWithinTolerance,
		},
		{
			name:    "malformed policy dates degrade to unknown",
			capture: mustDate(t, "2024-03-15"),
			policy: model.Policy{
				PolicyStartDate: "not-a-date",
				DateOfLoss:      "03/10/2024",
				ToleranceDays:   10,
			},
			wantVsPolicy: model.DateUnknown,
			wantVsLoss:   model.LossUnknown,
		},
		{
			name:    "zero tolerance requires exact match",
			capture: mustDate(t, "2024-03-10"),
			policy: model.Policy{
				PolicyStartDate: "2024-01-01",
				DateOfLoss:      "2024-03-10",
				ToleranceDays:   0,
			},
			wantVsPolicy: model.DateValid,
			wantVsLoss:   model.LossWithinTolerance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareDates(tt.capture, tt.policy)
			if got.DateVsPolicy != tt.wantVsPolicy {
				t.Errorf("DateVsPolicy = %q, want %q", got.DateVsPolicy, tt.wantVsPolicy)
			}
			if got.DateVsLoss != tt.wantVsLoss {
				t.Errorf("DateVsLoss = %q, want %q", got.DateVsLoss, tt.wantVsLoss)
			}
		})
	}
}

func TestCompareDates_Idempotent(t *testing.T) {
	capture := mustDate(t, "2024-06-03")
	policy := model.Policy{
		PolicyStartDate: "2024-01-01",
		DateOfLoss:      "2024-06-01",
		ToleranceDays:   5,
	}

	first := CompareDates(capture, policy)
	second := CompareDates(capture, policy)

	if first != second {
		t.Errorf("Expected identical results for identical inputs, got %+v and %+v", first, second)
	}
}

func TestExtractCaptureInfo_UnreadableBytes(t *testing.T) {
	_, err := ExtractCaptureInfo([]byte("definitely not an image"))
	if err != ErrEvidenceUnreadable {
		t.Errorf("Expected ErrEvidenceUnreadable, got %v", err)
	}
}

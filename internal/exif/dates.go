package exif

import (
	"strings"
	"time"

	"github.com/claimpilot/claimpilot/internal/model"
)

// DateComparison is the deterministic outcome of checking the capture date
// against the policy terms
type DateComparison struct {
	DateVsPolicy model.DateCheck
	DateVsLoss   model.LossCheck
}

// CompareDates checks a capture date against the policy start date and the
// date of loss. Pure function: identical inputs always yield identical
// output. A missing capture date or an unparsable policy date degrades the
// corresponding comparison to unknown.
func CompareDates(captureDate *time.Time, policy model.Policy) DateComparison {
	cmp := DateComparison{
		DateVsPolicy: model.DateUnknown,
		DateVsLoss:   model.LossUnknown,
	}
	if captureDate == nil {
		return cmp
	}

	capture := truncateToDate(*captureDate)

	if start, ok := parseDate(policy.PolicyStartDate); ok {
		if !capture.Before(start) {
			cmp.DateVsPolicy = model.DateValid
		} else {
			cmp.DateVsPolicy = model.DateInvalid
		}
	}

	if loss, ok := parseDate(policy.DateOfLoss); ok {
		days := loss.Sub(capture).Hours() / 24
		if days < 0 {
			days = -days
		}
		if int(days) <= policy.ToleranceDays {
			cmp.DateVsLoss = model.LossWithinTolerance
		} else {
			cmp.DateVsLoss = model.LossTooFar
		}
	}

	return cmp
}

// parseDate accepts bare calendar dates and timestamp-with-time
// representations, truncating to the calendar date. Returns false for
// malformed input.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	// Timestamps like "2024-03-10T14:05:00Z": keep the date part only
	if i := strings.IndexAny(raw, "T "); i > 0 {
		raw = raw[:i]
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

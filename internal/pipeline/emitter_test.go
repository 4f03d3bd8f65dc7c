package pipeline

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimpilot/claimpilot/internal/model"
)

func TestEmitter_WritesReports(t *testing.T) {
	rec := &model.ClaimRecord{
		ID:          "abc123",
		Fingerprint: "deadbeef",
		Narrative:   "Flood damage.",
		Policy: model.Policy{
			PolicyStartDate: "2024-01-01",
			DateOfLoss:      "2024-06-01",
			ToleranceDays:   5,
		},
		Labels:     []string{"flooded", "street"},
		Summary:    model.Summary{AbstractText: "A flood.", LabelMatchScore: 8},
		KeyFacts:   "Garage flooded.",
		Decision:   model.DecisionApprove,
		ReasonText: "Approved: consistent evidence",
		Trace:      []string{"Intake: submission accepted", "Decide: ok"},
	}

	dir := t.TempDir()
	emitter := NewEmitter(dir, true)

	jsonPath, mdPath, err := emitter.Emit(rec)
	require.NoError(t, err)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded model.ClaimRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rec.Decision, decoded.Decision)
	assert.Equal(t, rec.Trace, decoded.Trace)

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	text := string(md)
	assert.True(t, strings.Contains(text, "APPROVE"))
	assert.True(t, strings.Contains(text, "flooded, street"))
	assert.True(t, strings.Contains(text, "Decide: ok"))
}

func TestEmitter_MarkdownOptional(t *testing.T) {
	rec := &model.ClaimRecord{ID: "nomarkdown", Decision: model.DecisionFlag}

	emitter := NewEmitter(t.TempDir(), false)
	_, mdPath, err := emitter.Emit(rec)
	require.NoError(t, err)
	assert.Empty(t, mdPath)
}

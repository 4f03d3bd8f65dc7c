// Package metrics captures shared operational stats for claim evaluation.
package metrics

import (
	"sync/atomic"

	"github.com/claimpilot/claimpilot/internal/model"
)

// Metrics counts evaluations, degraded stages, and decision outcomes.
// Safe for concurrent use by batch workers.
type Metrics struct {
	claimsEvaluated int64
	stagesRun       int64
	stagesDegraded  int64

	approved int64
	rejected int64
	flagged  int64
}

// Snapshot provides a consistent view of the current metrics
type Snapshot struct {
	ClaimsEvaluated int64
	StagesRun       int64
	StagesDegraded  int64
	Approved        int64
	Rejected        int64
	Flagged         int64
}

// New creates a zeroed Metrics instance
func New() *Metrics {
	return &Metrics{}
}

// RecordStage counts a stage execution and whether it degraded
func (m *Metrics) RecordStage(degraded bool) {
	atomic.AddInt64(&m.stagesRun, 1)
	if degraded {
		atomic.AddInt64(&m.stagesDegraded, 1)
	}
}

// RecordDecision counts a completed evaluation by outcome
func (m *Metrics) RecordDecision(d model.Decision) {
	atomic.AddInt64(&m.claimsEvaluated, 1)
	switch d {
	case model.DecisionApprove:
		atomic.AddInt64(&m.approved, 1)
	case model.DecisionReject:
		atomic.AddInt64(&m.rejected, 1)
	default:
		atomic.AddInt64(&m.flagged, 1)
	}
}

// Snapshot returns a read-only view of metrics
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		ClaimsEvaluated: atomic.LoadInt64(&m.claimsEvaluated),
		StagesRun:       atomic.LoadInt64(&m.stagesRun),
		StagesDegraded:  atomic.LoadInt64(&m.stagesDegraded),
		Approved:        atomic.LoadInt64(&m.approved),
		Rejected:        atomic.LoadInt64(&m.rejected),
		Flagged:         atomic.LoadInt64(&m.flagged),
	}
}

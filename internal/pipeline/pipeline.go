// Package pipeline orchestrates the claim evaluation stage graph: a fixed
// sequence of checks threading one mutable ClaimRecord from metadata
// validation through decision synthesis.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/claimpilot/claimpilot/internal/exif"
	"github.com/claimpilot/claimpilot/internal/metrics"
	"github.com/claimpilot/claimpilot/internal/model"
	"github.com/claimpilot/claimpilot/internal/services"
)

// Pipeline runs the fixed claim evaluation stage graph. It holds no per-claim
// state; independent pipeline runs may execute concurrently.
type Pipeline struct {
	services services.Set
	metrics  *metrics.Metrics
}

// New creates a pipeline over the given semantic services
func New(svcs services.Set, m *metrics.Metrics) *Pipeline {
	if m == nil {
		m = metrics.New()
	}
	return &Pipeline{services: svcs, metrics: m}
}

// run carries the per-claim execution state
type run struct {
	p       *Pipeline
	ctx     context.Context
	rec     *model.ClaimRecord
	capture exif.CaptureInfo
}

// Run executes all stages in order on the record. The only fatal path is an
// evidence image that cannot be read or decoded, which aborts before
// MetadataCheck. Every semantic service failure is absorbed: the owning
// stage writes a degraded placeholder, the trace records the reason, and the
// pipeline always reaches a Decision.
func (p *Pipeline) Run(ctx context.Context, rec *model.ClaimRecord) error {
	data, err := os.ReadFile(rec.EvidenceRef)
	if err != nil {
		return fmt.Errorf("%w: %v", exif.ErrEvidenceUnreadable, err)
	}
	capture, err := exif.ExtractCaptureInfo(data)
	if err != nil {
		return err
	}

	r := &run{p: p, ctx: ctx, rec: rec, capture: capture}

	for _, stage := range r.stages() {
		result := stage.Run()
		p.metrics.RecordStage(result.Degraded)
		if result.Degraded {
			rec.AppendTrace(fmt.Sprintf("%s: degraded (%s)", stage.Name, result.Reason))
		} else {
			rec.AppendTrace(fmt.Sprintf("%s: ok", stage.Name))
		}
	}

	p.metrics.RecordDecision(rec.Decision)
	return nil
}

// stages returns the fixed-topology stage list. WeatherCheck stays in the
// sequence even for non-calamity claims; it short-circuits to a skipped
// result rather than branching the graph.
func (r *run) stages() []Stage {
	return []Stage{
		{
			Name:   "MetadataCheck",
			Reads:  []string{"evidenceRef", "policy"},
			Writes: []string{"metadata"},
			Run:    r.metadataCheck,
		},
		{
			Name:   "LabelCheck",
			Reads:  []string{"evidenceRef", "narrative"},
			Writes: []string{"labels", "labelsRelevant"},
			Run:    r.labelCheck,
		},
		{
			Name:   "Summarize",
			Reads:  []string{"narrative", "labels"},
			Writes: []string{"summary"},
			Run:    r.summarize,
		},
		{
			Name:   "KeyInfo",
			Reads:  []string{"summary"},
			Writes: []string{"keyFacts"},
			Run:    r.keyInfo,
		},
		{
			Name:   "MisrepCheck",
			Reads:  []string{"keyFacts", "policy"},
			Writes: []string{"misrepresentation"},
			Run:    r.misrepCheck,
		},
		{
			Name:   "WeatherCheck",
			Reads:  []string{"naturalCalamityFlag", "policy"},
			Writes: []string{"weather"},
			Run:    r.weatherCheck,
		},
		{
			Name:   "Decide",
			Reads:  []string{"summary", "misrepresentation", "metadata", "labels", "policy", "weather"},
			Writes: []string{"decision", "reasonText"},
			Run:    r.decide,
		},
	}
}

func (r *run) metadataCheck() StageResult {
	cmp := exif.CompareDates(r.capture.CaptureDate, r.rec.Policy)
	r.rec.Metadata = &model.Metadata{
		CaptureDate:  r.capture.CaptureDate,
		HasGeotag:    r.capture.HasGeotag,
		DateVsPolicy: cmp.DateVsPolicy,
		DateVsLoss:   cmp.DateVsLoss,
	}
	return Ok()
}

func (r *run) labelCheck() StageResult {
	labels, err := r.p.services.Labels.DetectLabels(r.ctx, r.rec.EvidenceRef)
	if err != nil {
		r.rec.Labels = []string{}
		r.rec.LabelsRelevant = false
		return Degraded(err.Error())
	}
	r.rec.Labels = labels
	r.rec.LabelsRelevant = labelsRelevant(labels, r.rec.Narrative)
	return Ok()
}

// labelsRelevant reports whether any detected label appears in the claimant's
// narrative, case-insensitively
func labelsRelevant(labels []string, narrative string) bool {
	text := strings.ToLower(narrative)
	for _, label := range labels {
		if strings.Contains(text, strings.ToLower(label)) {
			return true
		}
	}
	return false
}

func (r *run) summarize() StageResult {
	summary, err := r.p.services.Summarizer.Summarize(r.ctx, r.rec.Narrative, r.rec.Labels)
	if err != nil {
		r.rec.Summary = model.Summary{
			AbstractText:    "Summary unavailable.",
			LabelMatchScore: 0,
			Insight:         err.Error(),
		}
		return Degraded(err.Error())
	}
	r.rec.Summary = summary
	return Ok()
}

func (r *run) keyInfo() StageResult {
	keyFacts, err := r.p.services.KeyInfo.ExtractKeyInfo(r.ctx, r.rec.Summary.AbstractText)
	if err != nil {
		r.rec.KeyFacts = "Key information unavailable."
		return Degraded(err.Error())
	}
	r.rec.KeyFacts = keyFacts
	return Ok()
}

func (r *run) misrepCheck() StageResult {
	misrep, err := r.p.services.Misrep.DetectMisrepresentation(r.ctx, r.rec.KeyFacts, r.rec.Policy)
	if err != nil {
		r.rec.Misrepresentation = model.Misrepresentation{
			Verdict: "Misrepresentation check unavailable.",
			Found:   false,
		}
		return Degraded(err.Error())
	}
	r.rec.Misrepresentation = misrep
	return Ok()
}

func (r *run) weatherCheck() StageResult {
	if !r.rec.NaturalCalamity {
		skipped := false
		r.rec.Weather = &model.WeatherResult{
			Verified: &skipped,
			Summary:  "Skipped: claim not related to a natural calamity.",
		}
		return Ok()
	}

	result, err := r.p.services.Weather.VerifyWeather(r.ctx, r.rec.Policy.DateOfLoss, r.rec.Policy.Location)
	if err != nil {
		r.rec.Weather = &model.WeatherResult{
			Verified: nil,
			Summary:  "Weather verification unavailable.",
		}
		return Degraded(err.Error())
	}
	r.rec.Weather = &result
	return Ok()
}

func (r *run) decide() StageResult {
	bundle := services.EvidenceBundle{
		Summary:        r.rec.Summary.AbstractText,
		MisrepVerdict:  r.rec.Misrepresentation.Verdict,
		PolicyStart:    r.rec.Policy.PolicyStartDate,
		DateOfLoss:     r.rec.Policy.DateOfLoss,
		Labels:         r.rec.Labels,
		WeatherSummary: r.rec.Weather.Summary,
	}
	if r.rec.Metadata != nil {
		if r.rec.Metadata.CaptureDate != nil {
			bundle.CaptureDate = r.rec.Metadata.CaptureDate.Format("2006-01-02")
		}
		bundle.DateVsPolicy = string(r.rec.Metadata.DateVsPolicy)
		bundle.DateVsLoss = string(r.rec.Metadata.DateVsLoss)
	}

	raw, err := r.p.services.Synthesizer.Synthesize(r.ctx, bundle)
	if err != nil {
		r.rec.Decision = model.DecisionFlag
		r.rec.ReasonText = "Decision service unavailable; flagged for manual review."
		return Degraded(err.Error())
	}

	decision, reason := ClassifyDecision(raw)
	r.rec.Decision = decision
	r.rec.ReasonText = reason
	return Ok()
}

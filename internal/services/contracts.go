// Package services defines the contracts for the external semantic analyses
// and provides LLM-backed adapters for each. The pipeline depends only on
// the interfaces; any implementation honoring the input/output shapes and
// failure signaling is acceptable.
package services

import (
	"context"
	"fmt"

	"github.com/claimpilot/claimpilot/internal/model"
)

// ServiceFailure wraps any semantic service error: transport failure,
// timeout, or malformed response. The pipeline absorbs these at stage
// boundaries and degrades the owning field; it never aborts on one.
type ServiceFailure struct {
	Service string
	Err     error
}

func (f *ServiceFailure) Error() string {
	return fmt.Sprintf("%s service failure: %v", f.Service, f.Err)
}

func (f *ServiceFailure) Unwrap() error { return f.Err }

func failure(service string, err error) error {
	return &ServiceFailure{Service: service, Err: err}
}

// LabelDetector lists what is visible in the evidence image.
// An empty list is a valid result, not a failure.
type LabelDetector interface {
	DetectLabels(ctx context.Context, evidenceRef string) ([]string, error)
}

// Summarizer produces a two-sentence abstract of the claim narrative and
// scores how well the image labels support it. Implementations must not fail
// on unparsable model output; they return a well-formed result with
// LabelMatchScore 0 and an explanatory insight instead.
type Summarizer interface {
	Summarize(ctx context.Context, narrative string, labels []string) (model.Summary, error)
}

// KeyInfoExtractor pulls the key claim facts out of the abstract
type KeyInfoExtractor interface {
	ExtractKeyInfo(ctx context.Context, abstract string) (string, error)
}

// MisrepresentationDetector judges whether the stated facts contradict the
// policy. Found is derived from the verdict text, not returned separately by
// the underlying service.
type MisrepresentationDetector interface {
	DetectMisrepresentation(ctx context.Context, keyFacts string, policy model.Policy) (model.Misrepresentation, error)
}

// WeatherVerifier corroborates a natural-calamity claim against historical
// weather. Invoked only when the submission is flagged as calamity-related.
type WeatherVerifier interface {
	VerifyWeather(ctx context.Context, dateOfLoss, location string) (model.WeatherResult, error)
}

// DecisionSynthesizer proposes the final outcome as one line of free text
// beginning with "approve" or "reject"; anything else is treated as a flag.
type DecisionSynthesizer interface {
	Synthesize(ctx context.Context, bundle EvidenceBundle) (string, error)
}

// EvidenceBundle is the aggregated evidence handed to the synthesizer.
// The Decide stage is the only stage allowed to read everything upstream.
type EvidenceBundle struct {
	Summary        string
	MisrepVerdict  string
	CaptureDate    string
	PolicyStart    string
	DateOfLoss     string
	Labels         []string
	DateVsPolicy   string
	DateVsLoss     string
	WeatherSummary string
}

// Set bundles one implementation of every semantic service
type Set struct {
	Labels      LabelDetector
	Summarizer  Summarizer
	KeyInfo     KeyInfoExtractor
	Misrep      MisrepresentationDetector
	Weather     WeatherVerifier
	Synthesizer DecisionSynthesizer
}

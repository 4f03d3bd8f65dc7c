package model

import "time"

// Decision is the final three-way outcome of a claim evaluation
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
	DecisionFlag    Decision = "flag"
)

func (d Decision) String() string {
	switch d {
	case DecisionApprove:
		return "APPROVE"
	case DecisionReject:
		return "REJECT"
	case DecisionFlag:
		return "FLAG"
	default:
		return "UNKNOWN"
	}
}

// DateCheck compares the evidence capture date against the policy start date
type DateCheck string

const (
	DateValid   DateCheck = "valid"   // Capture date on or after policy start
	DateInvalid DateCheck = "invalid" // Capture date before policy start
	DateUnknown DateCheck = "unknown" // No capture date, or policy date unparsable
)

// LossCheck compares the capture date against the date of loss
type LossCheck string

const (
	LossWithinTolerance LossCheck = "within_tolerance"
	LossTooFar          LossCheck = "too_far"
	LossUnknown         LossCheck = "unknown"
)

// Policy holds the policy terms a submission is evaluated against.
// Dates stay as strings; malformed values degrade the corresponding
// comparison to unknown instead of failing intake.
type Policy struct {
	PolicyStartDate string `json:"policy_start_date" yaml:"start_date"`
	DateOfLoss      string `json:"date_of_loss" yaml:"date_of_loss"`
	ToleranceDays   int    `json:"tolerance_days" yaml:"tolerance_days"`
	Location        string `json:"location,omitempty" yaml:"location,omitempty"`
}

// Metadata is the result of evidence metadata validation, produced once by
// the MetadataCheck stage and immutable afterward
type Metadata struct {
	CaptureDate  *time.Time `json:"capture_date,omitempty"` // Nil when the image carries no usable timestamp
	HasGeotag    bool       `json:"has_geotag"`
	DateVsPolicy DateCheck  `json:"date_vs_policy"`
	DateVsLoss   LossCheck  `json:"date_vs_loss"`
}

// Summary is the narrative abstract produced by the Summarize stage
type Summary struct {
	AbstractText    string `json:"abstract_text"`
	LabelMatchScore int    `json:"label_match_score"` // 1-10, or 0 when summarization degraded
	Insight         string `json:"insight,omitempty"`
}

// Misrepresentation is the verdict of the MisrepCheck stage
type Misrepresentation struct {
	Verdict string `json:"verdict"`
	Found   bool   `json:"found"`
}

// WeatherResult is the outcome of weather corroboration.
// Verified is nil when the check could not be performed (unknown).
type WeatherResult struct {
	Verified *bool  `json:"verified"`
	Summary  string `json:"summary"`
}

// ClaimRecord is the single mutable aggregate threaded through the pipeline.
// Each field is written by exactly one stage and never overwritten afterward.
type ClaimRecord struct {
	ID          string `json:"id"`
	EvidenceRef string `json:"evidence_ref"` // Path to the submitted image, read-only after intake
	Fingerprint string `json:"fingerprint"`
	Narrative   string `json:"narrative"`
	Policy      Policy `json:"policy"`

	NaturalCalamity bool `json:"natural_calamity"`

	Metadata          *Metadata         `json:"metadata,omitempty"`
	Labels            []string          `json:"labels"`
	LabelsRelevant    bool              `json:"labels_relevant"`
	Summary           Summary           `json:"summary"`
	KeyFacts          string            `json:"key_facts"`
	Misrepresentation Misrepresentation `json:"misrepresentation"`
	Weather           *WeatherResult    `json:"weather,omitempty"`

	Decision   Decision `json:"decision,omitempty"`
	ReasonText string   `json:"reason_text,omitempty"`

	SubmittedAt time.Time `json:"submitted_at"`

	// Trace is the append-only sequence of stage completion messages.
	// Diagnostic only, never used for control flow.
	Trace []string `json:"trace"`
}

// AppendTrace records a stage completion message
func (r *ClaimRecord) AppendTrace(msg string) {
	r.Trace = append(r.Trace, msg)
}

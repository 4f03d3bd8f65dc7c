package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/claimpilot/claimpilot/internal/model"
)

// Emitter renders a completed ClaimRecord into persisted artifacts. The only
// required input is the record itself; output formats beyond JSON/Markdown
// are a host concern.
type Emitter struct {
	dir      string
	markdown bool
}

// NewEmitter creates an emitter writing into dir
func NewEmitter(dir string, markdown bool) *Emitter {
	return &Emitter{dir: dir, markdown: markdown}
}

// Emit writes the claim report and returns the paths written
func (e *Emitter) Emit(rec *model.ClaimRecord) (jsonPath, mdPath string, err error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	base := fmt.Sprintf("claim_%s", rec.ID)

	jsonPath = filepath.Join(e.dir, base+".json")
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("write JSON report: %w", err)
	}

	if e.markdown {
		mdPath = filepath.Join(e.dir, base+".md")
		if err := os.WriteFile(mdPath, []byte(renderMarkdown(rec)), 0o644); err != nil {
			return "", "", fmt.Errorf("write Markdown report: %w", err)
		}
	}

	return jsonPath, mdPath, nil
}

func renderMarkdown(rec *model.ClaimRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Claim Report %s\n\n", rec.ID)
	fmt.Fprintf(&b, "**Decision: %s**\n\n", rec.Decision)
	fmt.Fprintf(&b, "%s\n\n", rec.ReasonText)

	b.WriteString("## Policy\n\n")
	fmt.Fprintf(&b, "- Policy start: %s\n", rec.Policy.PolicyStartDate)
	fmt.Fprintf(&b, "- Date of loss: %s\n", rec.Policy.DateOfLoss)
	fmt.Fprintf(&b, "- Tolerance: %d days\n", rec.Policy.ToleranceDays)
	if rec.Policy.Location != "" {
		fmt.Fprintf(&b, "- Location: %s\n", rec.Policy.Location)
	}
	fmt.Fprintf(&b, "- Natural calamity claim: %v\n\n", rec.NaturalCalamity)

	b.WriteString("## Evidence\n\n")
	fmt.Fprintf(&b, "- Fingerprint: `%s`\n", rec.Fingerprint)
	if rec.Metadata != nil {
		if rec.Metadata.CaptureDate != nil {
			fmt.Fprintf(&b, "- Capture date: %s\n", rec.Metadata.CaptureDate.Format("2006-01-02"))
		} else {
			b.WriteString("- Capture date: not available\n")
		}
		fmt.Fprintf(&b, "- Geotag present: %v\n", rec.Metadata.HasGeotag)
		fmt.Fprintf(&b, "- Capture vs policy start: %s\n", rec.Metadata.DateVsPolicy)
		fmt.Fprintf(&b, "- Capture vs date of loss: %s\n", rec.Metadata.DateVsLoss)
	}
	if len(rec.Labels) > 0 {
		fmt.Fprintf(&b, "- Image labels: %s\n", strings.Join(rec.Labels, ", "))
	} else {
		b.WriteString("- Image labels: none detected\n")
	}
	fmt.Fprintf(&b, "- Labels relevant to narrative: %v\n\n", rec.LabelsRelevant)

	b.WriteString("## Analysis\n\n")
	fmt.Fprintf(&b, "**Summary** (label match %d/10): %s\n\n", rec.Summary.LabelMatchScore, rec.Summary.AbstractText)
	if rec.Summary.Insight != "" && rec.Summary.Insight != "-" {
		fmt.Fprintf(&b, "Insight: %s\n\n", rec.Summary.Insight)
	}
	fmt.Fprintf(&b, "**Key facts:**\n\n%s\n\n", rec.KeyFacts)
	fmt.Fprintf(&b, "**Misrepresentation:** found=%v - %s\n\n", rec.Misrepresentation.Found, rec.Misrepresentation.Verdict)
	if rec.Weather != nil {
		verified := "unknown"
		if rec.Weather.Verified != nil {
			verified = fmt.Sprintf("%v", *rec.Weather.Verified)
		}
		fmt.Fprintf(&b, "**Weather:** verified=%s - %s\n\n", verified, rec.Weather.Summary)
	}

	b.WriteString("## Trace\n\n")
	for _, entry := range rec.Trace {
		fmt.Fprintf(&b, "- %s\n", entry)
	}

	return b.String()
}

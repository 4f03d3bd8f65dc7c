// Package intake validates claim submissions and screens them against the
// evidence dedup ledger before any pipeline work happens.
package intake

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/claimpilot/claimpilot/internal/evidence"
	"github.com/claimpilot/claimpilot/internal/exif"
	"github.com/claimpilot/claimpilot/internal/model"
)

var (
	// ErrInvalidSubmission indicates a mandatory intake field is missing
	ErrInvalidSubmission = errors.New("invalid submission")

	// ErrDuplicateEvidence indicates the evidence bytes were submitted before
	ErrDuplicateEvidence = errors.New("duplicate evidence")
)

// Submission is the raw claim handed to the gate
type Submission struct {
	EvidencePath    string       `yaml:"evidence"`
	Narrative       string       `yaml:"narrative"`
	Policy          model.Policy `yaml:"policy"`
	NaturalCalamity bool         `yaml:"natural_calamity"`
}

// Gate validates submissions and performs the duplicate check
type Gate struct {
	store evidence.Store
}

// NewGate creates an intake gate backed by the given dedup store
func NewGate(store evidence.Store) *Gate {
	return &Gate{store: store}
}

// Accept validates the submission, fingerprints the evidence, rejects
// duplicates, and constructs the ClaimRecord the pipeline will own.
//
// Error kinds: ErrInvalidSubmission, ErrDuplicateEvidence,
// evidence.ErrStoreUnavailable, exif.ErrEvidenceUnreadable. A store outage
// rejects the submission rather than bypassing dedup.
func (g *Gate) Accept(ctx context.Context, sub Submission) (*model.ClaimRecord, error) {
	if err := validate(sub); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(sub.EvidencePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exif.ErrEvidenceUnreadable, err)
	}

	fp := evidence.Fingerprint(data)

	dup, err := g.store.IsDuplicate(ctx, fp)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, fmt.Errorf("%w: fingerprint %s already recorded", ErrDuplicateEvidence, fp)
	}

	if err := g.store.Record(ctx, fp); err != nil {
		return nil, err
	}

	rec := &model.ClaimRecord{
		ID:              uuid.NewString(),
		EvidenceRef:     sub.EvidencePath,
		Fingerprint:     fp,
		Narrative:       sub.Narrative,
		Policy:          sub.Policy,
		NaturalCalamity: sub.NaturalCalamity,
		Labels:          []string{},
		SubmittedAt:     time.Now().UTC(),
	}
	rec.AppendTrace("Intake: submission accepted")
	return rec, nil
}

func validate(sub Submission) error {
	switch {
	case sub.EvidencePath == "":
		return fmt.Errorf("%w: evidence path is required", ErrInvalidSubmission)
	case sub.Narrative == "":
		return fmt.Errorf("%w: narrative is required", ErrInvalidSubmission)
	case sub.Policy.PolicyStartDate == "":
		return fmt.Errorf("%w: policy start date is required", ErrInvalidSubmission)
	case sub.Policy.DateOfLoss == "":
		return fmt.Errorf("%w: date of loss is required", ErrInvalidSubmission)
	case sub.Policy.ToleranceDays < 0:
		return fmt.Errorf("%w: tolerance days must be >= 0", ErrInvalidSubmission)
	}
	return nil
}

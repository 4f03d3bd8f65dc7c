package intake

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimpilot/claimpilot/internal/evidence"
	"github.com/claimpilot/claimpilot/internal/exif"
	"github.com/claimpilot/claimpilot/internal/model"
)

// fakeStore is an in-memory evidence.Store for gate tests
type fakeStore struct {
	seen map[string]bool
	err  error
}

func newFakeStore() *fakeStore { return &fakeStore{seen: map[string]bool{}} }

func (s *fakeStore) IsDuplicate(_ context.Context, fp string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.seen[fp], nil
}

func (s *fakeStore) Record(_ context.Context, fp string) error {
	if s.err != nil {
		return s.err
	}
	s.seen[fp] = true
	return nil
}

func writeEvidence(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "evidence.jpg")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func validSubmission(t *testing.T) Submission {
	return Submission{
		EvidencePath: writeEvidence(t, "jpeg bytes"),
		Narrative:    "A flood damaged my garage.",
		Policy: model.Policy{
			PolicyStartDate: "2024-01-01",
			DateOfLoss:      "2024-06-01",
			ToleranceDays:   5,
			Location:        "London",
		},
		NaturalCalamity: true,
	}
}

func TestGate_AcceptBuildsRecord(t *testing.T) {
	store := newFakeStore()
	gate := NewGate(store)

	sub := validSubmission(t)
	rec, err := gate.Accept(context.Background(), sub)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, sub.EvidencePath, rec.EvidenceRef)
	assert.Equal(t, sub.Narrative, rec.Narrative)
	assert.True(t, rec.NaturalCalamity)
	assert.NotEmpty(t, rec.Fingerprint)
	assert.True(t, store.seen[rec.Fingerprint], "accepted fingerprint should be recorded")
	assert.Len(t, rec.Trace, 1)
}

func TestGate_MissingFields(t *testing.T) {
	gate := NewGate(newFakeStore())

	tests := []struct {
		name   string
		mutate func(*Submission)
	}{
		{"no evidence", func(s *Submission) { s.EvidencePath = "" }},
		{"no narrative", func(s *Submission) { s.Narrative = "" }},
		{"no policy start", func(s *Submission) { s.Policy.PolicyStartDate = "" }},
		{"no date of loss", func(s *Submission) { s.Policy.DateOfLoss = "" }},
		{"negative tolerance", func(s *Submission) { s.Policy.ToleranceDays = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission(t)
			tt.mutate(&sub)
			_, err := gate.Accept(context.Background(), sub)
			assert.ErrorIs(t, err, ErrInvalidSubmission)
		})
	}
}

func TestGate_MissingLocationIsAllowed(t *testing.T) {
	gate := NewGate(newFakeStore())

	sub := validSubmission(t)
	sub.Policy.Location = ""

	_, err := gate.Accept(context.Background(), sub)
	assert.NoError(t, err)
}

func TestGate_DuplicateEvidence(t *testing.T) {
	store := newFakeStore()
	gate := NewGate(store)

	path := writeEvidence(t, "same bytes")
	sub := validSubmission(t)
	sub.EvidencePath = path

	_, err := gate.Accept(context.Background(), sub)
	require.NoError(t, err)

	// Second submission with byte-identical evidence, even under another name
	copyPath := filepath.Join(t.TempDir(), "copy.jpg")
	require.NoError(t, os.WriteFile(copyPath, []byte("same bytes"), 0o644))
	sub.EvidencePath = copyPath

	_, err = gate.Accept(context.Background(), sub)
	assert.ErrorIs(t, err, ErrDuplicateEvidence)
}

func TestGate_StoreOutageBlocksSubmission(t *testing.T) {
	store := newFakeStore()
	store.err = evidence.ErrStoreUnavailable
	gate := NewGate(store)

	_, err := gate.Accept(context.Background(), validSubmission(t))
	assert.ErrorIs(t, err, evidence.ErrStoreUnavailable)
}

func TestGate_UnreadableEvidencePath(t *testing.T) {
	gate := NewGate(newFakeStore())

	sub := validSubmission(t)
	sub.EvidencePath = filepath.Join(t.TempDir(), "missing.jpg")

	_, err := gate.Accept(context.Background(), sub)
	assert.True(t, errors.Is(err, exif.ErrEvidenceUnreadable))
}

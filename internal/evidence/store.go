package evidence

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrStoreUnavailable indicates the fingerprint ledger could not be reached.
// Callers must treat this as blocking: reject the submission rather than
// silently bypassing duplicate detection.
var ErrStoreUnavailable = errors.New("evidence store unavailable")

// Fingerprint computes the stable content digest of raw evidence bytes
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Store is the dedup ledger consulted before any pipeline work
type Store interface {
	IsDuplicate(ctx context.Context, fingerprint string) (bool, error)
	Record(ctx context.Context, fingerprint string) error
}

// Ledger is a sqlite-backed Store.
//
// The check-then-insert sequence is intentionally not locked across requests:
// two concurrent submissions of the same bytes may both pass the duplicate
// check and both proceed. Record uses INSERT OR IGNORE so the race resolves
// as last write wins.
type Ledger struct {
	db *sql.DB
}

// Open opens (creating if needed) the fingerprint ledger at path
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	l := &Ledger{db: db}
	if err := l.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}
	return l, nil
}

func (l *Ledger) migrate() error {
	_, err := l.db.Exec(`CREATE TABLE IF NOT EXISTS fingerprints (
		fingerprint TEXT PRIMARY KEY,
		recorded_at TIMESTAMP NOT NULL
	);`)
	return err
}

// Close closes the underlying database
func (l *Ledger) Close() error { return l.db.Close() }

// IsDuplicate reports whether the fingerprint has been recorded before
func (l *Ledger) IsDuplicate(ctx context.Context, fingerprint string) (bool, error) {
	var n int
	err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM fingerprints WHERE fingerprint = ?`, fingerprint).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return n > 0, nil
}

// Record inserts a fingerprint after a submission has been accepted
func (l *Ledger) Record(ctx context.Context, fingerprint string) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO fingerprints(fingerprint, recorded_at) VALUES(?, ?)`,
		fingerprint, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Package history keeps the in-memory, newest-first record of past
// generation batches for the current session. Nothing here survives a
// process restart.
package history

import "github.com/GintasS/social-media-post-generator/internal/models"

// DefaultMaxBatches bounds ledger growth for long-lived sessions. A cap of
// zero means unbounded.
const DefaultMaxBatches = 100

// Ledger is an insertion-ordered collection of post batches, newest first.
// Append-only except for an explicit Clear; stored batches are never
// mutated in place.
type Ledger struct {
	batches []models.PostBatch
	max     int
}

// New returns a ledger that evicts the oldest batch once max is exceeded.
// max <= 0 disables eviction.
func New(max int) *Ledger {
	if max < 0 {
		max = 0
	}
	return &Ledger{max: max}
}

// Append prepends a batch. Never fails; the oldest batch is dropped when
// the cap is reached.
func (l *Ledger) Append(batch models.PostBatch) {
	l.batches = append([]models.PostBatch{batch}, l.batches...)
	if l.max > 0 && len(l.batches) > l.max {
		l.batches = l.batches[:l.max]
	}
}

// Clear empties the ledger. Irreversible and idempotent.
func (l *Ledger) Clear() {
	l.batches = nil
}

// Len returns the number of stored batches.
func (l *Ledger) Len() int {
	return len(l.batches)
}

// Batches returns a copy of the stored batches, newest first. The copy
// shares post slices with the ledger; batches are immutable by contract.
func (l *Ledger) Batches() []models.PostBatch {
	out := make([]models.PostBatch, len(l.batches))
	copy(out, l.batches)
	return out
}

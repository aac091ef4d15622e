package id

import (
	"strconv"
	"sync"

	"github.com/google/uuid"

	"timebox/internal/platform/clock"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID issues random v4 identifiers for server-side rows.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// Timestamp issues millisecond timestamps for guest sheets. Two calls in the
// same millisecond still yield distinct, increasing ids.
type Timestamp struct {
	Clock clock.Clock

	mu   sync.Mutex
	last int64
}

func NewTimestamp(clk clock.Clock) *Timestamp {
	return &Timestamp{Clock: clk}
}

func (t *Timestamp) New() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	next := t.Clock.Now().UnixMilli()
	if next <= t.last {
		next = t.last + 1
	}
	t.last = next
	return strconv.FormatInt(next, 10)
}

package id_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"

	"timebox/internal/platform/clock"
	"timebox/internal/platform/id"
)

func TestTimestampIsMonotonicWithinOneMillisecond(t *testing.T) {
	t.Parallel()
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	gen := id.NewTimestamp(clock.Fixed(at))

	first := gen.New()
	second := gen.New()
	if first != strconv.FormatInt(at.UnixMilli(), 10) {
		t.Fatalf("expected first id to be the unix millis, got %s", first)
	}
	a, _ := strconv.ParseInt(first, 10, 64)
	b, _ := strconv.ParseInt(second, 10, 64)
	if b != a+1 {
		t.Fatalf("expected bumped id %d, got %d", a+1, b)
	}
}

func TestUUIDParses(t *testing.T) {
	t.Parallel()
	if _, err := uuid.Parse(id.UUID{}.New()); err != nil {
		t.Fatalf("uuid generator produced invalid id: %v", err)
	}
}

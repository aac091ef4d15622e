package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"timebox/internal/platform/daykey"
	apperrors "timebox/internal/platform/errors"
)

const (
	MinPriorities = 1
	MaxPriorities = 10
	SlotsPerHour  = 2
	MaxSlots      = 24 * SlotsPerHour
)

// Slot is one half-hour cell of the schedule grid.
type Slot struct {
	Task  string
	Notes string
}

// Window is the hour range a schedule grid covers, both ends inclusive.
type Window struct {
	StartHour int
	EndHour   int
}

func (w Window) Validate() error {
	if w.StartHour < 0 || w.StartHour > 23 || w.EndHour < 0 || w.EndHour > 23 {
		return fmt.Errorf("%w: hours must be within 0..23", apperrors.ErrInvalidInput)
	}
	if w.StartHour > w.EndHour {
		return fmt.Errorf("%w: start hour %d is after end hour %d", apperrors.ErrInvalidInput, w.StartHour, w.EndHour)
	}
	return nil
}

func (w Window) Hours() int {
	return w.EndHour - w.StartHour + 1
}

// Slots is the grid length for w.
func (w Window) Slots() int {
	return SlotsPerHour * w.Hours()
}

// SlotHour returns the hour of day slot index i falls in and whether it is
// the second half of that hour.
func (w Window) SlotHour(i int) (hour int, half bool) {
	return w.StartHour + i/SlotsPerHour, i%SlotsPerHour == 1
}

// Index is the inverse of SlotHour; ok is false outside the window.
func (w Window) Index(hour int, half bool) (int, bool) {
	if hour < w.StartHour || hour > w.EndHour {
		return 0, false
	}
	i := (hour - w.StartHour) * SlotsPerHour
	if half {
		i++
	}
	return i, true
}

type Sheet struct {
	ID            string
	Date          string
	FormattedDate string
	Priorities    []string
	Hours         []Slot
	// Window the grid was sized for; nil on records written before it was
	// tracked.
	Window    *Window
	BrainDump string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New builds a blank sheet for day: one empty priority, an empty grid sized
// to w and an empty brain dump.
func New(id, day string, w Window, now time.Time) Sheet {
	win := w
	return Sheet{
		ID:         id,
		Date:       day,
		Priorities: []string{""},
		Hours:      BlankHours(w.Slots()),
		Window:     &win,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func BlankHours(n int) []Slot {
	if n < 0 {
		n = 0
	}
	return make([]Slot, n)
}

// Clone deep-copies the slices so callers can mutate the result freely.
func (s Sheet) Clone() Sheet {
	out := s
	out.Priorities = append([]string(nil), s.Priorities...)
	out.Hours = append([]Slot(nil), s.Hours...)
	if s.Window != nil {
		w := *s.Window
		out.Window = &w
	}
	return out
}

func (s Sheet) Validate() error {
	if strings.TrimSpace(s.Date) == "" {
		return fmt.Errorf("%w: date is required", apperrors.ErrInvalidInput)
	}
	if _, err := time.Parse(daykey.Layout, s.Date); err != nil {
		return fmt.Errorf("%w: date %q is not a day key", apperrors.ErrInvalidInput, s.Date)
	}
	if n := len(s.Priorities); n < MinPriorities || n > MaxPriorities {
		return fmt.Errorf("%w: %d priorities, want %d..%d", apperrors.ErrInvalidInput, n, MinPriorities, MaxPriorities)
	}
	if len(s.Hours) > MaxSlots {
		return fmt.Errorf("%w: %d hour slots, max %d", apperrors.ErrInvalidInput, len(s.Hours), MaxSlots)
	}
	if s.Window != nil {
		if err := s.Window.Validate(); err != nil {
			return err
		}
		if len(s.Hours) != s.Window.Slots() {
			return fmt.Errorf("%w: %d hour slots do not match window %d-%d", apperrors.ErrInvalidInput, len(s.Hours), s.Window.StartHour, s.Window.EndHour)
		}
	}
	return nil
}

// Fit resizes the grid to w. When the sheet records the window its grid was
// built for, slots are carried over by time of day and slots outside w are
// dropped. Without a recorded window a grid of the wrong length is reset to
// blank. changed reports whether anything, including the recorded window,
// differs from s.
func Fit(s Sheet, w Window) (out Sheet, changed bool) {
	out = s.Clone()
	want := w.Slots()

	switch {
	case s.Window != nil && *s.Window == w && len(s.Hours) == want:
		return out, false
	case s.Window != nil && len(s.Hours) == s.Window.Slots():
		old := *s.Window
		hours := BlankHours(want)
		for i := range hours {
			hour, half := w.SlotHour(i)
			if j, ok := old.Index(hour, half); ok {
				hours[i] = s.Hours[j]
			}
		}
		out.Hours = hours
	case len(s.Hours) == want:
		// legacy record already the right size
	default:
		out.Hours = BlankHours(want)
	}
	win := w
	out.Window = &win
	return out, true
}

// SortByDateDesc orders sheets newest day first. Day keys sort
// lexicographically.
func SortByDateDesc(sheets []Sheet) {
	sort.SliceStable(sheets, func(i, j int) bool {
		if sheets[i].Date == sheets[j].Date {
			return sheets[i].CreatedAt.After(sheets[j].CreatedAt)
		}
		return sheets[i].Date > sheets[j].Date
	})
}

// HourLabel renders an hour of day the way the grid shows it: 12 AM, 1 AM,
// ..., 12 PM, 1 PM, ..., 11 PM.
func HourLabel(hour int) string {
	return fmt.Sprintf("%d %s", clockHour(hour), meridiem(hour))
}

// SlotLabel is HourLabel for the first half of an hour and "9:30 AM" style
// for the second.
func SlotLabel(hour int, half bool) string {
	if !half {
		return HourLabel(hour)
	}
	return fmt.Sprintf("%d:30 %s", clockHour(hour), meridiem(hour))
}

func clockHour(hour int) int {
	if h := hour % 12; h != 0 {
		return h
	}
	return 12
}

func meridiem(hour int) string {
	if hour < 12 {
		return "AM"
	}
	return "PM"
}

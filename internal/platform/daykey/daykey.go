// Package daykey canonicalizes moments to calendar-day keys (YYYY-MM-DD) and
// renders them as localized labels.
package daykey

import (
	"fmt"
	"strings"
	"time"

	"github.com/goodsign/monday"

	apperrors "timebox/internal/platform/errors"
)

const (
	Layout      = "2006-01-02"
	LabelLayout = "02 January 2006"
	MonthLayout = "January 2006"
)

type Locale = monday.Locale

// DefaultLocale renders labels in Spanish, e.g. "01 marzo 2024".
const DefaultLocale Locale = monday.LocaleEsES

// StartOfDay truncates t to local midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Normalize returns the day key of t in loc.
func Normalize(t time.Time, loc *time.Location) string {
	return StartOfDay(t, loc).Format(Layout)
}

// Parse accepts a day key or an RFC 3339 timestamp and returns local
// midnight of that day in loc.
func Parse(input string, loc *time.Location) (time.Time, error) {
	input = strings.TrimSpace(input)
	if t, err := time.ParseInLocation(Layout, input, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, input); err == nil {
		return StartOfDay(t, loc), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a day (want YYYY-MM-DD)", apperrors.ErrInvalidInput, input)
}

// Canonical parses input and re-formats it as a day key.
func Canonical(input string, loc *time.Location) (string, error) {
	t, err := Parse(input, loc)
	if err != nil {
		return "", err
	}
	return t.Format(Layout), nil
}

// Resolve understands the relative words a user types at the prompt.
func Resolve(input string, now time.Time, loc *time.Location) (string, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "today", "hoy":
		return Normalize(now, loc), nil
	case "tomorrow", "mañana":
		return Normalize(StartOfDay(now, loc).AddDate(0, 0, 1), loc), nil
	case "yesterday", "ayer":
		return Normalize(StartOfDay(now, loc).AddDate(0, 0, -1), loc), nil
	}
	return Canonical(input, loc)
}

// Label formats a day key as "dd MMMM yyyy" in locale. Malformed keys are
// returned unchanged.
func Label(key string, locale Locale) string {
	t, err := time.Parse(Layout, key)
	if err != nil {
		return key
	}
	return monday.Format(t, LabelLayout, locale)
}

// MonthLabel formats the month heading shown above a week.
func MonthLabel(t time.Time, locale Locale) string {
	return monday.Format(t, MonthLayout, locale)
}

// WeekdayLabel returns the short weekday name of t.
func WeekdayLabel(t time.Time, locale Locale) string {
	return monday.Format(t, "Mon", locale)
}

// WeekOf returns the seven day keys of the Monday-first week containing t.
func WeekOf(t time.Time, loc *time.Location) []string {
	start := MondayOf(t, loc)
	out := make([]string, 7)
	for i := range out {
		out[i] = start.AddDate(0, 0, i).Format(Layout)
	}
	return out
}

// MondayOf returns local midnight of the Monday starting t's week.
func MondayOf(t time.Time, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

package picker_test

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"timebox/internal/platform/daykey"
	"timebox/internal/ui/theme"
	"timebox/internal/ui/views/picker"
)

// 2024-03-06 is a Wednesday.
var now = time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

func press(t *testing.T, m picker.Model, keys ...tea.KeyMsg) (picker.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(picker.Model)
	}
	return m, cmd
}

func newPicker(taken ...string) picker.Model {
	return picker.New(now, time.UTC, daykey.DefaultLocale, taken, theme.New(theme.Mocha))
}

var (
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestPickerMovesAcrossWeeks(t *testing.T) {
	t.Parallel()
	m := newPicker()
	if m.Cursor() != "2024-03-06" {
		t.Fatalf("expected cursor on today, got %s", m.Cursor())
	}
	m, _ = press(t, m, left, left, left)
	if m.Cursor() != "2024-03-03" {
		t.Fatalf("expected previous Sunday, got %s", m.Cursor())
	}
	m, _ = press(t, m, down, right)
	if m.Cursor() != "2024-03-11" {
		t.Fatalf("expected next Monday, got %s", m.Cursor())
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if m.Cursor() != "2024-03-06" {
		t.Fatalf("today key should reset cursor, got %s", m.Cursor())
	}
}

func TestPickerChoosesFreeDay(t *testing.T) {
	t.Parallel()
	m, cmd := press(t, newPicker("2024-03-05"), right, enter)
	day, ok := m.Chosen()
	if !ok || day != "2024-03-07" {
		t.Fatalf("expected 2024-03-07, got %q %v", day, ok)
	}
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestPickerRefusesTakenDay(t *testing.T) {
	t.Parallel()
	m, cmd := press(t, newPicker("2024-03-05"), left, enter)
	if _, ok := m.Chosen(); ok {
		t.Fatalf("taken day must not be chosen")
	}
	if cmd != nil {
		t.Fatalf("taken day must not quit")
	}
	if !strings.Contains(m.View(), "Ya existe un TimeBox") {
		t.Fatalf("expected notice in view:\n%s", m.View())
	}
}

func TestPickerCancel(t *testing.T) {
	t.Parallel()
	m, cmd := press(t, newPicker(), esc)
	if _, ok := m.Chosen(); ok || cmd == nil {
		t.Fatalf("esc should cancel and quit")
	}
}

func TestPickerViewShowsMonth(t *testing.T) {
	t.Parallel()
	view := newPicker().View()
	if !strings.Contains(view, "marzo 2024") {
		t.Fatalf("expected Spanish month heading:\n%s", view)
	}
	if !strings.Contains(view, "06 marzo 2024") {
		t.Fatalf("expected cursor label:\n%s", view)
	}
}

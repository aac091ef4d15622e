// Package picker is a Monday-first week calendar for choosing the day of a
// new sheet. Days that already have a sheet cannot be picked.
package picker

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timebox/internal/platform/daykey"
	"timebox/internal/ui/theme"
)

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Today    key.Binding
	Enter    key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		PrevWeek: key.NewBinding(key.WithKeys("up", "k", "["), key.WithHelp("↑/k", "prev week")),
		NextWeek: key.NewBinding(key.WithKeys("down", "j", "]"), key.WithHelp("↓/j", "next week")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create")),
		Quit:     key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("q", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.PrevWeek, k.NextWeek, k.Today, k.Enter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type Model struct {
	loc    *time.Location
	locale daykey.Locale
	today  string
	cursor time.Time
	taken  map[string]bool
	styles theme.Styles
	keys   keyMap
	help   help.Model

	chosen   string
	notice   string
	canceled bool
}

// New opens the picker on now's week. taken lists the day keys that already
// have a sheet.
func New(now time.Time, loc *time.Location, locale daykey.Locale, taken []string, st theme.Styles) Model {
	if loc == nil {
		loc = time.Local
	}
	set := make(map[string]bool, len(taken))
	for _, day := range taken {
		set[day] = true
	}
	return Model{
		loc:    loc,
		locale: locale,
		today:  daykey.Normalize(now, loc),
		cursor: daykey.StartOfDay(now, loc),
		taken:  set,
		styles: st,
		keys:   defaultKeys(),
		help:   help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.notice = ""
	switch {
	case key.Matches(km, m.keys.Quit):
		m.canceled = true
		return m, tea.Quit
	case key.Matches(km, m.keys.Left):
		m.cursor = m.cursor.AddDate(0, 0, -1)
	case key.Matches(km, m.keys.Right):
		m.cursor = m.cursor.AddDate(0, 0, 1)
	case key.Matches(km, m.keys.PrevWeek):
		m.cursor = m.cursor.AddDate(0, 0, -7)
	case key.Matches(km, m.keys.NextWeek):
		m.cursor = m.cursor.AddDate(0, 0, 7)
	case key.Matches(km, m.keys.Today):
		t, err := daykey.Parse(m.today, m.loc)
		if err == nil {
			m.cursor = t
		}
	case key.Matches(km, m.keys.Enter):
		day := m.Cursor()
		if m.taken[day] {
			m.notice = "Ya existe un TimeBox para " + daykey.Label(day, m.locale)
			return m, nil
		}
		m.chosen = day
		return m, tea.Quit
	}
	return m, nil
}

// Cursor is the day key under the cursor.
func (m Model) Cursor() string {
	return daykey.Normalize(m.cursor, m.loc)
}

// Chosen reports the picked day; false when the user cancelled.
func (m Model) Chosen() (string, bool) {
	if m.canceled || m.chosen == "" {
		return "", false
	}
	return m.chosen, true
}

func (m Model) View() string {
	st := m.styles
	monday := daykey.MondayOf(m.cursor, m.loc)
	cell := lipgloss.NewStyle().Width(6).Align(lipgloss.Center)

	heads := make([]string, 0, 7)
	days := make([]string, 0, 7)
	cursor := m.Cursor()
	for i, day := range daykey.WeekOf(monday, m.loc) {
		t := monday.AddDate(0, 0, i)
		heads = append(heads, st.Muted.Inherit(cell).Render(daykey.WeekdayLabel(t, m.locale)))

		label := fmt.Sprintf("%2d", t.Day())
		style := cell
		switch {
		case day == cursor:
			style = st.Selected.Inherit(cell)
		case m.taken[day]:
			style = st.Disabled.Inherit(cell)
		case day == m.today:
			style = st.Hot.Inherit(cell)
		}
		days = append(days, style.Render(label))
	}

	var b strings.Builder
	b.WriteString(st.Title.Render(daykey.MonthLabel(m.cursor, m.locale)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, heads...))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, days...))
	b.WriteString("\n\n")
	b.WriteString(daykey.Label(cursor, m.locale))
	if m.taken[cursor] {
		b.WriteString(st.Muted.Render("  (ya existe)"))
	}
	if m.notice != "" {
		b.WriteString("\n" + st.Hot.Render(m.notice))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return st.App.Render(b.String())
}

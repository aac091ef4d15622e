// Package sheet renders a planner sheet for the terminal: priorities, the
// half-hour schedule grid and the brain dump.
package sheet

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	prefsdto "timebox/internal/modules/preferences/dto"
	sheetdto "timebox/internal/modules/sheet/dto"
	"timebox/internal/ui/theme"
)

const cellWidth = 28

// Row is one hour of the schedule grid.
type Row struct {
	Hour  int
	Label string
	// Slots holds the :00 and :30 slots; a grid shorter than the window
	// leaves the tail empty.
	Slots [2]Cell
}

type Cell struct {
	Index int
	Task  string
	Notes string
}

// Grid lays the sheet's slots out by hour. The sheet's recorded window wins;
// legacy sheets without one are laid out against the preferences window.
func Grid(s sheetdto.Sheet, prefs prefsdto.Preferences) []Row {
	start, end := prefs.StartHour, prefs.EndHour
	if s.Window != nil {
		start, end = s.Window.StartHour, s.Window.EndHour
	}
	if end < start {
		return nil
	}
	rows := make([]Row, 0, end-start+1)
	for hour := start; hour <= end; hour++ {
		row := Row{Hour: hour, Label: sheetdto.HourLabel(hour)}
		for half := range 2 {
			i := (hour-start)*2 + half
			cell := Cell{Index: i}
			if i < len(s.Hours) {
				cell.Task = s.Hours[i].Task
				cell.Notes = s.Hours[i].Notes
			}
			row.Slots[half] = cell
		}
		rows = append(rows, row)
	}
	return rows
}

// Render draws the whole sheet.
func Render(s sheetdto.Sheet, prefs prefsdto.Preferences, st theme.Styles) string {
	title := s.FormattedDate
	if title == "" {
		title = s.Date
	}
	sections := []string{
		st.Title.Render("TimeBox · " + title),
		st.Pane.Render(renderPriorities(s.Priorities, st)),
		st.Pane.Render(renderGrid(Grid(s, prefs), st)),
		st.Pane.Render(renderBrainDump(s.BrainDump, st)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderPriorities(priorities []string, st theme.Styles) string {
	var b strings.Builder
	b.WriteString(st.Hot.Render("Prioridades"))
	for i, p := range priorities {
		b.WriteString("\n")
		if strings.TrimSpace(p) == "" {
			b.WriteString(st.Muted.Render(fmt.Sprintf("%d. …", i+1)))
			continue
		}
		fmt.Fprintf(&b, "%d. %s", i+1, p)
	}
	return b.String()
}

func renderGrid(rows []Row, st theme.Styles) string {
	var b strings.Builder
	b.WriteString(st.Hot.Render("Horario"))
	label := lipgloss.NewStyle().Width(7).Align(lipgloss.Right).MarginRight(1)
	cell := lipgloss.NewStyle().Width(cellWidth).MaxHeight(2).MarginRight(1)
	for _, row := range rows {
		b.WriteString("\n")
		line := lipgloss.JoinHorizontal(lipgloss.Top,
			label.Foreground(st.Palette.Subtext0).Render(row.Label),
			cell.Render(renderCell(row.Slots[0], st)),
			cell.Render(renderCell(row.Slots[1], st)),
		)
		b.WriteString(line)
	}
	return b.String()
}

func renderCell(c Cell, st theme.Styles) string {
	if c.Task == "" && c.Notes == "" {
		return st.Muted.Render(fmt.Sprintf("[%d]", c.Index))
	}
	out := fmt.Sprintf("[%d] %s", c.Index, c.Task)
	if c.Notes != "" {
		out += "\n" + st.Muted.Render(c.Notes)
	}
	return out
}

func renderBrainDump(text string, st theme.Styles) string {
	if strings.TrimSpace(text) == "" {
		return st.Hot.Render("Brain dump") + "\n" + st.Muted.Render("(vacío)")
	}
	return st.Hot.Render("Brain dump") + "\n" + text
}

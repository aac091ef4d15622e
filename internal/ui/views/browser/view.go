// Package browser is the full-screen sheet browser: the sheet list on the
// left, the selected sheet rendered on the right.
package browser

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	prefsdto "timebox/internal/modules/preferences/dto"
	sheetdto "timebox/internal/modules/sheet/dto"
	"timebox/internal/ui/theme"
	sheetview "timebox/internal/ui/views/sheet"
)

type SheetPort interface {
	List(ctx context.Context) ([]sheetdto.Sheet, error)
	Show(ctx context.Context, day string) (sheetdto.Sheet, error)
	Remove(ctx context.Context, day string) (sheetdto.Sheet, error)
}

type SheetsLoadedMsg struct {
	Sheets []sheetdto.Sheet
	Err    error
}

type SheetOpenedMsg struct {
	Sheet sheetdto.Sheet
	Err   error
}

type SheetRemovedMsg struct {
	Day string
	Err error
}

type sheetItem struct {
	sheet sheetdto.Sheet
}

func (i sheetItem) Title() string {
	if i.sheet.FormattedDate != "" {
		return i.sheet.FormattedDate
	}
	return i.sheet.Date
}

func (i sheetItem) Description() string {
	filled := 0
	for _, slot := range i.sheet.Hours {
		if slot.Task != "" {
			filled++
		}
	}
	return fmt.Sprintf("%s  %d/%d slots", i.sheet.Date, filled, len(i.sheet.Hours))
}

func (i sheetItem) FilterValue() string { return i.sheet.Date + " " + i.sheet.FormattedDate }

type keyMap struct {
	Open   key.Binding
	Delete key.Binding
	Reload key.Binding
	Quit   key.Binding
	Yes    key.Binding
	No     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Yes:    key.NewBinding(key.WithKeys("y", "s"), key.WithHelp("y", "confirm")),
		No:     key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Delete, k.Reload, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type Model struct {
	ctx     context.Context
	port    SheetPort
	prefs   prefsdto.Preferences
	styles  theme.Styles
	keys    keyMap
	help    help.Model
	list    list.Model
	preview viewport.Model
	spinner spinner.Model
	current sheetdto.Sheet
	status  string
	// pending is the sheet waiting for a delete confirmation.
	pending *sheetdto.Sheet
	loading bool
	width   int
	height  int
}

func New(ctx context.Context, port SheetPort, prefs prefsdto.Preferences, st theme.Styles) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(st.Palette.Lavender).BorderForeground(st.Palette.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(st.Palette.Sapphire).BorderForeground(st.Palette.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "TimeBox"
	l.Styles.Title = st.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(st.Palette.Lavender)

	return Model{
		ctx:     ctx,
		port:    port,
		prefs:   prefs,
		styles:  st,
		keys:    defaultKeys(),
		help:    help.New(),
		list:    l,
		preview: viewport.New(0, 0),
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSheetsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		if m.pending != nil {
			return m.confirm(msg)
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Open):
			if item, ok := m.list.SelectedItem().(sheetItem); ok {
				return m, m.openCmd(item.sheet.Date)
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if item, ok := m.list.SelectedItem().(sheetItem); ok {
				s := item.sheet
				m.pending = &s
				m.status = fmt.Sprintf("¿Eliminar TimeBox del %s? (y/n)", item.Title())
			}
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.loading = true
			return m, tea.Batch(m.loadSheetsCmd(), m.spinner.Tick)
		}

	case SheetsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Sheets))
		for i, s := range msg.Sheets {
			items[i] = sheetItem{sheet: s}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Sheets) > 0 {
			m.show(msg.Sheets[0])
		} else {
			m.show(sheetdto.Sheet{})
		}

	case SheetOpenedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.status = ""
		m.show(msg.Sheet)

	case SheetRemovedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.status = "removed " + msg.Day
		m.loading = true
		return m, tea.Batch(m.loadSheetsCmd(), m.spinner.Tick)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if !m.loading {
		prev := m.list.Index()
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prev {
			if item, ok := m.list.SelectedItem().(sheetItem); ok {
				m.show(item.sheet)
			}
		}
		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Cargando hojas…")
	}
	listW := m.width * 3 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height - 2).Render(m.list.View())
	detailPane := m.styles.Pane.Width(max(detailW-2, 0)).Height(max(m.height-4, 0)).Render(m.preview.View())

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.styles.Hot.Render(m.status) + "  " + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane),
		footer,
	)
}

// Confirming reports whether a delete is waiting for y/n.
func (m Model) Confirming() bool {
	return m.pending != nil
}

// confirm consumes the key answering a delete prompt; other keys are ignored.
func (m Model) confirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch {
	case key.Matches(msg, m.keys.Yes):
		day := m.pending.Date
		m.pending = nil
		m.status = ""
		return m, m.removeCmd(day)
	case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Quit):
		m.pending = nil
		m.status = ""
	}
	return m, nil
}

// Current is the sheet shown in the preview.
func (m Model) Current() sheetdto.Sheet {
	return m.current
}

func (m *Model) show(s sheetdto.Sheet) {
	m.current = s
	if s.Date == "" {
		m.preview.SetContent(m.styles.Muted.Render("No hay hojas. Crea una con `timebox pick`."))
		return
	}
	m.preview.SetContent(sheetview.Render(s, m.prefs, m.styles))
}

func (m *Model) resize() {
	listW := m.width * 3 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, max(m.height-2, 0))
	m.preview.Width = max(detailW-4, 0)
	m.preview.Height = max(m.height-4, 0)
}

func (m Model) loadSheetsCmd() tea.Cmd {
	return func() tea.Msg {
		sheets, err := m.port.List(m.ctx)
		return SheetsLoadedMsg{Sheets: sheets, Err: err}
	}
}

func (m Model) openCmd(day string) tea.Cmd {
	return func() tea.Msg {
		sheet, err := m.port.Show(m.ctx, day)
		return SheetOpenedMsg{Sheet: sheet, Err: err}
	}
}

func (m Model) removeCmd(day string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Remove(m.ctx, day)
		return SheetRemovedMsg{Day: day, Err: err}
	}
}

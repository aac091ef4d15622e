package bootstrap

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"timebox/internal/ui/theme"
	"timebox/internal/ui/views/browser"
)

// RunBrowser runs the full-screen sheet browser until the user quits.
func RunBrowser(ctx context.Context, s *Session) error {
	prefs := s.PrefsCLI.Get(ctx)
	model := browser.New(ctx, s.SheetCLI, prefs, theme.For(prefs.Theme))
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

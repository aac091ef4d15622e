package out

import (
	"context"

	prefsin "timebox/internal/modules/preferences/port/in"
	"timebox/internal/modules/sheet/domain"
	sheetout "timebox/internal/modules/sheet/port/out"
)

// PreferencesWindow sizes grids from the session's preferences.
type PreferencesWindow struct {
	prefs prefsin.Store
}

func NewPreferencesWindow(prefs prefsin.Store) sheetout.WindowSource {
	return PreferencesWindow{prefs: prefs}
}

func (w PreferencesWindow) Window(ctx context.Context) (domain.Window, error) {
	p := w.prefs.Get(ctx)
	win := domain.Window{StartHour: p.StartHour, EndHour: p.EndHour}
	return win, win.Validate()
}

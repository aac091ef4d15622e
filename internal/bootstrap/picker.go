package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	sheetdto "timebox/internal/modules/sheet/dto"
	"timebox/internal/ui/theme"
	"timebox/internal/ui/views/picker"
)

// RunPicker shows the week picker and creates a sheet for the chosen day.
// ok is false when the user cancelled.
func RunPicker(ctx context.Context, s *Session, opts ...tea.ProgramOption) (out sheetdto.CreateOutput, ok bool, err error) {
	sheets, err := s.SheetCLI.List(ctx)
	if err != nil {
		return sheetdto.CreateOutput{}, false, err
	}
	taken := make([]string, 0, len(sheets))
	for _, sheet := range sheets {
		taken = append(taken, sheet.Date)
	}

	styles := theme.For(s.PrefsCLI.Get(ctx).Theme)
	model := picker.New(s.Clock.Now(), s.Location, s.Locale, taken, styles)
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return sheetdto.CreateOutput{}, false, fmt.Errorf("run picker: %w", err)
	}
	day, ok := final.(picker.Model).Chosen()
	if !ok {
		return sheetdto.CreateOutput{}, false, nil
	}
	out, err = s.SheetCLI.New(ctx, day)
	return out, err == nil, err
}

package in

import (
	"context"

	"timebox/internal/modules/sheet/dto"
	sheetin "timebox/internal/modules/sheet/port/in"
)

// CLIHandler addresses sheets by day; ids stay internal.
type CLIHandler struct {
	store sheetin.Store
}

func NewCLIHandler(store sheetin.Store) CLIHandler {
	return CLIHandler{store: store}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.Sheet, error) {
	if err := h.store.Load(ctx); err != nil {
		return nil, err
	}
	return h.store.List(ctx)
}

func (h CLIHandler) New(ctx context.Context, day string) (dto.CreateOutput, error) {
	if err := h.store.Load(ctx); err != nil {
		return dto.CreateOutput{}, err
	}
	return h.store.Create(ctx, day)
}

// Show opens the sheet for day, fitting its grid to the current preferences.
func (h CLIHandler) Show(ctx context.Context, day string) (dto.Sheet, error) {
	return h.withSheet(ctx, day, func(id string) (dto.Sheet, error) {
		return h.store.Open(ctx, id)
	})
}

// Get looks the sheet for day up without fitting or persisting it.
func (h CLIHandler) Get(ctx context.Context, day string) (dto.Sheet, error) {
	return h.withSheet(ctx, day, func(string) (dto.Sheet, error) {
		return h.store.Find(ctx, day)
	})
}

func (h CLIHandler) Remove(ctx context.Context, day string) (dto.Sheet, error) {
	if err := h.store.Load(ctx); err != nil {
		return dto.Sheet{}, err
	}
	sheet, err := h.store.Find(ctx, day)
	if err != nil {
		return dto.Sheet{}, err
	}
	return sheet, h.store.Remove(ctx, sheet.ID)
}

func (h CLIHandler) AddPriority(ctx context.Context, day string) (dto.Sheet, error) {
	return h.withOpenSheet(ctx, day, func(id string) (dto.Sheet, error) {
		return h.store.AddPriority(ctx, id)
	})
}

func (h CLIHandler) RemovePriority(ctx context.Context, day string, index int) (dto.Sheet, error) {
	return h.withOpenSheet(ctx, day, func(id string) (dto.Sheet, error) {
		return h.store.RemovePriority(ctx, id, index)
	})
}

func (h CLIHandler) SetPriority(ctx context.Context, day string, index int, text string) (dto.Sheet, error) {
	return h.withOpenSheet(ctx, day, func(id string) (dto.Sheet, error) {
		return h.store.SetPriority(ctx, id, index, text)
	})
}

func (h CLIHandler) SetSlot(ctx context.Context, day string, index int, task string, notes *string) (dto.Sheet, error) {
	return h.withOpenSheet(ctx, day, func(id string) (dto.Sheet, error) {
		return h.store.SetSlot(ctx, id, index, task, notes)
	})
}

func (h CLIHandler) SetBrainDump(ctx context.Context, day string, text string) (dto.Sheet, error) {
	return h.withOpenSheet(ctx, day, func(id string) (dto.Sheet, error) {
		return h.store.SetBrainDump(ctx, id, text)
	})
}

// Export writes the grid the user would see, so the sheet is fitted first.
func (h CLIHandler) Export(ctx context.Context, day, dir string) (dto.ExportOutput, error) {
	var out dto.ExportOutput
	_, err := h.withOpenSheet(ctx, day, func(id string) (dto.Sheet, error) {
		var err error
		out, err = h.store.Export(ctx, dto.ExportInput{Date: day, Dir: dir})
		return dto.Sheet{}, err
	})
	return out, err
}

func (h CLIHandler) withSheet(ctx context.Context, day string, fn func(id string) (dto.Sheet, error)) (dto.Sheet, error) {
	if err := h.store.Load(ctx); err != nil {
		return dto.Sheet{}, err
	}
	sheet, err := h.store.Find(ctx, day)
	if err != nil {
		return dto.Sheet{}, err
	}
	return fn(sheet.ID)
}

// withOpenSheet fits the grid before editing so slot indexes refer to the
// grid the user sees.
func (h CLIHandler) withOpenSheet(ctx context.Context, day string, fn func(id string) (dto.Sheet, error)) (dto.Sheet, error) {
	return h.withSheet(ctx, day, func(id string) (dto.Sheet, error) {
		if _, err := h.store.Open(ctx, id); err != nil {
			return dto.Sheet{}, err
		}
		return fn(id)
	})
}

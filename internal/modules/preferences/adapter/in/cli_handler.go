package in

import (
	"context"

	"timebox/internal/modules/preferences/dto"
	prefsin "timebox/internal/modules/preferences/port/in"
)

type CLIHandler struct {
	store prefsin.Store
}

func NewCLIHandler(store prefsin.Store) CLIHandler {
	return CLIHandler{store: store}
}

func (h CLIHandler) Get(ctx context.Context) dto.Preferences {
	return h.store.Get(ctx)
}

// Update applies edit to the current value and saves the result.
func (h CLIHandler) Update(ctx context.Context, edit func(*dto.Preferences)) (dto.Preferences, error) {
	next := h.store.Get(ctx)
	edit(&next)
	return h.store.Set(ctx, next)
}

func (h CLIHandler) CanPersist() bool {
	return h.store.CanPersist()
}

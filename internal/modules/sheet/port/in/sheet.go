package in

import (
	"context"

	"timebox/internal/modules/sheet/dto"
)

// Store is the session-side sheet collection. Operations run one at a time.
type Store interface {
	Load(ctx context.Context) error
	List(ctx context.Context) ([]dto.Sheet, error)
	Active(ctx context.Context) (dto.Sheet, bool)
	Find(ctx context.Context, day string) (dto.Sheet, error)
	Open(ctx context.Context, id string) (dto.Sheet, error)
	Create(ctx context.Context, day string) (dto.CreateOutput, error)
	Update(ctx context.Context, sheet dto.Sheet) (dto.Sheet, error)
	Remove(ctx context.Context, id string) error

	AddPriority(ctx context.Context, id string) (dto.Sheet, error)
	RemovePriority(ctx context.Context, id string, index int) (dto.Sheet, error)
	SetPriority(ctx context.Context, id string, index int, text string) (dto.Sheet, error)
	SetSlotTask(ctx context.Context, id string, index int, task string) (dto.Sheet, error)
	SetSlotNotes(ctx context.Context, id string, index int, notes string) (dto.Sheet, error)
	SetSlot(ctx context.Context, id string, index int, task string, notes *string) (dto.Sheet, error)
	SetBrainDump(ctx context.Context, id string, text string) (dto.Sheet, error)

	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}

// Catalog is the server-side, owner-scoped sheet API.
type Catalog interface {
	List(ctx context.Context, owner string) ([]dto.Sheet, error)
	Create(ctx context.Context, owner string, input dto.CreateSheetInput) (dto.Sheet, error)
	Update(ctx context.Context, owner, id string, input dto.UpdateSheetInput) (dto.Sheet, error)
	Delete(ctx context.Context, owner, id string) error
}

package out

import (
	"context"

	"timebox/internal/modules/sheet/domain"
)

// Gateway persists the session's sheets. Implementations keep no state
// between calls.
type Gateway interface {
	List(ctx context.Context) ([]domain.Sheet, error)
	// Create stores s and returns it with the identifier the backing store
	// assigned. A sheet for the same day fails with ErrConflict.
	Create(ctx context.Context, s domain.Sheet) (domain.Sheet, error)
	Update(ctx context.Context, s domain.Sheet) (domain.Sheet, error)
	Remove(ctx context.Context, id string) error
}

// WindowSource yields the day window new and reopened grids are sized to.
type WindowSource interface {
	Window(ctx context.Context) (domain.Window, error)
}

// Repository is the server-side store, scoped by owner.
type Repository interface {
	List(ctx context.Context, owner string) ([]domain.Sheet, error)
	Get(ctx context.Context, owner, id string) (domain.Sheet, error)
	Insert(ctx context.Context, owner string, s domain.Sheet) error
	Update(ctx context.Context, owner string, s domain.Sheet) error
	Delete(ctx context.Context, owner, id string) error
}

type Exporter interface {
	Export(ctx context.Context, s domain.Sheet, dir string) (string, error)
}

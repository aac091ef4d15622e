package out

import (
	"context"

	"timebox/internal/modules/preferences/domain"
)

type Gateway interface {
	Fetch(ctx context.Context) (domain.Preferences, error)
	Save(ctx context.Context, prefs domain.Preferences) (domain.Preferences, error)
	// Persistent is false for gateways that only serve defaults.
	Persistent() bool
}

type Repository interface {
	// Get fails with ErrNotFound when the owner has no record yet.
	Get(ctx context.Context, owner string) (domain.Preferences, error)
	Upsert(ctx context.Context, owner string, prefs domain.Preferences) error
}

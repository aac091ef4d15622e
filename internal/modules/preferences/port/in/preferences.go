package in

import (
	"context"

	"timebox/internal/modules/preferences/dto"
)

// Store holds the session's preferences.
type Store interface {
	Load(ctx context.Context) error
	Get(ctx context.Context) dto.Preferences
	// Set fails with ErrUnsupported for guest sessions.
	Set(ctx context.Context, prefs dto.Preferences) (dto.Preferences, error)
	CanPersist() bool
}

// Catalog is the server side: one record per owner.
type Catalog interface {
	Get(ctx context.Context, owner string) (dto.Preferences, error)
	// Put merges patch onto the stored record (or the defaults).
	Put(ctx context.Context, owner string, patch dto.PreferencesPatch) (dto.Preferences, error)
}

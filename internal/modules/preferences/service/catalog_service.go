package service

import (
	"context"
	"errors"

	"timebox/internal/modules/preferences/domain"
	prefsout "timebox/internal/modules/preferences/port/out"
	apperrors "timebox/internal/platform/errors"
	"timebox/internal/platform/tx"
)

// CatalogService is the server side: Get creates the defaults on first
// access, Put upserts.
type CatalogService struct {
	repo prefsout.Repository
	tx   tx.Manager
}

func NewCatalogService(repo prefsout.Repository, txm tx.Manager) *CatalogService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &CatalogService{repo: repo, tx: txm}
}

func (s *CatalogService) Get(ctx context.Context, owner string) (domain.Preferences, error) {
	if owner == "" {
		return domain.Preferences{}, apperrors.ErrUnauthorized
	}
	var out domain.Preferences
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		prefs, err := s.repo.Get(ctx, owner)
		if errors.Is(err, apperrors.ErrNotFound) {
			prefs = domain.Defaults()
			if err := s.repo.Upsert(ctx, owner, prefs); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		out = prefs
		return nil
	})
	return out, err
}

// Put merges patch onto the stored record, or onto the defaults when the
// owner has none, and saves the result.
func (s *CatalogService) Put(ctx context.Context, owner string, patch domain.Patch) (domain.Preferences, error) {
	if owner == "" {
		return domain.Preferences{}, apperrors.ErrUnauthorized
	}
	var out domain.Preferences
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		current, err := s.repo.Get(ctx, owner)
		if errors.Is(err, apperrors.ErrNotFound) {
			current = domain.Defaults()
		} else if err != nil {
			return err
		}
		next := current.Apply(patch)
		if err := next.Validate(); err != nil {
			return err
		}
		if err := s.repo.Upsert(ctx, owner, next); err != nil {
			return err
		}
		out = next
		return nil
	})
	return out, err
}

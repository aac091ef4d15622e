package usecase

import (
	"context"

	"timebox/internal/modules/preferences/dto"
	prefsin "timebox/internal/modules/preferences/port/in"
	"timebox/internal/modules/preferences/service"
)

type Interactor struct {
	svc *service.PreferencesService
}

func NewInteractor(svc *service.PreferencesService) prefsin.Store {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context) error {
	return i.svc.Load(ctx)
}

func (i *Interactor) Get(context.Context) dto.Preferences {
	return dto.FromDomain(i.svc.Get())
}

func (i *Interactor) Set(ctx context.Context, prefs dto.Preferences) (dto.Preferences, error) {
	saved, err := i.svc.Set(ctx, prefs.ToDomain())
	if err != nil {
		return dto.Preferences{}, err
	}
	return dto.FromDomain(saved), nil
}

func (i *Interactor) CanPersist() bool {
	return i.svc.CanPersist()
}

type CatalogInteractor struct {
	svc *service.CatalogService
}

func NewCatalogInteractor(svc *service.CatalogService) prefsin.Catalog {
	return &CatalogInteractor{svc: svc}
}

func (i *CatalogInteractor) Get(ctx context.Context, owner string) (dto.Preferences, error) {
	prefs, err := i.svc.Get(ctx, owner)
	if err != nil {
		return dto.Preferences{}, err
	}
	return dto.FromDomain(prefs), nil
}

func (i *CatalogInteractor) Put(ctx context.Context, owner string, patch dto.PreferencesPatch) (dto.Preferences, error) {
	saved, err := i.svc.Put(ctx, owner, patch.ToDomain())
	if err != nil {
		return dto.Preferences{}, err
	}
	return dto.FromDomain(saved), nil
}

package usecase

import (
	"context"

	"timebox/internal/modules/sheet/domain"
	"timebox/internal/modules/sheet/dto"
	sheetin "timebox/internal/modules/sheet/port/in"
	"timebox/internal/modules/sheet/service"
)

type CatalogInteractor struct {
	svc *service.CatalogService
}

func NewCatalogInteractor(svc *service.CatalogService) sheetin.Catalog {
	return &CatalogInteractor{svc: svc}
}

func (i *CatalogInteractor) List(ctx context.Context, owner string) ([]dto.Sheet, error) {
	sheets, err := i.svc.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return dto.FromDomainList(sheets), nil
}

func (i *CatalogInteractor) Create(ctx context.Context, owner string, input dto.CreateSheetInput) (dto.Sheet, error) {
	return wrap(i.svc.Create(ctx, owner, domain.Sheet{
		Date:       input.Date,
		Priorities: input.Priorities,
		Hours:      dto.ToSlots(input.Hours),
		Window:     dto.ToDomainWindow(input.Window),
		BrainDump:  input.BrainDump,
	}))
}

func (i *CatalogInteractor) Update(ctx context.Context, owner, id string, input dto.UpdateSheetInput) (dto.Sheet, error) {
	return wrap(i.svc.Update(ctx, owner, id, domain.Sheet{
		Priorities: input.Priorities,
		Hours:      dto.ToSlots(input.Hours),
		Window:     dto.ToDomainWindow(input.Window),
		BrainDump:  input.BrainDump,
	}))
}

func (i *CatalogInteractor) Delete(ctx context.Context, owner, id string) error {
	return i.svc.Delete(ctx, owner, id)
}

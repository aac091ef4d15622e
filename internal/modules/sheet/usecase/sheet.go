package usecase

import (
	"context"

	"timebox/internal/modules/sheet/domain"
	"timebox/internal/modules/sheet/dto"
	sheetin "timebox/internal/modules/sheet/port/in"
	"timebox/internal/modules/sheet/service"
)

type Interactor struct {
	svc *service.SheetService
}

func NewInteractor(svc *service.SheetService) sheetin.Store {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context) error {
	return i.svc.Load(ctx)
}

func (i *Interactor) List(_ context.Context) ([]dto.Sheet, error) {
	return dto.FromDomainList(i.svc.List()), nil
}

func (i *Interactor) Active(_ context.Context) (dto.Sheet, bool) {
	sheet, ok := i.svc.Active()
	if !ok {
		return dto.Sheet{}, false
	}
	return dto.FromDomain(sheet), true
}

func (i *Interactor) Find(_ context.Context, day string) (dto.Sheet, error) {
	sheet, err := i.svc.Find(day)
	if err != nil {
		return dto.Sheet{}, err
	}
	return dto.FromDomain(sheet), nil
}

func (i *Interactor) Open(ctx context.Context, id string) (dto.Sheet, error) {
	return wrap(i.svc.Open(ctx, id))
}

func (i *Interactor) Create(ctx context.Context, day string) (dto.CreateOutput, error) {
	sheet, existed, err := i.svc.Create(ctx, day)
	if err != nil {
		return dto.CreateOutput{}, err
	}
	return dto.CreateOutput{Sheet: dto.FromDomain(sheet), Existed: existed}, nil
}

func (i *Interactor) Update(ctx context.Context, sheet dto.Sheet) (dto.Sheet, error) {
	return wrap(i.svc.Update(ctx, sheet.ToDomain()))
}

func (i *Interactor) Remove(ctx context.Context, id string) error {
	return i.svc.Remove(ctx, id)
}

func (i *Interactor) AddPriority(ctx context.Context, id string) (dto.Sheet, error) {
	return wrap(i.svc.Edit(ctx, id, func(s domain.Sheet) (domain.Sheet, error) {
		return domain.AddPriority(s), nil
	}))
}

func (i *Interactor) RemovePriority(ctx context.Context, id string, index int) (dto.Sheet, error) {
	return wrap(i.svc.Edit(ctx, id, func(s domain.Sheet) (domain.Sheet, error) {
		return domain.RemovePriority(s, index)
	}))
}

func (i *Interactor) SetPriority(ctx context.Context, id string, index int, text string) (dto.Sheet, error) {
	return wrap(i.svc.Edit(ctx, id, func(s domain.Sheet) (domain.Sheet, error) {
		return domain.SetPriority(s, index, text)
	}))
}

func (i *Interactor) SetSlotTask(ctx context.Context, id string, index int, task string) (dto.Sheet, error) {
	return wrap(i.svc.Edit(ctx, id, func(s domain.Sheet) (domain.Sheet, error) {
		return domain.SetSlotTask(s, index, task)
	}))
}

func (i *Interactor) SetSlotNotes(ctx context.Context, id string, index int, notes string) (dto.Sheet, error) {
	return wrap(i.svc.Edit(ctx, id, func(s domain.Sheet) (domain.Sheet, error) {
		return domain.SetSlotNotes(s, index, notes)
	}))
}

func (i *Interactor) SetSlot(ctx context.Context, id string, index int, task string, notes *string) (dto.Sheet, error) {
	return wrap(i.svc.Edit(ctx, id, func(s domain.Sheet) (domain.Sheet, error) {
		return domain.SetSlot(s, index, task, notes)
	}))
}

func (i *Interactor) SetBrainDump(ctx context.Context, id string, text string) (dto.Sheet, error) {
	return wrap(i.svc.Edit(ctx, id, func(s domain.Sheet) (domain.Sheet, error) {
		return domain.SetBrainDump(s, text), nil
	}))
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	path, err := i.svc.Export(ctx, input.Date, input.Dir)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Path: path}, nil
}

func wrap(sheet domain.Sheet, err error) (dto.Sheet, error) {
	if err != nil {
		return dto.Sheet{}, err
	}
	return dto.FromDomain(sheet), nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"timebox/internal/modules/sheet/domain"
	sheetout "timebox/internal/modules/sheet/port/out"
	"timebox/internal/platform/clock"
	"timebox/internal/platform/daykey"
	apperrors "timebox/internal/platform/errors"
	"timebox/internal/platform/id"
	"timebox/internal/platform/tx"
)

// CatalogService is the server side of the sheet API. Every call is scoped
// to an owner; one owner never sees another's sheets.
type CatalogService struct {
	repo   sheetout.Repository
	tx     tx.Manager
	clock  clock.Clock
	idGen  id.Generator
	loc    *time.Location
	locale daykey.Locale
}

func NewCatalogService(repo sheetout.Repository, txm tx.Manager, clk clock.Clock, idGen id.Generator, loc *time.Location, locale daykey.Locale) *CatalogService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if loc == nil {
		loc = time.Local
	}
	if locale == "" {
		locale = daykey.DefaultLocale
	}
	return &CatalogService{repo: repo, tx: txm, clock: clk, idGen: idGen, loc: loc, locale: locale}
}

func (s *CatalogService) List(ctx context.Context, owner string) ([]domain.Sheet, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	sheets, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	for i := range sheets {
		sheets[i].FormattedDate = daykey.Label(sheets[i].Date, s.locale)
	}
	domain.SortByDateDesc(sheets)
	return sheets, nil
}

// Create reads date, priorities, hours, window and brain dump from draft.
// A duplicate day for the owner fails with ErrConflict from the repository.
func (s *CatalogService) Create(ctx context.Context, owner string, draft domain.Sheet) (domain.Sheet, error) {
	if err := requireOwner(owner); err != nil {
		return domain.Sheet{}, err
	}
	key, err := daykey.Canonical(draft.Date, s.loc)
	if err != nil {
		return domain.Sheet{}, err
	}
	now := s.clock.Now()
	sheet := domain.Sheet{
		ID:         s.idGen.New(),
		Date:       key,
		Priorities: append([]string(nil), draft.Priorities...),
		Hours:      append([]domain.Slot(nil), draft.Hours...),
		BrainDump:  draft.BrainDump,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if len(sheet.Priorities) == 0 {
		sheet.Priorities = []string{""}
	}
	if draft.Window != nil {
		w := *draft.Window
		sheet.Window = &w
		if len(sheet.Hours) == 0 {
			sheet.Hours = domain.BlankHours(w.Slots())
		}
	}
	if err := sheet.Validate(); err != nil {
		return domain.Sheet{}, err
	}
	if err := s.repo.Insert(ctx, owner, sheet); err != nil {
		return domain.Sheet{}, err
	}
	sheet.FormattedDate = daykey.Label(sheet.Date, s.locale)
	return sheet, nil
}

// Update overwrites priorities, hours, brain dump and (when given) window.
func (s *CatalogService) Update(ctx context.Context, owner, sheetID string, patch domain.Sheet) (domain.Sheet, error) {
	if err := requireOwner(owner); err != nil {
		return domain.Sheet{}, err
	}
	var out domain.Sheet
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		current, err := s.repo.Get(ctx, owner, sheetID)
		if err != nil {
			return err
		}
		current.Priorities = append([]string(nil), patch.Priorities...)
		current.Hours = append([]domain.Slot(nil), patch.Hours...)
		current.BrainDump = patch.BrainDump
		if patch.Window != nil {
			w := *patch.Window
			current.Window = &w
		}
		current.UpdatedAt = s.clock.Now()
		if err := current.Validate(); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, owner, current); err != nil {
			return err
		}
		out = current
		return nil
	})
	if err != nil {
		return domain.Sheet{}, err
	}
	out.FormattedDate = daykey.Label(out.Date, s.locale)
	return out, nil
}

func (s *CatalogService) Delete(ctx context.Context, owner, sheetID string) error {
	if err := requireOwner(owner); err != nil {
		return err
	}
	return s.repo.Delete(ctx, owner, sheetID)
}

func requireOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return fmt.Errorf("%w: no principal", apperrors.ErrUnauthorized)
	}
	return nil
}

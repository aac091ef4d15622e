package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"timebox/internal/modules/sheet/domain"
	sheetout "timebox/internal/modules/sheet/port/out"
	"timebox/internal/platform/clock"
	"timebox/internal/platform/daykey"
	apperrors "timebox/internal/platform/errors"
	"timebox/internal/platform/toast"
)

// SheetService owns the session's sheet collection and active sheet. One
// mutex is held across each gateway call so operations run to completion
// in order; memory changes only after the gateway succeeds.
type SheetService struct {
	gateway  sheetout.Gateway
	windows  sheetout.WindowSource
	exporter sheetout.Exporter
	toasts   toast.Emitter
	clock    clock.Clock
	loc      *time.Location
	locale   daykey.Locale

	mu     sync.Mutex
	sheets []domain.Sheet
	active string
}

type Options struct {
	Gateway  sheetout.Gateway
	Windows  sheetout.WindowSource
	Exporter sheetout.Exporter
	Toasts   toast.Emitter
	Clock    clock.Clock
	Location *time.Location
	Locale   daykey.Locale
}

func NewSheetService(opts Options) *SheetService {
	s := &SheetService{
		gateway:  opts.Gateway,
		windows:  opts.Windows,
		exporter: opts.Exporter,
		toasts:   opts.Toasts,
		clock:    opts.Clock,
		loc:      opts.Location,
		locale:   opts.Locale,
	}
	if s.toasts == nil {
		s.toasts = toast.Discard{}
	}
	if s.clock == nil {
		s.clock = clock.SystemClock{}
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.locale == "" {
		s.locale = daykey.DefaultLocale
	}
	return s
}

// Load replaces the collection with what the gateway holds. The active
// sheet survives when it is still present.
func (s *SheetService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheets, err := s.gateway.List(ctx)
	if err != nil {
		s.toasts.Emit(toast.New(toast.Error, "Error al cargar las hojas"))
		return fmt.Errorf("load sheets: %w", err)
	}
	s.sheets = make([]domain.Sheet, 0, len(sheets))
	for _, sheet := range sheets {
		s.sheets = append(s.sheets, sheet.Clone())
	}
	if _, ok := s.indexOf(s.active); !ok {
		s.active = ""
	}
	return nil
}

// List returns copies ordered newest day first.
func (s *SheetService) List() []domain.Sheet {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Sheet, 0, len(s.sheets))
	for _, sheet := range s.sheets {
		out = append(out, s.labeled(sheet))
	}
	domain.SortByDateDesc(out)
	return out
}

func (s *SheetService) Active() (domain.Sheet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(s.active)
	if !ok {
		return domain.Sheet{}, false
	}
	return s.labeled(s.sheets[i]), true
}

// Find looks a sheet up by day; day may be a key or a relative word.
func (s *SheetService) Find(day string) (domain.Sheet, error) {
	key, err := daykey.Resolve(day, s.clock.Now(), s.loc)
	if err != nil {
		return domain.Sheet{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOfDay(key)
	if !ok {
		return domain.Sheet{}, fmt.Errorf("%w: no sheet for %s", apperrors.ErrNotFound, key)
	}
	return s.labeled(s.sheets[i]), nil
}

// Create returns the existing sheet for day, flagged existed, without calling
// the gateway. Otherwise it builds a blank sheet sized to the current window
// and persists it; on success it becomes active.
func (s *SheetService) Create(ctx context.Context, day string) (domain.Sheet, bool, error) {
	key, err := daykey.Resolve(day, s.clock.Now(), s.loc)
	if err != nil {
		return domain.Sheet{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	label := daykey.Label(key, s.locale)
	if i, ok := s.indexOfDay(key); ok {
		s.active = s.sheets[i].ID
		s.toasts.Emit(toast.New(toast.Warning, "Ya existe un TimeBox para %s", label))
		return s.labeled(s.sheets[i]), true, nil
	}

	window, err := s.windows.Window(ctx)
	if err != nil {
		return domain.Sheet{}, false, fmt.Errorf("read day window: %w", err)
	}
	draft := domain.New("", key, window, s.clock.Now())
	created, err := s.gateway.Create(ctx, draft)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.toasts.Emit(toast.New(toast.Warning, "Ya existe un TimeBox para %s", label))
		} else {
			s.toasts.Emit(toast.New(toast.Error, "Error al crear la hoja"))
		}
		return domain.Sheet{}, false, fmt.Errorf("create sheet %s: %w", key, err)
	}

	s.sheets = append(s.sheets, created.Clone())
	s.active = created.ID
	s.toasts.Emit(toast.New(toast.Success, "TimeBox creado para %s", label))
	return s.labeled(created), false, nil
}

// Update overwrites the mutable fields of the stored sheet with the same id.
// Id, date and creation time always come from the stored copy.
func (s *SheetService) Update(ctx context.Context, next domain.Sheet) (domain.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(ctx, next)
}

func (s *SheetService) update(ctx context.Context, next domain.Sheet) (domain.Sheet, error) {
	i, ok := s.indexOf(next.ID)
	if !ok || next.ID == "" {
		return domain.Sheet{}, fmt.Errorf("%w: sheet %q", apperrors.ErrNotFound, next.ID)
	}
	stored := s.sheets[i]

	merged := stored.Clone()
	merged.Priorities = append([]string(nil), next.Priorities...)
	merged.Hours = append([]domain.Slot(nil), next.Hours...)
	merged.BrainDump = next.BrainDump
	if next.Window != nil {
		w := *next.Window
		merged.Window = &w
	}
	merged.UpdatedAt = s.clock.Now()
	if err := merged.Validate(); err != nil {
		return domain.Sheet{}, err
	}

	saved, err := s.gateway.Update(ctx, merged)
	if err != nil {
		s.toasts.Emit(toast.New(toast.Error, "Error al actualizar la hoja"))
		return domain.Sheet{}, fmt.Errorf("update sheet %s: %w", stored.ID, err)
	}
	saved.ID = stored.ID
	saved.Date = stored.Date
	saved.CreatedAt = stored.CreatedAt

	s.sheets[i] = saved.Clone()
	s.active = saved.ID
	return s.labeled(saved), nil
}

func (s *SheetService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(id)
	if !ok || id == "" {
		return fmt.Errorf("%w: sheet %q", apperrors.ErrNotFound, id)
	}
	if err := s.gateway.Remove(ctx, id); err != nil {
		s.toasts.Emit(toast.New(toast.Error, "Error al eliminar la hoja"))
		return fmt.Errorf("remove sheet %s: %w", id, err)
	}
	s.sheets = append(s.sheets[:i:i], s.sheets[i+1:]...)
	if s.active == id {
		s.active = ""
	}
	s.toasts.Emit(toast.New(toast.Success, "TimeBox eliminado correctamente"))
	return nil
}

// Open makes id the active sheet and fits its grid to the current window,
// persisting the resized grid when it changed.
func (s *SheetService) Open(ctx context.Context, id string) (domain.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(id)
	if !ok || id == "" {
		return domain.Sheet{}, fmt.Errorf("%w: sheet %q", apperrors.ErrNotFound, id)
	}
	window, err := s.windows.Window(ctx)
	if err != nil {
		return domain.Sheet{}, fmt.Errorf("read day window: %w", err)
	}
	fitted, changed := domain.Fit(s.sheets[i], window)
	if !changed {
		s.active = id
		return s.labeled(s.sheets[i]), nil
	}
	return s.update(ctx, fitted)
}

// Edit applies fn to the stored sheet and persists the result.
func (s *SheetService) Edit(ctx context.Context, id string, fn func(domain.Sheet) (domain.Sheet, error)) (domain.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(id)
	if !ok || id == "" {
		return domain.Sheet{}, fmt.Errorf("%w: sheet %q", apperrors.ErrNotFound, id)
	}
	next, err := fn(s.sheets[i].Clone())
	if err != nil {
		return domain.Sheet{}, err
	}
	return s.update(ctx, next)
}

// Export writes the sheet for day through the exporter into dir.
func (s *SheetService) Export(ctx context.Context, day, dir string) (string, error) {
	if s.exporter == nil {
		return "", fmt.Errorf("%w: no exporter configured", apperrors.ErrUnsupported)
	}
	sheet, err := s.Find(day)
	if err != nil {
		return "", err
	}
	path, err := s.exporter.Export(ctx, sheet, dir)
	if err != nil {
		s.toasts.Emit(toast.New(toast.Error, "Error al exportar la hoja"))
		return "", fmt.Errorf("export sheet %s: %w", sheet.Date, err)
	}
	s.toasts.Emit(toast.New(toast.Success, "TimeBox exportado a %s", path))
	return path, nil
}

func (s *SheetService) indexOf(id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	for i := range s.sheets {
		if s.sheets[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *SheetService) indexOfDay(day string) (int, bool) {
	for i := range s.sheets {
		if s.sheets[i].Date == day {
			return i, true
		}
	}
	return 0, false
}

func (s *SheetService) labeled(sheet domain.Sheet) domain.Sheet {
	out := sheet.Clone()
	out.FormattedDate = daykey.Label(out.Date, s.locale)
	return out
}

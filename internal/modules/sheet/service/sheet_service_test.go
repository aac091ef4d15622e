package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"timebox/internal/modules/sheet/domain"
	"timebox/internal/modules/sheet/service"
	"timebox/internal/platform/clock"
	"timebox/internal/platform/daykey"
	apperrors "timebox/internal/platform/errors"
	"timebox/internal/platform/toast"
)

var today = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

type harness struct {
	svc     *service.SheetService
	gateway *fakeGateway
	window  *fixedWindow
	toasts  *toast.Recorder
	export  *fakeExporter
}

func newHarness(seed ...domain.Sheet) harness {
	h := harness{
		gateway: newFakeGateway(seed...),
		window:  &fixedWindow{window: domain.Window{StartHour: 9, EndHour: 11}},
		toasts:  &toast.Recorder{},
		export:  &fakeExporter{},
	}
	h.svc = service.NewSheetService(service.Options{
		Gateway:  h.gateway,
		Windows:  h.window,
		Exporter: h.export,
		Toasts:   h.toasts,
		Clock:    clock.Fixed(today),
		Location: time.UTC,
		Locale:   daykey.DefaultLocale,
	})
	return h
}

func TestCreateTwiceReturnsExistingAndWarns(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()

	first, existed, err := h.svc.Create(ctx, "2024-03-01")
	if err != nil || existed {
		t.Fatalf("first create: existed=%v err=%v", existed, err)
	}
	if len(first.Hours) != 6 || len(first.Priorities) != 1 || first.BrainDump != "" {
		t.Fatalf("unexpected blank sheet: %+v", first)
	}
	if !strings.EqualFold(first.FormattedDate, "01 marzo 2024") {
		t.Fatalf("unexpected label %q", first.FormattedDate)
	}

	second, existed, err := h.svc.Create(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if !existed || second.ID != first.ID {
		t.Fatalf("expected existing sheet %s, got %s existed=%v", first.ID, second.ID, existed)
	}
	if h.gateway.calls["create"] != 1 {
		t.Fatalf("gateway create must be called once, got %d", h.gateway.calls["create"])
	}
	if got := len(h.svc.List()); got != 1 {
		t.Fatalf("expected 1 sheet, got %d", got)
	}
	last, _ := h.toasts.Last()
	if last.Kind != toast.Warning || !strings.Contains(strings.ToLower(last.Message), "01 marzo 2024") {
		t.Fatalf("expected warning toast, got %+v", last)
	}
	active, ok := h.svc.Active()
	if !ok || active.ID != first.ID {
		t.Fatalf("existing sheet should be active")
	}
}

func TestCreateResolvesRelativeDays(t *testing.T) {
	t.Parallel()
	h := newHarness()
	sheet, _, err := h.svc.Create(context.Background(), "mañana")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sheet.Date != "2024-03-02" {
		t.Fatalf("expected tomorrow, got %s", sheet.Date)
	}
	if _, _, err := h.svc.Create(context.Background(), "someday"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCreateFailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.gateway.failOn = "create"

	if _, _, err := h.svc.Create(context.Background(), "2024-03-01"); !errors.Is(err, apperrors.ErrAdapterFailure) {
		t.Fatalf("expected adapter failure, got %v", err)
	}
	if len(h.svc.List()) != 0 {
		t.Fatalf("collection must stay empty")
	}
	if _, ok := h.svc.Active(); ok {
		t.Fatalf("no sheet should be active")
	}
	last, _ := h.toasts.Last()
	if last.Kind != toast.Error {
		t.Fatalf("expected error toast, got %+v", last)
	}
}

func TestCreateGatewayConflictWarns(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.gateway.failOn = "create"
	h.gateway.failErr = apperrors.ErrConflict

	if _, _, err := h.svc.Create(context.Background(), "2024-03-01"); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	last, _ := h.toasts.Last()
	if last.Kind != toast.Warning {
		t.Fatalf("expected warning toast, got %+v", last)
	}
}

func TestUpdateKeepsImmutableFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	created, _, err := h.svc.Create(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	payload := created.Clone()
	payload.Date = "1999-01-01"
	payload.CreatedAt = time.Time{}
	payload.Priorities = []string{"ship", "review"}
	payload.Hours[0].Task = "standup"
	payload.BrainDump = "ideas"
	if _, err := h.svc.Update(ctx, payload); err != nil {
		t.Fatalf("update: %v", err)
	}

	list := h.svc.List()
	if len(list) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(list))
	}
	got := list[0]
	if got.ID != created.ID || got.Date != "2024-03-01" || !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("immutable fields changed: %+v", got)
	}
	if got.Priorities[1] != "review" || got.Hours[0] != (domain.Slot{Task: "standup"}) || got.BrainDump != "ideas" {
		t.Fatalf("mutable fields not applied: %+v", got)
	}
}

func TestUpdateUnknownIDSkipsGateway(t *testing.T) {
	t.Parallel()
	h := newHarness()
	_, err := h.svc.Update(context.Background(), domain.Sheet{ID: "ghost", Priorities: []string{"x"}})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if h.gateway.calls["update"] != 0 {
		t.Fatalf("gateway must not be called")
	}
}

func TestUpdateFailureKeepsOldValue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	created, _, _ := h.svc.Create(ctx, "2024-03-01")
	h.gateway.failOn = "update"

	changed := domain.SetBrainDump(created, "lost")
	if _, err := h.svc.Update(ctx, changed); err == nil {
		t.Fatalf("expected failure")
	}
	if got := h.svc.List()[0].BrainDump; got != "" {
		t.Fatalf("memory must be unchanged, got %q", got)
	}
}

func TestRemoveClearsActive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	created, _, _ := h.svc.Create(ctx, "2024-03-01")

	if err := h.svc.Remove(ctx, created.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	for _, s := range h.svc.List() {
		if s.ID == created.ID {
			t.Fatalf("removed sheet still listed")
		}
	}
	if _, ok := h.svc.Active(); ok {
		t.Fatalf("active sheet should be cleared")
	}
	if err := h.svc.Remove(ctx, created.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveFailureKeepsSheet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	created, _, _ := h.svc.Create(ctx, "2024-03-01")
	h.gateway.failOn = "remove"

	if err := h.svc.Remove(ctx, created.ID); err == nil {
		t.Fatalf("expected failure")
	}
	if len(h.svc.List()) != 1 {
		t.Fatalf("sheet must still be there")
	}
	if _, ok := h.svc.Active(); !ok {
		t.Fatalf("active sheet must be kept")
	}
}

func TestStandupScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	created, _, _ := h.svc.Create(ctx, "2024-03-01")

	updated, err := h.svc.Edit(ctx, created.ID, func(s domain.Sheet) (domain.Sheet, error) {
		return domain.SetSlotTask(s, 0, "standup")
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(updated.Hours) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(updated.Hours))
	}
	if updated.Hours[0] != (domain.Slot{Task: "standup", Notes: ""}) {
		t.Fatalf("unexpected slot 0: %+v", updated.Hours[0])
	}
}

func TestOpenFitsGridToNewWindow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	created, _, _ := h.svc.Create(ctx, "2024-03-01")
	created, _ = h.svc.Edit(ctx, created.ID, func(s domain.Sheet) (domain.Sheet, error) {
		return domain.SetSlotTask(s, 2, "deep work") // 10:00
	})

	h.window.window = domain.Window{StartHour: 10, EndHour: 14}
	opened, err := h.svc.Open(ctx, created.ID)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(opened.Hours) != 2*(14-10+1) {
		t.Fatalf("expected 10 slots, got %d", len(opened.Hours))
	}
	if opened.Hours[0].Task != "deep work" {
		t.Fatalf("10:00 task should move to slot 0, got %+v", opened.Hours[0])
	}
	if h.gateway.sheets[0].Window.StartHour != 10 {
		t.Fatalf("resized grid should be persisted")
	}

	updates := h.gateway.calls["update"]
	if _, err := h.svc.Open(ctx, created.ID); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if h.gateway.calls["update"] != updates {
		t.Fatalf("reopening an already fitted sheet must not write")
	}
}

func TestOpenResetsLegacySheet(t *testing.T) {
	t.Parallel()
	legacy := domain.Sheet{ID: "old", Date: "2024-02-01", Priorities: []string{"a"}, Hours: make([]domain.Slot, 22)}
	legacy.Hours[0].Task = "gone"
	h := newHarness(legacy)
	if err := h.svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	opened, err := h.svc.Open(context.Background(), "old")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(opened.Hours) != 6 || opened.Hours[0].Task != "" {
		t.Fatalf("legacy grid should be reset to 6 blank slots, got %+v", opened.Hours)
	}
}

func TestLoadFailureEmitsError(t *testing.T) {
	t.Parallel()
	h := newHarness()
	h.gateway.failOn = "list"
	if err := h.svc.Load(context.Background()); !errors.Is(err, apperrors.ErrAdapterFailure) {
		t.Fatalf("expected adapter failure, got %v", err)
	}
	last, ok := h.toasts.Last()
	if !ok || last.Kind != toast.Error {
		t.Fatalf("expected error toast, got %+v", last)
	}
}

func TestListIsNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	for _, day := range []string{"2024-03-01", "2024-03-05", "2024-02-28"} {
		if _, _, err := h.svc.Create(ctx, day); err != nil {
			t.Fatalf("create %s: %v", day, err)
		}
	}
	list := h.svc.List()
	if list[0].Date != "2024-03-05" || list[2].Date != "2024-02-28" {
		t.Fatalf("unexpected order: %s %s %s", list[0].Date, list[1].Date, list[2].Date)
	}
}

func TestExport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	if _, _, err := h.svc.Create(ctx, "hoy"); err != nil {
		t.Fatalf("create: %v", err)
	}
	path, err := h.svc.Export(ctx, "today", "/tmp/out")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if path != "/tmp/out/2024-03-01.md" || len(h.export.exported) != 1 {
		t.Fatalf("unexpected export %q (%d)", path, len(h.export.exported))
	}
	if h.export.exported[0].FormattedDate == "" {
		t.Fatalf("exported sheet should carry its label")
	}
	if _, err := h.svc.Export(ctx, "2020-01-01", "/tmp/out"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

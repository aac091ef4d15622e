package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	sheetout "timebox/internal/modules/sheet/adapter/out"
	"timebox/internal/modules/sheet/domain"
	"timebox/internal/modules/sheet/dto"
	sheetin "timebox/internal/modules/sheet/port/in"
	"timebox/internal/modules/sheet/service"
	"timebox/internal/modules/sheet/usecase"
	"timebox/internal/platform/clock"
	apperrors "timebox/internal/platform/errors"
	"timebox/internal/platform/id"
	"timebox/internal/platform/toast"
)

type staticWindow domain.Window

func (w staticWindow) Window(context.Context) (domain.Window, error) {
	return domain.Window(w), nil
}

func newGuestStore(t *testing.T, dir string) (sheetin.Store, *toast.Recorder) {
	t.Helper()
	clk := clock.Fixed(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	rec := &toast.Recorder{}
	svc := service.NewSheetService(service.Options{
		Gateway:  sheetout.NewLocalGateway(dir, id.NewTimestamp(clk)),
		Windows:  staticWindow{StartHour: 9, EndHour: 11},
		Exporter: sheetout.NewMarkdownExporter(),
		Toasts:   rec,
		Clock:    clk,
		Location: time.UTC,
	})
	return usecase.NewInteractor(svc), rec
}

func TestGuestStoreEndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	store, rec := newGuestStore(t, dir)

	if err := store.Load(ctx); err != nil {
		t.Fatalf("load empty storage: %v", err)
	}
	out, err := store.Create(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sheetID := out.Sheet.ID
	if sheetID == "" || out.Existed {
		t.Fatalf("unexpected create output: %+v", out)
	}
	if last, _ := rec.Last(); last.Kind != toast.Success {
		t.Fatalf("expected success toast, got %+v", last)
	}

	for i := 0; i < 12; i++ {
		if _, err := store.AddPriority(ctx, sheetID); err != nil {
			t.Fatalf("add priority: %v", err)
		}
	}
	sheet, err := store.SetPriority(ctx, sheetID, 0, "ship")
	if err != nil {
		t.Fatalf("set priority: %v", err)
	}
	if len(sheet.Priorities) != domain.MaxPriorities {
		t.Fatalf("expected %d priorities, got %d", domain.MaxPriorities, len(sheet.Priorities))
	}
	if _, err := store.RemovePriority(ctx, sheetID, 9); err != nil {
		t.Fatalf("remove priority: %v", err)
	}
	if _, err := store.SetSlotTask(ctx, sheetID, 0, "standup"); err != nil {
		t.Fatalf("set slot: %v", err)
	}
	if _, err := store.SetSlotNotes(ctx, sheetID, 1, "coffee"); err != nil {
		t.Fatalf("set notes: %v", err)
	}
	if _, err := store.SetBrainDump(ctx, sheetID, "ideas"); err != nil {
		t.Fatalf("set dump: %v", err)
	}
	if _, err := store.SetSlotTask(ctx, sheetID, 6, "late"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for slot 6, got %v", err)
	}

	// a new session over the same directory reads everything back
	reopened, _ := newGuestStore(t, dir)
	if err := reopened.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, err := reopened.Find(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != sheetID || got.Priorities[0] != "ship" || len(got.Priorities) != 9 {
		t.Fatalf("priorities not persisted: %+v", got.Priorities)
	}
	if got.Hours[0].Task != "standup" || got.Hours[1].Notes != "coffee" || got.BrainDump != "ideas" {
		t.Fatalf("grid not persisted: %+v", got)
	}
	if _, ok := reopened.Active(ctx); ok {
		t.Fatalf("a fresh session starts without an active sheet")
	}

	export, err := reopened.Export(ctx, dto.ExportInput{Date: "2024-03-01", Dir: t.TempDir()})
	if err != nil || export.Path == "" {
		t.Fatalf("export: %q %v", export.Path, err)
	}

	if err := reopened.Remove(ctx, sheetID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	list, _ := reopened.List(ctx)
	if len(list) != 0 {
		t.Fatalf("expected empty list after remove, got %d", len(list))
	}
}

package toast_test

import (
	"bytes"
	"strings"
	"testing"

	"timebox/internal/platform/toast"
)

func TestGateDropsSuccessWhenNotificationsOff(t *testing.T) {
	t.Parallel()
	rec := &toast.Recorder{}
	enabled := false
	gate := toast.Gate{Next: rec, Enabled: func() bool { return enabled }}

	gate.Emit(toast.New(toast.Success, "created"))
	gate.Emit(toast.New(toast.Info, "hint"))
	gate.Emit(toast.New(toast.Warning, "exists"))
	gate.Emit(toast.New(toast.Error, "failed"))
	got := rec.Toasts()
	if len(got) != 2 || got[0].Kind != toast.Warning || got[1].Kind != toast.Error {
		t.Fatalf("expected only warning and error, got %+v", got)
	}

	enabled = true
	gate.Emit(toast.New(toast.Success, "created %s", "again"))
	last, ok := rec.Last()
	if !ok || last.Message != "created again" {
		t.Fatalf("expected success once enabled, got %+v", last)
	}
	if last.Duration != toast.DefaultDuration {
		t.Fatalf("expected default duration, got %s", last.Duration)
	}
}

func TestTerminalEmitterWritesOneLinePerToast(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	emitter := toast.NewTerminalEmitter(&buf, nil)
	emitter.Emit(toast.New(toast.Success, "TimeBox deleted"))
	emitter.Emit(toast.New(toast.Error, "could not save"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "TimeBox deleted") || !strings.Contains(lines[1], "could not save") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

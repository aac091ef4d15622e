package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"timebox/internal/platform/config"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func guestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.GuestDir = filepath.Join(dir, "guest")
	path := filepath.Join(dir, "config.yaml")
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	return path
}

func TestHashPasswordFromStdin(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "s3cret\n", "hash-password")
	if err != nil {
		t.Fatalf("hash-password: %v", err)
	}
	hash := strings.TrimSpace(out)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")); err != nil {
		t.Fatalf("hash does not match: %v", err)
	}
}

func TestGuestSheetCommands(t *testing.T) {
	t.Parallel()
	cfgPath := guestConfig(t)

	out, _, err := execute(t, "", "--config", cfgPath, "sheet", "new", "2024-03-01")
	if err != nil || !strings.Contains(out, "created 2024-03-01") {
		t.Fatalf("sheet new: %q %v", out, err)
	}
	out, _, err = execute(t, "", "--config", cfgPath, "sheet", "new", "2024-03-01")
	if err != nil || !strings.Contains(out, "exists 2024-03-01") {
		t.Fatalf("duplicate sheet new: %q %v", out, err)
	}
	if _, _, err := execute(t, "", "--config", cfgPath, "sheet", "priority", "set", "2024-03-01", "1", "ship", "it"); err != nil {
		t.Fatalf("priority set: %v", err)
	}
	if _, _, err := execute(t, "", "--config", cfgPath, "sheet", "slot", "set", "2024-03-01", "0", "standup", "--notes", "daily"); err != nil {
		t.Fatalf("slot set: %v", err)
	}
	if _, _, err := execute(t, "plan the week\n", "--config", cfgPath, "sheet", "dump", "set", "2024-03-01", "-"); err != nil {
		t.Fatalf("dump set: %v", err)
	}

	out, _, err = execute(t, "", "--config", cfgPath, "sheet", "show", "2024-03-01")
	if err != nil {
		t.Fatalf("sheet show: %v", err)
	}
	for _, want := range []string{"01 marzo 2024", "ship it", "standup", "plan the week"} {
		if !strings.Contains(out, want) {
			t.Fatalf("show missing %q:\n%s", want, out)
		}
	}

	out, _, err = execute(t, "", "--config", cfgPath, "sheet", "list")
	if err != nil || !strings.Contains(out, "2024-03-01") || !strings.Contains(out, "1/1") {
		t.Fatalf("sheet list: %q %v", out, err)
	}

	if _, _, err := execute(t, "", "--config", cfgPath, "sheet", "rm", "--yes", "2024-03-01"); err != nil {
		t.Fatalf("sheet rm: %v", err)
	}
	out, _, err = execute(t, "", "--config", cfgPath, "sheet", "list")
	if err != nil || !strings.Contains(out, "no sheets") {
		t.Fatalf("list after rm: %q %v", out, err)
	}
}

// Not parallel: it swaps the package-level confirm prompt.
func TestSheetRemoveAsksFirst(t *testing.T) {
	cfgPath := guestConfig(t)
	if _, _, err := execute(t, "", "--config", cfgPath, "sheet", "new", "2024-03-01"); err != nil {
		t.Fatalf("sheet new: %v", err)
	}

	prev := confirm
	defer func() { confirm = prev }()
	var asked []string
	answer := false
	confirm = func(_ *cobra.Command, title string) (bool, error) {
		asked = append(asked, title)
		return answer, nil
	}

	out, _, err := execute(t, "", "--config", cfgPath, "sheet", "rm", "2024-03-01")
	if err != nil || !strings.Contains(out, "kept 2024-03-01") {
		t.Fatalf("declined rm: %q %v", out, err)
	}
	if len(asked) != 1 || !strings.Contains(asked[0], "01 marzo 2024") {
		t.Fatalf("unexpected prompts: %q", asked)
	}
	out, _, err = execute(t, "", "--config", cfgPath, "sheet", "list")
	if err != nil || !strings.Contains(out, "2024-03-01") {
		t.Fatalf("sheet gone after declined rm: %q %v", out, err)
	}

	answer = true
	out, _, err = execute(t, "", "--config", cfgPath, "sheet", "rm", "2024-03-01")
	if err != nil || !strings.Contains(out, "removed 2024-03-01") {
		t.Fatalf("confirmed rm: %q %v", out, err)
	}
	if _, _, err := execute(t, "", "--config", cfgPath, "sheet", "rm", "2024-03-02"); err == nil {
		t.Fatalf("expected an error for a missing sheet")
	}
	if len(asked) != 2 {
		t.Fatalf("missing sheet must fail before prompting, prompts: %q", asked)
	}
}

func TestGuestPrefsCannotBeSaved(t *testing.T) {
	t.Parallel()
	cfgPath := guestConfig(t)
	out, _, err := execute(t, "", "--config", cfgPath, "prefs", "get")
	if err != nil || !strings.Contains(out, "guest defaults") {
		t.Fatalf("prefs get: %q %v", out, err)
	}
	if _, _, err := execute(t, "", "--config", cfgPath, "prefs", "set", "--end", "20"); err == nil {
		t.Fatalf("expected guest prefs set to fail")
	}
}

func TestPositionRejectsZero(t *testing.T) {
	t.Parallel()
	if _, err := position("0"); err == nil {
		t.Fatalf("expected error for position 0")
	}
	if n, err := position("3"); err != nil || n != 3 {
		t.Fatalf("position 3: %d %v", n, err)
	}
}

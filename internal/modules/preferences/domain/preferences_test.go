package domain_test

import (
	"errors"
	"testing"

	"timebox/internal/modules/preferences/domain"
	apperrors "timebox/internal/platform/errors"
)

func TestDefaults(t *testing.T) {
	t.Parallel()
	d := domain.Defaults()
	if d != (domain.Preferences{StartHour: 8, EndHour: 18, Notifications: true, Theme: domain.ThemeSystem}) {
		t.Fatalf("unexpected defaults: %+v", d)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if d.Rows() != 11 {
		t.Fatalf("expected 11 rows, got %d", d.Rows())
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	bad := []domain.Preferences{
		{StartHour: -1, EndHour: 5, Theme: domain.ThemeDark},
		{StartHour: 0, EndHour: 24, Theme: domain.ThemeDark},
		{StartHour: 12, EndHour: 11, Theme: domain.ThemeDark},
		{StartHour: 8, EndHour: 18, Theme: "neon"},
	}
	for _, p := range bad {
		if err := p.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%+v: expected invalid input, got %v", p, err)
		}
	}
	if err := (domain.Preferences{StartHour: 9, EndHour: 9, Theme: domain.ThemeLight}).Validate(); err != nil {
		t.Fatalf("single-hour window should be valid: %v", err)
	}
}

func TestParseTheme(t *testing.T) {
	t.Parallel()
	if th, err := domain.ParseTheme(" Dark "); err != nil || th != domain.ThemeDark {
		t.Fatalf("expected dark, got %q %v", th, err)
	}
	if th, err := domain.ParseTheme(""); err != nil || th != domain.ThemeSystem {
		t.Fatalf("expected system, got %q %v", th, err)
	}
	if _, err := domain.ParseTheme("sepia"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}

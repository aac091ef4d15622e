package domain

import (
	"fmt"
	"strings"

	apperrors "timebox/internal/platform/errors"
)

type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

func Themes() []Theme {
	return []Theme{ThemeSystem, ThemeLight, ThemeDark}
}

func (t Theme) Validate() error {
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark:
		return nil
	default:
		return fmt.Errorf("%w: unsupported theme %q", apperrors.ErrInvalidInput, string(t))
	}
}

// ParseTheme accepts any casing; empty means system.
func ParseTheme(s string) (Theme, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ThemeSystem, nil
	}
	t := Theme(s)
	return t, t.Validate()
}

type Preferences struct {
	StartHour     int
	EndHour       int
	Notifications bool
	Theme         Theme
}

func Defaults() Preferences {
	return Preferences{StartHour: 8, EndHour: 18, Notifications: true, Theme: ThemeSystem}
}

func (p Preferences) Validate() error {
	if p.StartHour < 0 || p.StartHour > 23 || p.EndHour < 0 || p.EndHour > 23 {
		return fmt.Errorf("%w: hours must be within 0..23", apperrors.ErrInvalidInput)
	}
	if p.StartHour > p.EndHour {
		return fmt.Errorf("%w: start hour %d is after end hour %d", apperrors.ErrInvalidInput, p.StartHour, p.EndHour)
	}
	return p.Theme.Validate()
}

// Patch is a partial update; nil fields keep their current value.
type Patch struct {
	StartHour     *int
	EndHour       *int
	Notifications *bool
	Theme         *Theme
}

// Apply returns p with the fields set in patch replaced. An empty theme
// means system.
func (p Preferences) Apply(patch Patch) Preferences {
	if patch.StartHour != nil {
		p.StartHour = *patch.StartHour
	}
	if patch.EndHour != nil {
		p.EndHour = *patch.EndHour
	}
	if patch.Notifications != nil {
		p.Notifications = *patch.Notifications
	}
	if patch.Theme != nil {
		p.Theme = *patch.Theme
		if p.Theme == "" {
			p.Theme = ThemeSystem
		}
	}
	return p
}

// Rows is the number of hour rows the schedule grid shows.
func (p Preferences) Rows() int {
	return p.EndHour - p.StartHour + 1
}

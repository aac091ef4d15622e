package service

import (
	"context"
	"fmt"
	"sync"

	"timebox/internal/modules/preferences/domain"
	prefsout "timebox/internal/modules/preferences/port/out"
	apperrors "timebox/internal/platform/errors"
	"timebox/internal/platform/toast"
)

// PreferencesService caches the session's preferences. Until Load succeeds
// it serves the defaults.
type PreferencesService struct {
	gateway prefsout.Gateway
	toasts  toast.Emitter

	mu      sync.RWMutex
	current domain.Preferences
}

func NewPreferencesService(gateway prefsout.Gateway, toasts toast.Emitter) *PreferencesService {
	if toasts == nil {
		toasts = toast.Discard{}
	}
	return &PreferencesService{gateway: gateway, toasts: toasts, current: domain.Defaults()}
}

func (s *PreferencesService) Load(ctx context.Context) error {
	prefs, err := s.gateway.Fetch(ctx)
	if err != nil {
		s.toasts.Emit(toast.New(toast.Error, "Error al cargar las preferencias"))
		return fmt.Errorf("load preferences: %w", err)
	}
	s.mu.Lock()
	s.current = prefs
	s.mu.Unlock()
	return nil
}

func (s *PreferencesService) Get() domain.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *PreferencesService) CanPersist() bool {
	return s.gateway.Persistent()
}

func (s *PreferencesService) Set(ctx context.Context, prefs domain.Preferences) (domain.Preferences, error) {
	if !s.gateway.Persistent() {
		return domain.Preferences{}, fmt.Errorf("%w: sign in to save preferences", apperrors.ErrUnsupported)
	}
	if prefs.Theme == "" {
		prefs.Theme = domain.ThemeSystem
	}
	if err := prefs.Validate(); err != nil {
		return domain.Preferences{}, err
	}
	saved, err := s.gateway.Save(ctx, prefs)
	if err != nil {
		s.toasts.Emit(toast.New(toast.Error, "Error al guardar las preferencias"))
		return domain.Preferences{}, fmt.Errorf("save preferences: %w", err)
	}
	s.mu.Lock()
	s.current = saved
	s.mu.Unlock()
	s.toasts.Emit(toast.New(toast.Success, "Preferencias guardadas correctamente"))
	return saved, nil
}

// Package theme persists the light/dark display preference.
package theme

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"weather-widget/metrics"
)

// PreferenceKey is the name the mode is stored under
const PreferenceKey = "darkMode"

// Mode is a display mode
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts "dark" or "light"
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q, want dark or light", s)
	}
}

func modeOf(dark bool) Mode {
	if dark {
		return Dark
	}
	return Light
}

// Theme holds the current mode and writes every change to its Store
type Theme struct {
	store  Store
	logger *slog.Logger

	mu   sync.RWMutex
	dark bool
}

// New creates a Theme in light mode. Call Load to read the stored preference.
func New(store Store, logger *slog.Logger) *Theme {
	if logger == nil {
		logger = slog.Default()
	}
	return &Theme{store: store, logger: logger}
}

// Load reads the stored preference. Anything other than "true" is light mode.
// On a read error the theme stays light and the error is returned.
func (t *Theme) Load(ctx context.Context) error {
	value, ok, err := t.store.Get(ctx, PreferenceKey)
	if err != nil {
		t.logger.WarnContext(ctx, "failed to read theme preference, using light mode", "error", err)
		t.setDark(false)
		return fmt.Errorf("failed to load theme: %w", err)
	}

	t.setDark(ok && value == "true")
	return nil
}

// Dark reports whether dark mode is on
func (t *Theme) Dark() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dark
}

// Mode returns the current mode
func (t *Theme) Mode() Mode {
	return modeOf(t.Dark())
}

// Toggle flips the mode and writes it
func (t *Theme) Toggle(ctx context.Context) (bool, error) {
	t.mu.Lock()
	t.dark = !t.dark
	dark := t.dark
	t.mu.Unlock()

	return dark, t.persist(ctx, dark)
}

// Set writes an explicit mode
func (t *Theme) Set(ctx context.Context, dark bool) error {
	t.setDark(dark)
	return t.persist(ctx, dark)
}

func (t *Theme) setDark(dark bool) {
	t.mu.Lock()
	t.dark = dark
	t.mu.Unlock()
}

// persist writes dark to the store. The in-memory mode is kept even when the write fails.
func (t *Theme) persist(ctx context.Context, dark bool) error {
	metrics.ThemeTogglesTotal.WithLabelValues(string(modeOf(dark))).Inc()

	if err := t.store.Set(ctx, PreferenceKey, strconv.FormatBool(dark)); err != nil {
		t.logger.ErrorContext(ctx, "failed to save theme preference", "dark", dark, "error", err)
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

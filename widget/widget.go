// Package widget holds the interactive state of the weather widget: the location input,
// the last fetched data and the display theme.
package widget

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"weather-widget/fetcher"
	"weather-widget/metrics"
	"weather-widget/models"
	"weather-widget/sampler"
	"weather-widget/theme"
)

var (
	// ErrEmptyLocation is returned when Search runs with a blank input. Nothing changes.
	ErrEmptyLocation = errors.New("no location entered")

	// ErrSearchInProgress is returned while another search is running
	ErrSearchInProgress = errors.New("search already in progress")
)

// Fetcher retrieves current weather and the forecast together
type Fetcher interface {
	Fetch(ctx context.Context, location string) (fetcher.Result, error)
}

// State is a point-in-time copy of the widget
type State struct {
	Location string                 `json:"location"`
	Loading  bool                   `json:"loading"`
	Error    string                 `json:"error,omitempty"`
	Current  *models.CurrentWeather `json:"current,omitempty"`
	Forecast *models.Forecast       `json:"forecast,omitempty"`
	Daily    []models.DailySample   `json:"daily"`
	Dark     bool                   `json:"darkMode"`
}

// HasData reports whether a search has succeeded at least once
func (s State) HasData() bool {
	return s.Current != nil
}

// Widget is safe for concurrent use. Fetches run outside the lock.
type Widget struct {
	fetcher  Fetcher
	theme    *theme.Theme
	calendar sampler.Calendar
	logger   *slog.Logger

	mu       sync.Mutex
	location string
	loading  bool
	errMsg   string
	current  *models.CurrentWeather
	forecast *models.Forecast
	daily    []models.DailySample
}

// Option configures a Widget
type Option func(*Widget)

// WithCalendar sets the calendar used to pick daily samples. The default reads UTC.
func WithCalendar(cal sampler.Calendar) Option {
	return func(w *Widget) {
		w.calendar = cal
	}
}

// WithLogger sets the widget logger
func WithLogger(logger *slog.Logger) Option {
	return func(w *Widget) {
		w.logger = logger
	}
}

// New creates a widget with an empty input and no data
func New(f Fetcher, th *theme.Theme, opts ...Option) *Widget {
	w := &Widget{
		fetcher:  f,
		theme:    th,
		calendar: sampler.InLocation(nil),
		logger:   slog.Default(),
		daily:    []models.DailySample{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SetLocation replaces the location input
func (w *Widget) SetLocation(location string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.location = location
}

// SearchFor sets the input to location and searches
func (w *Widget) SearchFor(ctx context.Context, location string) error {
	w.SetLocation(location)
	return w.Search(ctx)
}

// Search fetches weather for the current input. On success the data is replaced
// and the input is cleared. On failure the previous data and input are kept and
// State.Error carries fetcher.UserMessage; the returned error wraps the cause.
func (w *Widget) Search(ctx context.Context) error {
	w.mu.Lock()
	if w.loading {
		w.mu.Unlock()
		metrics.SearchesTotal.WithLabelValues("busy").Inc()
		return ErrSearchInProgress
	}
	location := strings.TrimSpace(w.location)
	if location == "" {
		w.mu.Unlock()
		metrics.SearchesTotal.WithLabelValues("empty").Inc()
		return ErrEmptyLocation
	}
	w.loading = true
	w.errMsg = ""
	w.mu.Unlock()

	result, err := w.fetcher.Fetch(ctx, location)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = false

	if err != nil {
		w.errMsg = fetcher.UserMessage
		metrics.SearchesTotal.WithLabelValues("failure").Inc()
		w.logger.ErrorContext(ctx, "search failed", "location", location, "error", err)
		return err
	}

	current := result.Current
	forecast := result.Forecast
	w.current = &current
	w.forecast = &forecast
	w.daily = sampler.SelectDailySamples(forecast.Entries, w.calendar)
	w.location = ""

	metrics.SearchesTotal.WithLabelValues("success").Inc()
	w.logger.InfoContext(ctx, "search completed",
		"location", location,
		"resolved", current.Name,
		"daily_samples", len(w.daily),
	)
	return nil
}

// Dark reports the current display mode
func (w *Widget) Dark() bool {
	return w.theme.Dark()
}

// ToggleTheme flips the display mode and returns the new one
func (w *Widget) ToggleTheme(ctx context.Context) (bool, error) {
	return w.theme.Toggle(ctx)
}

// SetDark sets the display mode explicitly
func (w *Widget) SetDark(ctx context.Context, dark bool) error {
	return w.theme.Set(ctx, dark)
}

// Snapshot returns a copy of the state that is safe to render while the widget changes
func (w *Widget) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := State{
		Location: w.location,
		Loading:  w.loading,
		Error:    w.errMsg,
		Daily:    append([]models.DailySample(nil), w.daily...),
		Dark:     w.theme.Dark(),
	}
	if state.Daily == nil {
		state.Daily = []models.DailySample{}
	}
	if w.current != nil {
		current := *w.current
		if current.Condition != nil {
			condition := *current.Condition
			current.Condition = &condition
		}
		state.Current = &current
	}
	if w.forecast != nil {
		forecast := *w.forecast
		forecast.Entries = append([]models.ForecastEntry(nil), w.forecast.Entries...)
		state.Forecast = &forecast
	}
	return state
}

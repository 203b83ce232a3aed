// Package fetcher retrieves current conditions and the forecast for a location as one operation.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"weather-widget/datasource"
	"weather-widget/models"
)

// UserMessage is the only failure text shown to users
const UserMessage = "Failed to fetch weather data. Please try again."

var (
	// ErrFetchFailed matches every failed Fetch, whatever the cause
	ErrFetchFailed = errors.New("failed to fetch weather data")

	// ErrEmptyLocation is returned for blank location queries
	ErrEmptyLocation = errors.New("location is empty")
)

// Result holds both halves of a successful fetch
type Result struct {
	Current  models.CurrentWeather `json:"current"`
	Forecast models.Forecast       `json:"forecast"`
}

// Fetcher issues the current-weather and forecast requests together
type Fetcher struct {
	weather  datasource.WeatherProvider
	forecast datasource.ForecastSource
	logger   *slog.Logger
}

// New creates a fetcher over the given sources. A nil logger uses slog.Default().
func New(weather datasource.WeatherProvider, forecast datasource.ForecastSource, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		weather:  weather,
		forecast: forecast,
		logger:   logger,
	}
}

// Fetch runs both requests concurrently and returns when both succeed. The first
// failure cancels the other request; the returned error then matches ErrFetchFailed
// and wraps the cause. There is no partial result and no retry.
func (f *Fetcher) Fetch(ctx context.Context, location string) (Result, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Result{}, ErrEmptyLocation
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	var result Result
	g.Go(func() error {
		current, err := f.weather.GetWeather(gctx, location)
		if err != nil {
			return fmt.Errorf("current weather from %s: %w", f.weather.Name(), err)
		}
		result.Current = current
		return nil
	})
	g.Go(func() error {
		forecast, err := f.forecast.FetchForecast(gctx, location)
		if err != nil {
			return fmt.Errorf("forecast from %s: %w", f.forecast.Name(), err)
		}
		result.Forecast = forecast
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("%w for %q: %w", ErrFetchFailed, location, err)
	}

	f.logger.DebugContext(ctx, "weather fetched",
		"location", location,
		"forecast_entries", len(result.Forecast.Entries),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}

package fetcher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-widget/datasource"
	"weather-widget/models"
)

type stubWeather struct {
	data  models.CurrentWeather
	err   error
	calls atomic.Int32
}

func (s *stubWeather) Name() string { return "stub" }

func (s *stubWeather) GetWeather(ctx context.Context, location string) (models.CurrentWeather, error) {
	s.calls.Add(1)
	if s.err != nil {
		return models.CurrentWeather{}, s.err
	}
	data := s.data
	data.Name = location
	return data, nil
}

// blockingForecast waits for its context unless release is closed first
type blockingForecast struct {
	data    models.Forecast
	err     error
	release chan struct{}
	calls   atomic.Int32
}

func (b *blockingForecast) Name() string { return "stub" }

func (b *blockingForecast) FetchForecast(ctx context.Context, location string) (models.Forecast, error) {
	b.calls.Add(1)
	if b.release != nil {
		select {
		case <-b.release:
		case <-ctx.Done():
			return models.Forecast{}, ctx.Err()
		}
	}
	if b.err != nil {
		return models.Forecast{}, b.err
	}
	return b.data, nil
}

var (
	_ datasource.WeatherProvider = (*stubWeather)(nil)
	_ datasource.ForecastSource  = (*blockingForecast)(nil)
)

func TestFetch_BothSucceed(t *testing.T) {
	weather := &stubWeather{data: models.CurrentWeather{Temperature: 21.5}}
	forecast := &blockingForecast{data: models.Forecast{City: "Lisbon", Entries: []models.ForecastEntry{{Temperature: 20}}}}

	got, err := New(weather, forecast, nil).Fetch(context.Background(), "  Lisbon ")
	require.NoError(t, err)

	assert.Equal(t, "Lisbon", got.Current.Name)
	assert.Equal(t, 21.5, got.Current.Temperature)
	assert.Equal(t, "Lisbon", got.Forecast.City)
	assert.Len(t, got.Forecast.Entries, 1)
}

func TestFetch_EmptyLocation(t *testing.T) {
	weather := &stubWeather{}
	forecast := &blockingForecast{}

	_, err := New(weather, forecast, nil).Fetch(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyLocation)
	assert.Zero(t, weather.calls.Load())
	assert.Zero(t, forecast.calls.Load())
}

func TestFetch_ForecastFailure(t *testing.T) {
	cause := &datasource.APIError{StatusCode: 404, Message: "city not found"}
	weather := &stubWeather{}
	forecast := &blockingForecast{err: cause}

	got, err := New(weather, forecast, nil).Fetch(context.Background(), "Atlantis")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrFetchFailed)
	var apiErr *datasource.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, Result{}, got)
}

func TestFetch_FirstFailureCancelsTheOther(t *testing.T) {
	weather := &stubWeather{err: errors.New("connection refused")}
	// Never released: only cancellation lets it return.
	forecast := &blockingForecast{release: make(chan struct{})}

	done := make(chan error, 1)
	go func() {
		_, err := New(weather, forecast, nil).Fetch(context.Background(), "Oslo")
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrFetchFailed)
		assert.Contains(t, err.Error(), "connection refused")
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not fail fast")
	}
}

func TestFetch_CallerCancellation(t *testing.T) {
	weather := &stubWeather{}
	forecast := &blockingForecast{release: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(weather, forecast, nil).Fetch(ctx, "Oslo")
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

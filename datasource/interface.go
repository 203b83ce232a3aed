package datasource

import (
	"context"

	"weather-widget/models"
)

// WeatherProvider is an interface for services that can fetch current weather data
type WeatherProvider interface {
	// GetWeather fetches current weather for a location
	GetWeather(ctx context.Context, location string) (models.CurrentWeather, error)

	// Name returns the provider's name
	Name() string
}

// ForecastSource is an interface for services that can fetch weather forecasts
type ForecastSource interface {
	// FetchForecast fetches the full forecast timeline for a location
	FetchForecast(ctx context.Context, location string) (models.Forecast, error)

	// Name returns the source's name
	Name() string
}

package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"weather-widget/metrics"
	"weather-widget/models"
)

const (
	// DefaultOpenWeatherMapURL is the base of the 2.5 data API
	DefaultOpenWeatherMapURL = "https://api.openweathermap.org/data/2.5"

	// metricUnits asks the API for Celsius and m/s
	metricUnits = "metric"
)

// OpenWeatherMapProvider implements both WeatherProvider and ForecastSource interfaces
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure OpenWeatherMapProvider implements both interfaces
var (
	_ WeatherProvider = (*OpenWeatherMapProvider)(nil)
	_ ForecastSource  = (*OpenWeatherMapProvider)(nil)
)

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider
func NewOpenWeatherMapProvider(apiKey string) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: DefaultOpenWeatherMapURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: slog.Default(),
	}
}

// SetBaseURL points the provider at another API root, e.g. a test server
func (p *OpenWeatherMapProvider) SetBaseURL(baseURL string) {
	p.baseURL = baseURL
}

// SetTimeout changes the HTTP client timeout for API requests
func (p *OpenWeatherMapProvider) SetTimeout(timeout time.Duration) {
	p.httpClient.Timeout = timeout
}

// SetHTTPClient replaces the HTTP client used for API requests
func (p *OpenWeatherMapProvider) SetHTTPClient(client *http.Client) {
	p.httpClient = client
}

// SetLogger replaces the provider logger
func (p *OpenWeatherMapProvider) SetLogger(logger *slog.Logger) {
	p.logger = logger
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

type owmCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
}

// GetWeather fetches current weather for a location
func (p *OpenWeatherMapProvider) GetWeather(ctx context.Context, location string) (models.CurrentWeather, error) {
	var response struct {
		Main *owmMain `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []owmCondition `json:"weather"`
		Name    string         `json:"name"`
		Dt      int64          `json:"dt"`
		Sys     struct {
			Country string `json:"country"`
		} `json:"sys"`
	}

	if err := p.get(ctx, "weather", location, &response); err != nil {
		return models.CurrentWeather{}, err
	}

	if response.Main == nil {
		return models.CurrentWeather{}, malformed("current weather has no main block")
	}

	data := models.CurrentWeather{
		Name:        response.Name,
		Country:     response.Sys.Country,
		Temperature: response.Main.Temp,
		FeelsLike:   response.Main.FeelsLike,
		Humidity:    response.Main.Humidity,
		WindSpeed:   response.Wind.Speed,
		Time:        time.Now(),
	}
	if response.Dt > 0 {
		data.Time = time.Unix(response.Dt, 0).UTC()
	}

	// Add the weather description and icon if available
	if len(response.Weather) > 0 {
		data.Condition = &models.Condition{
			Description: response.Weather[0].Description,
			Icon:        response.Weather[0].Icon,
		}
	}

	return data, nil
}

// FetchForecast fetches the 5-day forecast in 3-hour steps for a location
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, location string) (models.Forecast, error) {
	var response struct {
		City struct {
			Name     string `json:"name"`
			Country  string `json:"country"`
			Timezone int    `json:"timezone"`
		} `json:"city"`
		List []struct {
			Main    *owmMain       `json:"main"`
			Weather []owmCondition `json:"weather"`
			Dt      int64          `json:"dt"`
			DtTxt   string         `json:"dt_txt"`
		} `json:"list"`
	}

	if err := p.get(ctx, "forecast", location, &response); err != nil {
		return models.Forecast{}, err
	}

	if response.List == nil {
		return models.Forecast{}, malformed("forecast has no list")
	}

	forecast := models.Forecast{
		City:           response.City.Name,
		Country:        response.City.Country,
		TimezoneOffset: response.City.Timezone,
		Entries:        make([]models.ForecastEntry, 0, len(response.List)),
		Updated:        time.Now(),
	}

	for i, item := range response.List {
		if item.Main == nil {
			return models.Forecast{}, malformed("forecast entry %d has no main block", i)
		}
		if len(item.Weather) == 0 {
			return models.Forecast{}, malformed("forecast entry %d has no weather condition", i)
		}

		ts, stamp, err := entryTime(item.DtTxt, item.Dt)
		if err != nil {
			return models.Forecast{}, malformed("forecast entry %d: %v", i, err)
		}

		forecast.Entries = append(forecast.Entries, models.ForecastEntry{
			Timestamp:   stamp,
			Time:        ts,
			Temperature: item.Main.Temp,
			FeelsLike:   item.Main.FeelsLike,
			Humidity:    item.Main.Humidity,
			Condition: models.Condition{
				Description: item.Weather[0].Description,
				Icon:        item.Weather[0].Icon,
			},
		})
	}

	return forecast, nil
}

// entryTime parses dt_txt, which OpenWeatherMap writes in UTC. An empty dt_txt
// falls back to the unix dt field.
func entryTime(dtTxt string, dt int64) (time.Time, string, error) {
	if dtTxt == "" {
		if dt <= 0 {
			return time.Time{}, "", fmt.Errorf("missing timestamp")
		}
		ts := time.Unix(dt, 0).UTC()
		return ts, ts.Format(models.TimestampLayout), nil
	}

	ts, err := time.ParseInLocation(models.TimestampLayout, dtTxt, time.UTC)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid timestamp %q: %w", dtTxt, err)
	}
	return ts, dtTxt, nil
}

// get issues one GET against endpoint and decodes the JSON body into out
func (p *OpenWeatherMapProvider) get(ctx context.Context, endpoint, location string, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream(endpoint, err, time.Since(start))
	}()

	// Build URL
	params := url.Values{}
	params.Add("q", location)
	params.Add("appid", p.apiKey)
	params.Add("units", metricUnits)
	requestURL := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, params.Encode())

	p.logger.DebugContext(ctx, "requesting OpenWeatherMap",
		"endpoint", endpoint,
		"location", location,
	)

	// Create request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Execute request
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Check for error status code
	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp.StatusCode, body)
	}

	// Parse response
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", endpoint, err)
	}

	p.logger.DebugContext(ctx, "OpenWeatherMap response received",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	return nil
}

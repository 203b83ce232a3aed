package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-widget/fetcher"
)

const currentBody = `{"name":"London","sys":{"country":"GB"},"dt":1714564800,
"main":{"temp":15.25,"feels_like":14.1,"humidity":70},"wind":{"speed":3.2},
"weather":[{"description":"light rain","icon":"10d"}]}`

const forecastBody = `{"city":{"name":"London","country":"GB","timezone":3600},"list":[
{"dt_txt":"2024-05-01 09:00:00","main":{"temp":10,"feels_like":9,"humidity":80},"weather":[{"description":"mist","icon":"50d"}]},
{"dt_txt":"2024-05-01 12:00:00","main":{"temp":14,"feels_like":13,"humidity":70},"weather":[{"description":"scattered clouds","icon":"03d"}]},
{"dt_txt":"2024-05-02 12:00:00","main":{"temp":16,"feels_like":15,"humidity":60},"weather":[{"description":"clear sky","icon":"01d"}]}]}`

func fakeOpenWeatherMap(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			fmt.Fprint(w, `{"cod":"404","message":"city not found"}`)
			return
		}
		switch r.URL.Path {
		case "/weather":
			fmt.Fprint(w, currentBody)
		case "/forecast":
			fmt.Fprint(w, forecastBody)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// setupCLI writes a config file pointing at baseURL with a file-backed preference store
func setupCLI(t *testing.T, baseURL string) string {
	t.Helper()
	dir := t.TempDir()

	t.Setenv("OPENWEATHERMAP_API_KEY", "")
	t.Setenv("WEATHER_OPENWEATHERMAP_API_KEY", "test-key")

	cfg := fmt.Sprintf(`openweathermap:
  base_url: %s
preferences:
  backend: file
  path: %s
logging:
  level: error
`, baseURL, filepath.Join(dir, "preferences.json"))

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSearch(t *testing.T) {
	srv := fakeOpenWeatherMap(t, http.StatusOK)
	cfg := setupCLI(t, srv.URL)

	out, err := run(t, "--config", cfg, "--no-color", "search", "London")
	require.NoError(t, err)

	assert.Contains(t, out, "Weather App")
	assert.Contains(t, out, "Current Weather in London")
	assert.Contains(t, out, "15.2°C")
	assert.Contains(t, out, "Light Rain")
	assert.Contains(t, out, "5-Day Weather Forecast")
	assert.Contains(t, out, "Wed, May 1")
	assert.Contains(t, out, "Thu, May 2")
	assert.NotContains(t, out, "Mist")
	assert.NotContains(t, out, "\x1b[")
}

func TestSearch_MultiWordLocation(t *testing.T) {
	queries := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries <- r.URL.Query().Get("q")
		if r.URL.Path == "/weather" {
			fmt.Fprint(w, currentBody)
			return
		}
		fmt.Fprint(w, forecastBody)
	}))
	t.Cleanup(srv.Close)
	cfg := setupCLI(t, srv.URL)

	_, err := run(t, "--config", cfg, "--no-color", "search", "New", "York")
	require.NoError(t, err)
	assert.Equal(t, "New York", <-queries)
	assert.Equal(t, "New York", <-queries)
}

func TestSearch_Failure(t *testing.T) {
	srv := fakeOpenWeatherMap(t, http.StatusNotFound)
	cfg := setupCLI(t, srv.URL)

	out, err := run(t, "--config", cfg, "--no-color", "search", "Atlantis")
	require.Error(t, err)

	code, shown := IsExitError(err)
	assert.True(t, shown)
	assert.Equal(t, 1, code)
	assert.ErrorIs(t, err, fetcher.ErrFetchFailed)

	assert.Contains(t, out, fetcher.UserMessage)
	assert.NotContains(t, out, "city not found")
	assert.NotContains(t, out, "Current Weather in")
}

func TestSearch_MissingAPIKey(t *testing.T) {
	cfg := setupCLI(t, "http://127.0.0.1:1")
	t.Setenv("WEATHER_OPENWEATHERMAP_API_KEY", "")

	_, err := run(t, "--config", cfg, "search", "London")
	require.Error(t, err)
	_, shown := IsExitError(err)
	assert.False(t, shown)
	assert.Contains(t, err.Error(), "API key")
}

func TestSearch_RequiresLocation(t *testing.T) {
	cfg := setupCLI(t, "http://127.0.0.1:1")

	_, err := run(t, "--config", cfg, "search")
	assert.Error(t, err)
}

func TestTheme(t *testing.T) {
	cfg := setupCLI(t, "http://127.0.0.1:1")

	out, err := run(t, "--config", cfg, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", strings.TrimSpace(out))

	out, err = run(t, "--config", cfg, "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "dark", strings.TrimSpace(out))

	// The preference survives between invocations
	out, err = run(t, "--config", cfg, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", strings.TrimSpace(out))

	out, err = run(t, "--config", cfg, "theme", "set", "light")
	require.NoError(t, err)
	assert.Equal(t, "light", strings.TrimSpace(out))

	_, err = run(t, "--config", cfg, "theme", "set", "sepia")
	assert.Error(t, err)
}

func TestSearch_UsesSavedTheme(t *testing.T) {
	srv := fakeOpenWeatherMap(t, http.StatusOK)
	cfg := setupCLI(t, srv.URL)

	_, err := run(t, "--config", cfg, "theme", "set", "dark")
	require.NoError(t, err)

	out, err := run(t, "--config", cfg, "--no-color", "search", "London")
	require.NoError(t, err)
	assert.Contains(t, out, "[☀️ Light]")
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644))

	_, err := run(t, "--config", path, "theme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestVersion(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	out, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", strings.TrimSpace(out))

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "weather-widget version 1.2.3")
}

package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"weather-widget/datasource"
	"weather-widget/fetcher"
	"weather-widget/logger"
	"weather-widget/sampler"
	"weather-widget/theme"
	"weather-widget/widget"
)

// openTheme opens the preference store and loads the saved mode.
// A failed read is logged and leaves the theme in light mode.
func (a *app) openTheme(ctx context.Context) (*theme.Theme, theme.Store, error) {
	prefs := a.cfg.Preferences
	store, err := theme.OpenStore(ctx, theme.StoreOptions{
		Backend:  prefs.Backend,
		Path:     prefs.Path,
		RedisURL: prefs.RedisURL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("opening preferences: %w", err)
	}

	th := theme.New(store, logger.WithComponent(a.logger, "theme"))
	_ = th.Load(ctx)
	return th, store, nil
}

func (a *app) icons() datasource.IconSet {
	return datasource.IconSet{BaseURL: a.cfg.OpenWeatherMap.IconBaseURL}
}

// newWidget wires the provider, fetcher and theme into a widget
func (a *app) newWidget(ctx context.Context) (*widget.Widget, theme.Store, error) {
	if err := a.cfg.RequireAPIKey(); err != nil {
		return nil, nil, err
	}

	owm := a.cfg.OpenWeatherMap
	provider := datasource.NewOpenWeatherMapProvider(owm.APIKey)
	provider.SetBaseURL(owm.BaseURL)
	provider.SetTimeout(owm.Timeout)
	provider.SetLogger(logger.WithComponent(a.logger, "datasource"))

	loc, err := a.cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	th, store, err := a.openTheme(ctx)
	if err != nil {
		return nil, nil, err
	}

	f := fetcher.New(provider, provider, logger.WithComponent(a.logger, "fetcher"))
	w := widget.New(f, th,
		widget.WithCalendar(sampler.InLocation(loc)),
		widget.WithLogger(logger.WithComponent(a.logger, "widget")),
	)
	return w, store, nil
}

// colors reports whether terminal output should be colored
func (a *app) colors() bool {
	return !a.noColor && a.cfg.Output.Colors && !color.NoColor
}

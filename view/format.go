// Package view renders widget state for a terminal or a browser.
package view

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"weather-widget/models"
)

// Page text shared by every renderer
const (
	Title        = "Weather App"
	Tagline      = "Get weather information for your desired location!"
	Placeholder  = "Enter location"
	SearchLabel  = "Search 🔎"
	LoadingLabel = "Searching..."
	ForecastHead = "5-Day Weather Forecast"

	// DateLayout is how forecast dates are shown
	DateLayout = "Mon, Jan 2"
)

// ThemeButtonLabel names the mode the toggle switches to
func ThemeButtonLabel(dark bool) string {
	if dark {
		return "☀️ Light"
	}
	return "🌙 Dark"
}

// SearchButtonLabel is the search button text for the loading flag
func SearchButtonLabel(loading bool) string {
	if loading {
		return LoadingLabel
	}
	return SearchLabel
}

// CurrentHeading titles the current conditions card
func CurrentHeading(name string) string {
	return "Current Weather in " + name
}

// Temperature formats Celsius with one decimal
func Temperature(celsius float64) string {
	return fmt.Sprintf("%.1f°C", celsius)
}

// FeelsLike formats the apparent temperature line
func FeelsLike(celsius float64) string {
	return "Feels like: " + Temperature(celsius)
}

// Capitalize upper-cases the first letter of each word, e.g. "light rain" -> "Light Rain"
func Capitalize(s string) string {
	return cases.Title(language.English).String(s)
}

// ForecastDate formats a daily sample's calendar date
func ForecastDate(sample models.DailySample) string {
	return sample.Time.Format(DateLayout)
}

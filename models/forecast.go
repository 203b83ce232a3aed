package models

import (
	"time"
)

// TimestampLayout is the wall-clock layout of forecast entry timestamps
const TimestampLayout = "2006-01-02 15:04:05"

// ForecastEntry represents a single forecast point on the forecast timeline
type ForecastEntry struct {
	Timestamp   string    `json:"timestamp"`   // wall-clock text as sent upstream (TimestampLayout)
	Time        time.Time `json:"time"`        // parsed instant of Timestamp
	Temperature float64   `json:"temperature"` // in Celsius
	FeelsLike   float64   `json:"feelsLike"`   // in Celsius
	Humidity    float64   `json:"humidity"`    // percentage
	Condition   Condition `json:"condition"`
}

// DailySample is the forecast entry chosen to represent one calendar date.
// It keeps the ForecastEntry shape so samples can be sampled again.
type DailySample = ForecastEntry

// Forecast represents the forecast timeline for a location
type Forecast struct {
	City           string          `json:"city"`           // location name
	Country        string          `json:"country"`        // ISO country code
	TimezoneOffset int             `json:"timezoneOffset"` // seconds east of UTC for the city
	Entries        []ForecastEntry `json:"entries"`        // ascending by Time
	Updated        time.Time       `json:"updated"`        // when this forecast was fetched
}

package models

import (
	"time"
)

// Condition is the short weather descriptor attached to a sample
type Condition struct {
	Description string `json:"description"` // short text description, e.g. "light rain"
	Icon        string `json:"icon"`        // provider icon identifier, e.g. "10d"
}

// CurrentWeather represents the current conditions for the searched location
type CurrentWeather struct {
	Name        string     `json:"name"`                // location name as resolved by the provider
	Country     string     `json:"country"`             // ISO country code
	Temperature float64    `json:"temperature"`         // in Celsius
	FeelsLike   float64    `json:"feelsLike"`           // in Celsius
	Humidity    float64    `json:"humidity"`            // percentage
	WindSpeed   float64    `json:"windSpeed"`           // in m/s
	Condition   *Condition `json:"condition,omitempty"` // nil when the provider sent no condition
	Time        time.Time  `json:"time"`                // observation time
}

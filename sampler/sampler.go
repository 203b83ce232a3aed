// Package sampler reduces a forecast timeline to one sample per calendar day.
package sampler

import (
	"weather-widget/models"
)

// RepresentativeHour is the hour-of-day a daily sample must fall on
const RepresentativeHour = 12

// SelectDailySamples walks entries once and keeps, for each calendar date, the first
// entry whose hour-of-day is RepresentativeHour. Dates without such an entry are left out.
// Entries must already be in ascending order; the output keeps their relative order.
// A nil cal reads dates in UTC.
func SelectDailySamples(entries []models.ForecastEntry, cal Calendar) []models.DailySample {
	if cal == nil {
		cal = InLocation(nil)
	}

	samples := make([]models.DailySample, 0, len(entries)/8+1)
	seen := make(map[Date]struct{})

	for _, entry := range entries {
		date, hour := cal.DateHour(entry.Time)
		if hour != RepresentativeHour {
			continue
		}
		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}
		samples = append(samples, entry)
	}

	return samples
}

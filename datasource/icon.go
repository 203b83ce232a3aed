package datasource

import "fmt"

// DefaultIconBaseURL serves the 2x condition icons referenced by OpenWeatherMap
const DefaultIconBaseURL = "http://openweathermap.org/img/wn/"

// IconSet derives static image URLs from provider icon identifiers
type IconSet struct {
	BaseURL string
}

// DefaultIconSet returns an IconSet pointing at DefaultIconBaseURL
func DefaultIconSet() IconSet {
	return IconSet{BaseURL: DefaultIconBaseURL}
}

// URL returns the image URL for code. The code is not validated.
func (s IconSet) URL(code string) string {
	base := s.BaseURL
	if base == "" {
		base = DefaultIconBaseURL
	}
	return fmt.Sprintf("%s%s@2x.png", base, code)
}

package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"weather-widget/datasource"
	"weather-widget/widget"
)

//go:embed templates/page.html
var templateFS embed.FS

// HTML renders the widget as a single page
type HTML struct {
	page *template.Template
}

type pageData struct {
	Title        string
	Tagline      string
	Placeholder  string
	ForecastHead string
	State        widget.State
}

// NewHTML parses the embedded page template
func NewHTML(icons datasource.IconSet) (*HTML, error) {
	funcs := template.FuncMap{
		"themeLabel":     ThemeButtonLabel,
		"searchLabel":    SearchButtonLabel,
		"currentHeading": CurrentHeading,
		"temp":           Temperature,
		"feelsLike":      FeelsLike,
		"date":           ForecastDate,
		"icon":           icons.URL,
	}

	page, err := template.New("page.html").Funcs(funcs).ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &HTML{page: page}, nil
}

// Render writes the page for state. Nothing is written if the template fails.
func (h *HTML) Render(w io.Writer, state widget.State) error {
	var buf bytes.Buffer
	err := h.page.Execute(&buf, pageData{
		Title:        Title,
		Tagline:      Tagline,
		Placeholder:  Placeholder,
		ForecastHead: ForecastHead,
		State:        state,
	})
	if err != nil {
		return fmt.Errorf("failed to execute page template: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

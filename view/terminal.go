package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"weather-widget/datasource"
	"weather-widget/widget"
)

type palette struct {
	title   *color.Color
	button  *color.Color
	heading *color.Color
	text    *color.Color
	muted   *color.Color
	err     *color.Color
}

func newPalette(dark, enabled bool) palette {
	var p palette
	if dark {
		p = palette{
			title:   color.New(color.FgHiWhite, color.Bold),
			button:  color.New(color.BgYellow, color.FgBlack, color.Bold),
			heading: color.New(color.FgHiWhite, color.Bold),
			text:    color.New(color.FgWhite),
			muted:   color.New(color.FgHiBlack),
			err:     color.New(color.FgHiRed),
		}
	} else {
		p = palette{
			title:   color.New(color.FgBlue, color.Bold),
			button:  color.New(color.BgHiBlack, color.FgHiWhite, color.Bold),
			heading: color.New(color.FgBlue, color.Bold),
			text:    color.New(color.FgBlack),
			muted:   color.New(color.FgCyan),
			err:     color.New(color.FgRed),
		}
	}

	for _, c := range []*color.Color{p.title, p.button, p.heading, p.text, p.muted, p.err} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Terminal renders the widget as plain text, optionally colored
type Terminal struct {
	out    io.Writer
	colors bool
	icons  datasource.IconSet
}

// NewTerminal creates a renderer writing to w
func NewTerminal(w io.Writer, colors bool) *Terminal {
	return &Terminal{
		out:    w,
		colors: colors,
		icons:  datasource.DefaultIconSet(),
	}
}

// SetIcons replaces the icon URL builder
func (t *Terminal) SetIcons(icons datasource.IconSet) {
	t.icons = icons
}

// Render writes one full frame of state
func (t *Terminal) Render(state widget.State) error {
	p := newPalette(state.Dark, t.colors)
	var b strings.Builder

	p.title.Fprint(&b, Title)
	b.WriteString("  ")
	p.button.Fprintf(&b, "[%s]", ThemeButtonLabel(state.Dark))
	b.WriteString("\n")
	p.muted.Fprintln(&b, Tagline)
	b.WriteString("\n")

	input := state.Location
	if input == "" {
		input = p.muted.Sprint(Placeholder)
	}
	fmt.Fprintf(&b, "> %s  [%s]\n", input, SearchButtonLabel(state.Loading))

	if state.Error != "" {
		p.err.Fprintln(&b, state.Error)
	}

	if current := state.Current; current != nil {
		b.WriteString("\n")
		p.heading.Fprintln(&b, CurrentHeading(current.Name))
		p.text.Fprintln(&b, Temperature(current.Temperature))
		p.text.Fprintln(&b, FeelsLike(current.FeelsLike))
		if current.Condition != nil {
			p.text.Fprintln(&b, Capitalize(current.Condition.Description))
			p.muted.Fprintln(&b, t.icons.URL(current.Condition.Icon))
		}
	}

	if _, err := io.WriteString(t.out, b.String()); err != nil {
		return fmt.Errorf("failed to write view: %w", err)
	}

	if state.Forecast == nil {
		return nil
	}

	heading := "\n" + p.heading.Sprint(ForecastHead) + "\n"
	if _, err := io.WriteString(t.out, heading); err != nil {
		return fmt.Errorf("failed to write view: %w", err)
	}
	return t.renderForecast(state)
}

func (t *Terminal) renderForecast(state widget.State) error {
	table := tablewriter.NewTable(t.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)

	table.Header([]string{"date", "temp", "feels like", "conditions", "icon"})

	rows := make([][]string, 0, len(state.Daily))
	for _, sample := range state.Daily {
		rows = append(rows, []string{
			ForecastDate(sample),
			Temperature(sample.Temperature),
			Temperature(sample.FeelsLike),
			Capitalize(sample.Condition.Description),
			t.icons.URL(sample.Condition.Icon),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("failed to build forecast table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render forecast table: %w", err)
	}
	return nil
}

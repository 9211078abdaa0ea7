package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme of the header, the table body and the
// status bar
type Theme struct {
	Name         string
	Primary      lipgloss.Color // header buttons
	Hover        lipgloss.Color
	Accent       lipgloss.Color // drop marker and hovered label
	Secondary    lipgloss.Color // status bar and drag phantom
	Background   lipgloss.Color
	Surface      lipgloss.Color // filler and alternate rows
	OnPrimary    lipgloss.Color
	OnSecondary  lipgloss.Color
	OnBackground lipgloss.Color
	Muted        lipgloss.Color
	Error        lipgloss.Color
	Success      lipgloss.Color
}

// Built-in themes
var (
	DarkTheme = Theme{
		Name:         "dark",
		Primary:      lipgloss.Color("24"),
		Hover:        lipgloss.Color("31"),
		Accent:       lipgloss.Color("214"),
		Secondary:    lipgloss.Color("238"),
		Background:   lipgloss.Color("234"),
		Surface:      lipgloss.Color("236"),
		OnPrimary:    lipgloss.Color("231"),
		OnSecondary:  lipgloss.Color("252"),
		OnBackground: lipgloss.Color("253"),
		Muted:        lipgloss.Color("244"),
		Error:        lipgloss.Color("160"),
		Success:      lipgloss.Color("28"),
	}

	LightTheme = Theme{
		Name:         "light",
		Primary:      lipgloss.Color("110"),
		Hover:        lipgloss.Color("117"),
		Accent:       lipgloss.Color("166"),
		Secondary:    lipgloss.Color("250"),
		Background:   lipgloss.Color("231"),
		Surface:      lipgloss.Color("255"),
		OnPrimary:    lipgloss.Color("16"),
		OnSecondary:  lipgloss.Color("235"),
		OnBackground: lipgloss.Color("16"),
		Muted:        lipgloss.Color("246"),
		Error:        lipgloss.Color("160"),
		Success:      lipgloss.Color("34"),
	}
)

// ThemeByName returns one of the built-in themes
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(name) {
	case "", "dark":
		return DarkTheme, nil
	case "light":
		return LightTheme, nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
}

// Styles holds the lipgloss styles derived from a theme
type Styles struct {
	theme Theme

	Button         lipgloss.Style
	ButtonHover    lipgloss.Style
	ButtonSpecial  lipgloss.Style
	ButtonDisabled lipgloss.Style
	Filler         lipgloss.Style
	Phantom        lipgloss.Style
	Marker         lipgloss.Style

	Body        lipgloss.Style
	BodyAlt     lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	StatusOK    lipgloss.Style
	Inspector   lipgloss.Style
}

// NewStyles creates the styles for a theme
func NewStyles(theme Theme) *Styles {
	button := lipgloss.NewStyle().
		Background(theme.Primary).
		Foreground(theme.OnPrimary).
		Bold(true)

	return &Styles{
		theme: theme,

		Button:      button,
		ButtonHover: button.Copy().Background(theme.Hover).Foreground(theme.Accent),
		ButtonSpecial: button.Copy().
			Underline(true),
		ButtonDisabled: lipgloss.NewStyle().
			Background(theme.Surface).
			Foreground(theme.Muted),
		Filler: lipgloss.NewStyle().
			Background(theme.Surface),
		Phantom: lipgloss.NewStyle().
			Background(theme.Secondary).
			Foreground(theme.OnSecondary).
			Faint(true),
		Marker: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(theme.OnBackground).
			Bold(true),

		Body: lipgloss.NewStyle().
			Background(theme.Background).
			Foreground(theme.OnBackground),
		BodyAlt: lipgloss.NewStyle().
			Background(theme.Surface).
			Foreground(theme.OnBackground),
		Status: lipgloss.NewStyle().
			Background(theme.Secondary).
			Foreground(theme.OnSecondary).
			Padding(0, 1),
		StatusError: lipgloss.NewStyle().
			Background(theme.Error).
			Foreground(theme.OnPrimary).
			Bold(true).
			Padding(0, 1),
		StatusOK: lipgloss.NewStyle().
			Background(theme.Success).
			Foreground(theme.OnPrimary).
			Padding(0, 1),
		Inspector: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Hover).
			Padding(0, 1),
	}
}

// Theme returns the theme the styles were built from
func (s *Styles) Theme() Theme {
	return s.theme
}

func (s *Styles) forKind(k cellKind) lipgloss.Style {
	switch k {
	case kindHover:
		return s.ButtonHover
	case kindSpecial:
		return s.ButtonSpecial
	case kindDisabled:
		return s.ButtonDisabled
	case kindFiller:
		return s.Filler
	case kindPhantom:
		return s.Phantom
	case kindMarker:
		return s.Marker
	default:
		return s.Button
	}
}

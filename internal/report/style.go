package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode selects whether the text report is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses a --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (must be auto, always or never)", s)
	}
}

// Styles paints the tokens of the text report. The zero value paints
// nothing.
type Styles struct {
	enabled bool

	Active    lipgloss.Style
	Inactive  lipgloss.Style
	Read      lipgloss.Style
	Write     lipgloss.Style
	ReadWrite lipgloss.Style
	Heading   lipgloss.Style
	Count     lipgloss.Style
	Line      lipgloss.Style
	Missing   lipgloss.Style
}

// PlainStyles returns styles that leave every token unchanged.
func PlainStyles() Styles {
	return Styles{}
}

// NewStyles returns the styles for writing to w under mode.
//
// ColorAuto colors only when w is a terminal. ColorAlways forces ANSI colors.
// ColorNever is PlainStyles.
func NewStyles(w io.Writer, mode ColorMode) Styles {
	if mode == ColorNever {
		return PlainStyles()
	}

	r := lipgloss.NewRenderer(w)
	if mode == ColorAlways {
		r.SetColorProfile(termenv.ANSI)
	}
	if r.ColorProfile() == termenv.Ascii {
		return PlainStyles()
	}

	return Styles{
		enabled:   true,
		Active:    r.NewStyle().Foreground(lipgloss.Color("2")),
		Inactive:  r.NewStyle().Foreground(lipgloss.Color("8")),
		Read:      r.NewStyle().Foreground(lipgloss.Color("4")),
		Write:     r.NewStyle().Foreground(lipgloss.Color("1")),
		ReadWrite: r.NewStyle().Foreground(lipgloss.Color("5")),
		Heading:   r.NewStyle().Foreground(lipgloss.Color("6")),
		Count:     r.NewStyle().Foreground(lipgloss.Color("2")),
		Line:      r.NewStyle().Foreground(lipgloss.Color("8")),
		Missing:   r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Enabled reports whether the styles emit escape codes.
func (s Styles) Enabled() bool { return s.enabled }

func (s Styles) paint(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

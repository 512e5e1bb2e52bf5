package snapio

import (
	"fmt"

	"github.com/fatih/color"
)

// Style is a set of SGR attributes applied when the manager supports color.
type Style []color.Attribute

// NewStyle builds a style from fatih/color attributes.
func NewStyle(attrs ...color.Attribute) Style { return Style(attrs) }

// Sprint returns text styled for m, or unchanged when color is off.
func (s Style) Sprint(m *IOManager, text string) string {
	if len(s) == 0 || !m.SupportsColor() {
		return text
	}
	// a fresh Color per call: EnableColor mutates the receiver
	c := color.New(s...)
	c.EnableColor()
	return c.Sprint(text)
}

// Sprintf formats the content with fmt.Sprintf and then applies the style.
func (s Style) Sprintf(m *IOManager, format string, a ...any) string {
	return s.Sprint(m, fmt.Sprintf(format, a...))
}

// Theme provides semantic colors
type Theme struct {
	Primary, Success, Warning, Error, Info, Debug, Muted Style
}

// DefaultTheme uses the bright half of the 16 color palette.
func DefaultTheme() Theme {
	return Theme{
		Primary: NewStyle(color.FgHiBlue, color.Bold),
		Success: NewStyle(color.FgHiGreen),
		Warning: NewStyle(color.FgHiYellow),
		Error:   NewStyle(color.FgHiRed),
		Info:    NewStyle(color.FgHiCyan),
		Debug:   NewStyle(color.FgHiMagenta),
		Muted:   NewStyle(color.FgHiBlack),
	}
}

// Bold returns s in bold when color is supported; otherwise s unchanged.
func (m *IOManager) Bold(s string) string { return NewStyle(color.Bold).Sprint(m, s) }

// Faint returns s in faint intensity when supported; otherwise s unchanged.
func (m *IOManager) Faint(s string) string { return NewStyle(color.Faint).Sprint(m, s) }

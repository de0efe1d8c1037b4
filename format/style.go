package format

import "github.com/charmbracelet/lipgloss"

// Styles colours the text encoders. The zero value leaves text unchanged.
type Styles struct {
	enabled bool
	Keyword lipgloss.Style
	Name    lipgloss.Style
	Dim     lipgloss.Style
	Warn    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		enabled: true,
		Keyword: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Name:    lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
}

// paint renders text with st when styling is on. Plain output must not go
// through lipgloss, which rewrites tabs.
func (s Styles) paint(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}

func (s Styles) keyword(text string) string { return s.paint(s.Keyword, text) }
func (s Styles) name(text string) string    { return s.paint(s.Name, text) }
func (s Styles) dim(text string) string     { return s.paint(s.Dim, text) }
func (s Styles) warn(text string) string    { return s.paint(s.Warn, text) }

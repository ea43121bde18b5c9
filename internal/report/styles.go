package report

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/nao1215/pwcheck/internal/strength"
	"golang.org/x/term"
)

// Styles colours the text report. A disabled Styles renders text
// unchanged, which is what files and pipes get.
type Styles struct {
	enabled bool

	Header  lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style

	labels map[strength.Label]lipgloss.Style
}

// NewStyles returns colouring styles when enabled is true and no-op
// styles otherwise.
func NewStyles(enabled bool) *Styles {
	s := &Styles{
		enabled: enabled,
		Header:  lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		labels:  make(map[strength.Label]lipgloss.Style),
	}
	if !enabled {
		return s
	}

	s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	s.Error = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	s.labels[strength.LabelVeryWeak] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	s.labels[strength.LabelWeak] = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	s.labels[strength.LabelModerate] = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	s.labels[strength.LabelStrong] = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	s.labels[strength.LabelVeryStrong] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	return s
}

// Enabled reports whether styling is on.
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Label renders a strength label in its colour.
func (s *Styles) Label(l strength.Label) string {
	if st, ok := s.labels[l]; ok {
		return st.Render(string(l))
	}
	return string(l)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// StylesFor returns styles enabled only when w is a terminal.
func StylesFor(w io.Writer) *Styles {
	return NewStyles(IsTerminal(w))
}

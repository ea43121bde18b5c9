package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/nao1215/pwcheck/internal/model"
	"github.com/nao1215/pwcheck/internal/strength"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SimpleWriter outputs the human-readable report shown in the terminal.
type SimpleWriter struct {
	baseWriter

	// verbose adds the class count and per-finding detail.
	verbose bool

	styles *Styles
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithStyles sets the colour styles. The default is no colour.
func WithStyles(styles *Styles) SimpleWriterOption {
	return func(w *SimpleWriter) {
		if styles != nil {
			w.styles = styles
		}
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		styles:     NewStyles(false),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs one result.
func (w *SimpleWriter) Write(result *model.AnalysisResult) (int, error) {
	var sb strings.Builder
	w.writeResult(&sb, result)
	return io.WriteString(w.output, sb.String())
}

// WriteBatch outputs every result followed by a summary block.
func (w *SimpleWriter) WriteBatch(results []*model.AnalysisResult, summary *model.BatchSummary) (int, error) {
	results = present(results)
	summary = summaryOf(results, summary)

	var sb strings.Builder
	for _, r := range results {
		w.writeResult(&sb, r)
	}
	w.writeSummary(&sb, summary)
	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeResult(sb *strings.Builder, r *model.AnalysisResult) {
	sb.WriteString("\n")
	sb.WriteString(w.styles.Header.Render("=== Password analysis ==="))
	sb.WriteString("\n")
	if r.Source != "" {
		fmt.Fprintf(sb, "Source: %s\n", w.styles.Muted.Render(r.Source))
	}
	fmt.Fprintf(sb, "Length: %d\n", r.Length)
	fmt.Fprintf(sb, "Character classes: %s\n", classList(r.Classes))
	if w.verbose && r.Complexity != nil {
		fmt.Fprintf(sb, "Character class count: %d\n", r.Complexity.ClassesCount)
	}
	fmt.Fprintf(sb, "Entropy (bits): %s\n", formatBits(r.EntropyBits))
	fmt.Fprintf(sb, "Simple score: %d -> %s\n", r.Score.Value, w.styles.Label(r.Score.Label))
	if r.Estimate != nil {
		fmt.Fprintf(sb, "zxcvbn score: %d (0-4), estimated crack time: %s\n", r.Estimate.Score, r.Estimate.CrackTime)
	}

	w.writeWordlist(sb, r.Wordlist)
	w.writeBreach(sb, r.Breach)
	w.writeAdvice(sb, r.Findings)
	if w.verbose {
		w.writeFindings(sb, r.Findings)
	}
}

func (w *SimpleWriter) writeWordlist(sb *strings.Builder, v *model.WordlistVerdict) {
	switch {
	case v == nil:
	case v.Found():
		sb.WriteString(w.styles.Warning.Render("Warning: Password found in provided wordlist."))
		sb.WriteString("\n")
	case v.Unavailable():
		fmt.Fprintf(sb, "Wordlist check error: %s\n", v.Reason)
	default:
		sb.WriteString("Not found in provided wordlist.\n")
	}
}

func (w *SimpleWriter) writeBreach(sb *strings.Builder, v *model.BreachVerdict) {
	switch {
	case v == nil:
	case v.Failed():
		fmt.Fprintf(sb, "Breach check error: %s\n", v.Error)
	case v.Found():
		sb.WriteString(w.styles.Error.Render(
			fmt.Sprintf("WARNING: password appears in breach list %d times.", v.Times())))
		sb.WriteString("\n")
	default:
		sb.WriteString("Not found in breach list.\n")
	}
}

func (w *SimpleWriter) writeAdvice(sb *strings.Builder, fs []model.Finding) {
	advice := model.Advice(fs)
	if len(advice) == 0 {
		return
	}

	sb.WriteString("\n")
	// A strong password has no other advice.
	if slices.ContainsFunc(fs, func(f model.Finding) bool { return f.Type == model.FindingLooksStrong }) {
		sb.WriteString(w.styles.Success.Render(advice[0]))
		sb.WriteString("\n")
		return
	}

	sb.WriteString(heading("advice"))
	sb.WriteString(":\n")
	for _, a := range advice {
		fmt.Fprintf(sb, " - %s\n", a)
	}
}

func (w *SimpleWriter) writeFindings(sb *strings.Builder, fs []model.Finding) {
	if len(fs) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(heading("findings"))
	sb.WriteString(":\n")
	for _, f := range fs {
		fmt.Fprintf(sb, "  [%s] %s\n", f.SeverityText, f.Title)
		if f.Description != "" {
			fmt.Fprintf(sb, "    %s\n", f.Description)
		}
	}
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, s *model.BatchSummary) {
	sb.WriteString("\n")
	sb.WriteString(w.styles.Header.Render("=== Summary ==="))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Passwords analyzed: %d\n", s.Total)
	for _, l := range strength.Labels() {
		if n := s.ByLabel[l]; n > 0 {
			fmt.Fprintf(sb, "  %s: %d\n", w.styles.Label(l), n)
		}
	}
	fmt.Fprintf(sb, "Found in breaches: %d\n", s.Breached)
	fmt.Fprintf(sb, "Found in wordlist: %d\n", s.InWordlist)
	if s.CheckFails > 0 {
		fmt.Fprintf(sb, "Checks that failed: %d\n", s.CheckFails)
	}
}

// classList names the classes present, in a fixed order.
func classList(c strength.Classes) string {
	var names []string
	if c.Upper {
		names = append(names, "upper")
	}
	if c.Lower {
		names = append(names, "lower")
	}
	if c.Digit {
		names = append(names, "digit")
	}
	if c.Special {
		names = append(names, "special")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// formatBits prints v in its shortest form with at least one decimal.
func formatBits(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func heading(s string) string {
	return cases.Title(language.English).String(s)
}

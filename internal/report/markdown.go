package report

import (
	"bytes"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/pwcheck/internal/model"
	"github.com/nao1215/pwcheck/internal/strength"
)

// MarkdownWriter outputs results as GitHub-flavored Markdown, suitable
// for attaching a password-policy audit to an issue or wiki page.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs one result.
func (w *MarkdownWriter) Write(result *model.AnalysisResult) (int, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)
	md.H1("Password Analysis")
	md.PlainText("")
	w.writeResult(md, result)
	w.writeFooter(md)
	return w.flush(md, &buf)
}

// WriteBatch outputs a summary with a label distribution chart, then one
// section per result.
func (w *MarkdownWriter) WriteBatch(results []*model.AnalysisResult, summary *model.BatchSummary) (int, error) {
	results = present(results)
	summary = summaryOf(results, summary)

	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)
	md.H1("Password Audit")
	md.PlainText("")
	w.writeSummary(md, summary)

	md.H2("Results")
	md.PlainText("")
	for _, r := range results {
		md.H3(sourceOrDash(r.Source))
		md.PlainText("")
		w.writeResult(md, r)
	}
	w.writeFooter(md)
	return w.flush(md, &buf)
}

func (w *MarkdownWriter) flush(md *markdown.Markdown, buf *bytes.Buffer) (int, error) {
	if err := md.Build(); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}

func (w *MarkdownWriter) writeResult(md *markdown.Markdown, r *model.AnalysisResult) {
	rows := [][]string{
		{"Length", strconv.Itoa(r.Length)},
		{"Character classes", classList(r.Classes)},
		{"Entropy (bits)", formatBits(r.EntropyBits)},
		{"Score", strconv.Itoa(r.Score.Value) + " (" + string(r.Score.Label) + ")"},
	}
	if r.Estimate != nil {
		rows = append(rows, []string{"zxcvbn score", strconv.Itoa(r.Estimate.Score) + " (" + r.Estimate.CrackTime + ")"})
	}
	if r.Wordlist != nil {
		rows = append(rows, []string{"Wordlist", wordlistText(r.Wordlist)})
	}
	if r.Breach != nil {
		rows = append(rows, []string{"Breaches", breachText(r.Breach)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeAlert(md, r)
	w.writeFindings(md, r.Findings)
}

func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, r *model.AnalysisResult) {
	switch {
	case r.Breach.Found():
		md.Cautionf("This password appears in known breaches %d times. Do not use it.", r.Breach.Times())
	case r.Wordlist.Found():
		md.Warning("This password is in the supplied wordlist.")
	case r.Score.Value < strength.MaxScore-1:
		md.Importantf("Scored %s. See the findings below.", r.Score.Label)
	default:
		md.Tip(model.GetFindingInfo(model.FindingLooksStrong).Recommendation)
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, fs []model.Finding) {
	if len(fs) == 0 {
		return
	}
	rows := make([][]string, len(fs))
	for i, f := range fs {
		rows[i] = []string{f.SeverityText, f.Title, dash(f.Description), dash(f.Recommendation)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Finding", "Detail", "Recommendation"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, s *model.BatchSummary) {
	md.H2("Summary")
	md.PlainText("")

	rows := [][]string{{"Passwords analyzed", strconv.Itoa(s.Total)}}
	for _, l := range strength.Labels() {
		rows = append(rows, []string{string(l), strconv.Itoa(s.ByLabel[l])})
	}
	rows = append(rows,
		[]string{"Found in breaches", strconv.Itoa(s.Breached)},
		[]string{"Found in wordlist", strconv.Itoa(s.InWordlist)},
		[]string{"Checks that failed", strconv.Itoa(s.CheckFails)},
	)
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if s.Total > 0 {
		w.writePieChart(md, s)
	}
}

// writePieChart writes a mermaid pie chart of the label distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s *model.BatchSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Strength Distribution"),
		piechart.WithShowData(true),
	)
	for _, l := range strength.Labels() {
		if n := s.ByLabel[l]; n > 0 {
			chart.LabelAndIntValue(string(l), uint64(n)) //nolint:gosec // counts are non-negative
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by pwcheck*")
}

func wordlistText(v *model.WordlistVerdict) string {
	switch {
	case v.Found():
		return "found"
	case v.Unavailable():
		return "unavailable: " + v.Reason
	default:
		return "not found"
	}
}

func breachText(v *model.BreachVerdict) string {
	if v.Failed() {
		return "error: " + v.Error
	}
	return strconv.Itoa(v.Times())
}

func sourceOrDash(s string) string {
	return dash(s)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package report

import (
	"io"

	"github.com/nao1215/pwcheck/internal/model"
)

// Writer renders analysis results.
//
// Design decision: writers take the finished model types and never see a
// password, so no output format can leak one.
type Writer interface {
	// Write outputs a single analysis result.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.AnalysisResult) (int, error)

	// WriteBatch outputs the results of a batch run followed by summary.
	// Nil entries (inputs that never ran) are skipped.
	WriteBatch(results []*model.AnalysisResult, summary *model.BatchSummary) (int, error)
}

// MultiWriter writes to multiple Writers in order, for example a coloured
// terminal report plus a JSON file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(result *model.AnalysisResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteBatch outputs the batch to all configured Writers.
func (m *MultiWriter) WriteBatch(results []*model.AnalysisResult, summary *model.BatchSummary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteBatch(results, summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// present drops nil entries.
func present(results []*model.AnalysisResult) []*model.AnalysisResult {
	out := make([]*model.AnalysisResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// summaryOf returns summary, computing it from results when nil.
func summaryOf(results []*model.AnalysisResult, summary *model.BatchSummary) *model.BatchSummary {
	if summary != nil {
		return summary
	}
	return model.Summarize(results)
}

package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/pwcheck/internal/model"
)

// JSONWriter outputs results as JSON for scripts and other tools.
//
// Design decision: encoding/json is enough here; the result types carry
// their own tags and the output is small.
type JSONWriter struct {
	baseWriter

	indent       bool
	indentPrefix string
	indentString string

	// version is stamped into batch output when set.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion stamps the tool version into batch output.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs one result as a JSON object.
func (w *JSONWriter) Write(result *model.AnalysisResult) (int, error) {
	return w.writeJSON(result)
}

// BatchReport is the JSON document written for a batch run.
type BatchReport struct {
	Version string                  `json:"version,omitempty"`
	Results []*model.AnalysisResult `json:"results"`
	Summary *model.BatchSummary     `json:"summary"`
}

// WriteBatch outputs all results and the summary as one JSON document.
func (w *JSONWriter) WriteBatch(results []*model.AnalysisResult, summary *model.BatchSummary) (int, error) {
	results = present(results)
	return w.writeJSON(&BatchReport{
		Version: w.version,
		Results: results,
		Summary: summaryOf(results, summary),
	})
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/pwcheck/internal/model"
	"github.com/nao1215/pwcheck/internal/strength"
)

// weakResult is "password" checked against a wordlist and the breach API.
func weakResult() *model.AnalysisResult {
	r := model.NewAnalysisResult("flag")
	r.Length = 8
	r.Classes = strength.Classes{Lower: true}
	r.EntropyBits = 22
	r.Score = strength.Score{Value: 1, Label: strength.LabelWeak}
	r.Wordlist = model.WordlistMatch(true)
	r.Breach = model.BreachCount(10434004)
	r.Findings = model.Assess(r)
	return r
}

func strongResult() *model.AnalysisResult {
	r := model.NewAnalysisResult("list.txt:2")
	r.Length = 20
	r.Classes = strength.Classes{Upper: true, Lower: true, Digit: true, Special: true}
	r.EntropyBits = 80.25
	r.Score = strength.Score{Value: 4, Label: strength.LabelVeryStrong}
	r.Estimate = &strength.Estimate{Score: 4, CrackTime: "centuries"}
	r.Complexity = &model.Complexity{ClassesCount: 4}
	r.Breach = model.BreachError(errors.New("breach API error: 503"))
	r.Findings = model.Assess(r)
	return r
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("weak password report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(weakResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"=== Password analysis ===",
			"Length: 8",
			"Character classes: lower",
			"Entropy (bits): 22.0",
			"Simple score: 1 -> Weak",
			"Warning: Password found in provided wordlist.",
			"WARNING: password appears in breach list 10434004 times.",
			"Advice:",
			" - use at least 12 characters",
			" - increase entropy (longer / more unpredictable)",
			" - mix uppercase, lowercase, digits, and special characters",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
		if strings.Contains(output, "Good job") {
			t.Error("weak password should not be praised")
		}
	})

	t.Run("strong password report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(strongResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"Character classes: upper, lower, digit, special",
			"Entropy (bits): 80.25",
			"zxcvbn score: 4 (0-4)",
			"Breach check error: breach API error: 503",
			"Good job! Your password looks reasonably strong.",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
		if strings.Contains(output, "Character class count") {
			t.Error("class count should only appear in verbose mode")
		}
	})

	t.Run("verbose adds detail", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(strongResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Character class count: 4") {
			t.Error("expected class count in verbose output")
		}
		if !strings.Contains(output, "Findings:") || !strings.Contains(output, "[INFO]") {
			t.Errorf("expected findings section, got:\n%s", output)
		}
	})

	t.Run("unconfigured checks are omitted", func(t *testing.T) {
		t.Parallel()

		r := model.NewAnalysisResult("")
		r.Findings = model.Assess(r)

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.Contains(output, "wordlist") || strings.Contains(output, "breach") {
			t.Errorf("unexpected check lines:\n%s", output)
		}
		if !strings.Contains(output, "Character classes: none") {
			t.Error("expected empty class list")
		}
	})

	t.Run("batch summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		results := []*model.AnalysisResult{weakResult(), nil, strongResult()}
		if _, err := NewSimpleWriter(&buf).WriteBatch(results, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if n := strings.Count(output, "=== Password analysis ==="); n != 2 {
			t.Errorf("expected 2 result blocks, got %d", n)
		}
		for _, want := range []string{"=== Summary ===", "Passwords analyzed: 2", "Weak: 1", "Very strong: 1", "Found in breaches: 1", "Checks that failed: 1"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes compact object", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(weakResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Errorf("expected a single line, got %q", buf.String())
		}

		var got map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got["password_length"] != float64(8) || got["label"] != "Weak" {
			t.Errorf("unexpected fields: %v", got)
		}
		if _, ok := got["password"]; ok {
			t.Error("password must never be serialized")
		}
	})

	t.Run("pretty print", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(strongResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"password_length\": 20") {
			t.Errorf("expected indented output, got:\n%s", buf.String())
		}
	})

	t.Run("batch document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithVersion("v1.2.3"))
		if _, err := w.WriteBatch([]*model.AnalysisResult{weakResult(), strongResult(), nil}, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var doc BatchReport
		if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if doc.Version != "v1.2.3" || len(doc.Results) != 2 {
			t.Errorf("unexpected document: %+v", doc)
		}
		if doc.Summary == nil || doc.Summary.Total != 2 || doc.Summary.Breached != 1 {
			t.Errorf("unexpected summary: %+v", doc.Summary)
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("single result", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(weakResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"# Password Analysis", "| Length", "[!CAUTION]", "10434004", "Found in data breaches"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("batch with chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		results := []*model.AnalysisResult{weakResult(), strongResult()}
		if _, err := NewMarkdownWriter(&buf).WriteBatch(results, model.Summarize(results)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"# Password Audit", "## Summary", "```mermaid", "Strength Distribution", "### flag", "### list.txt:2"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
	})
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var text, js bytes.Buffer
	m := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

	n, err := m.Write(weakResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != text.Len()+js.Len() {
		t.Errorf("bytes written = %d, want %d", n, text.Len()+js.Len())
	}
	if text.Len() == 0 || js.Len() == 0 {
		t.Error("expected both writers to receive output")
	}
}

func TestStyles(t *testing.T) {
	t.Parallel()

	s := NewStyles(false)
	if s.Enabled() {
		t.Error("expected disabled styles")
	}
	if got := s.Label(strength.LabelStrong); got != "Strong" {
		t.Errorf("Label() = %q, want plain text", got)
	}
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
	if StylesFor(&bytes.Buffer{}).Enabled() {
		t.Error("styles should be disabled for non-terminals")
	}
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/nao1215/pwcheck/internal/model"
	"github.com/nao1215/pwcheck/internal/strength"
	"github.com/nao1215/pwcheck/internal/wordlist"
)

// Step names.
const (
	StepClassify   = "classify"
	StepEntropy    = "entropy"
	StepScore      = "score"
	StepComplexity = "complexity"
	StepEstimate   = "estimate"
	StepWordlist   = "wordlist"
	StepBreach     = "breach"
	StepFindings   = "findings"
)

// BreachChecker returns how often a password appears in known breaches.
// *breach.Client implements it.
type BreachChecker interface {
	Count(ctx context.Context, password string) (int, error)
}

// ClassifyStep measures length and character classes.
type ClassifyStep struct{}

// Name returns the step name.
func (ClassifyStep) Name() string { return StepClassify }

// Required reports true: length and classes are always reported.
func (ClassifyStep) Required() bool { return true }

// Do implements Step.
func (ClassifyStep) Do(_ context.Context, password string, r *model.AnalysisResult) error {
	r.Length = strength.Length(password)
	r.Classes = strength.Classify(password)
	return nil
}

// EntropyStep estimates Shannon entropy.
type EntropyStep struct{}

// Name returns the step name.
func (EntropyStep) Name() string { return StepEntropy }

// Required reports true.
func (EntropyStep) Required() bool { return true }

// Do implements Step.
func (EntropyStep) Do(_ context.Context, password string, r *model.AnalysisResult) error {
	r.EntropyBits = strength.Entropy(password)
	return nil
}

// ScoreStep computes the composite score from the fields set by
// ClassifyStep and EntropyStep. The score uses the exact entropy; the
// stored value is then rounded to two decimals.
type ScoreStep struct{}

// Name returns the step name.
func (ScoreStep) Name() string { return StepScore }

// Required reports true.
func (ScoreStep) Required() bool { return true }

// Do implements Step.
func (ScoreStep) Do(_ context.Context, _ string, r *model.AnalysisResult) error {
	r.Score = strength.Evaluate(r.Length, r.Classes, r.EntropyBits)
	r.EntropyBits = math.Round(r.EntropyBits*100) / 100
	return nil
}

// ComplexityStep fills the verbose detail block.
type ComplexityStep struct{}

// Name returns the step name.
func (ComplexityStep) Name() string { return StepComplexity }

// Do implements Step.
func (ComplexityStep) Do(_ context.Context, _ string, r *model.AnalysisResult) error {
	r.Complexity = &model.Complexity{ClassesCount: r.Classes.Count()}
	return nil
}

// EstimateStep asks a pattern-aware estimator for a second opinion.
type EstimateStep struct {
	estimator strength.Estimator
}

// NewEstimateStep returns a step using estimator.
func NewEstimateStep(estimator strength.Estimator) *EstimateStep {
	return &EstimateStep{estimator: estimator}
}

// Name returns the step name.
func (s *EstimateStep) Name() string { return StepEstimate }

// Do implements Step.
func (s *EstimateStep) Do(_ context.Context, password string, r *model.AnalysisResult) error {
	e := s.estimator.Estimate(password)
	r.Estimate = &e
	return nil
}

// WordlistStep looks the password up in a local wordlist.
type WordlistStep struct {
	path   string
	logger *slog.Logger
}

// NewWordlistStep returns a step scanning the file at path.
func NewWordlistStep(path string, logger *slog.Logger) *WordlistStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordlistStep{path: path, logger: logger}
}

// Name returns the step name.
func (s *WordlistStep) Name() string { return StepWordlist }

// Do implements Step. Failures become an unavailable verdict.
func (s *WordlistStep) Do(ctx context.Context, password string, r *model.AnalysisResult) error {
	found, err := wordlist.Contains(ctx, s.path, password)
	if err != nil {
		s.logger.Warn("wordlist check failed", "path", s.path, "error", err)
		r.Wordlist = model.WordlistError(wordlistReason(s.path, err))
		return nil
	}
	r.Wordlist = model.WordlistMatch(found)
	return nil
}

func wordlistReason(path string, err error) string {
	if errors.Is(err, wordlist.ErrResourceNotFound) {
		return fmt.Sprintf("Wordlist not found: %s", path)
	}
	return err.Error()
}

// BreachStep asks the breach service how often the password was leaked.
type BreachStep struct {
	checker BreachChecker
	logger  *slog.Logger
}

// NewBreachStep returns a step querying checker.
func NewBreachStep(checker BreachChecker, logger *slog.Logger) *BreachStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &BreachStep{checker: checker, logger: logger}
}

// Name returns the step name.
func (s *BreachStep) Name() string { return StepBreach }

// Do implements Step. Failures become an error verdict.
func (s *BreachStep) Do(ctx context.Context, password string, r *model.AnalysisResult) error {
	n, err := s.checker.Count(ctx, password)
	if err != nil {
		s.logger.Warn("breach check failed", "error", err)
		r.Breach = model.BreachError(err)
		return nil
	}
	r.Breach = model.BreachCount(n)
	return nil
}

// FindingsStep derives advice from everything measured so far.
type FindingsStep struct{}

// Name returns the step name.
func (FindingsStep) Name() string { return StepFindings }

// Do implements Step.
func (FindingsStep) Do(_ context.Context, _ string, r *model.AnalysisResult) error {
	r.Findings = model.Assess(r)
	return nil
}

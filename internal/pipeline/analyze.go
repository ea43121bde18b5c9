package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/pwcheck/internal/log"
	"github.com/nao1215/pwcheck/internal/model"
	"github.com/nao1215/pwcheck/internal/strength"
)

// Options selects which checks an analysis runs.
type Options struct {
	// WordlistPath enables the wordlist check when non-empty.
	WordlistPath string

	// Breach enables the breach check when non-nil.
	Breach BreachChecker

	// Estimator enables the pattern-aware estimate when non-nil.
	Estimator strength.Estimator

	// Verbose adds the complexity detail block.
	Verbose bool

	// Source labels the result. It must never be the password.
	Source string

	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Discard()
}

// NewAnalysisPipeline builds the standard step sequence for opts.
//
// The heuristic steps always run. Estimate, wordlist and breach steps are
// added only when configured, and findings come last so they see every
// verdict.
func NewAnalysisPipeline(opts Options) *Pipeline {
	logger := opts.logger()
	p := New(WithLogger(logger), WithContinueOnError(true))
	p.AddSteps(ClassifyStep{}, EntropyStep{}, ScoreStep{})
	if opts.Verbose {
		p.AddStep(ComplexityStep{})
	}
	if opts.Estimator != nil {
		p.AddStep(NewEstimateStep(opts.Estimator))
	}
	if opts.WordlistPath != "" {
		p.AddStep(NewWordlistStep(opts.WordlistPath, logger))
	}
	if opts.Breach != nil {
		p.AddStep(NewBreachStep(opts.Breach, logger))
	}
	p.AddStep(FindingsStep{})
	return p
}

// Analyze runs a full analysis of password.
//
// It always returns a result with length, classes, entropy and score
// filled in. Optional checks that fail are reported in their verdicts. A
// cancelled ctx skips the optional checks and the findings.
func Analyze(ctx context.Context, password string, opts Options) *model.AnalysisResult {
	result := model.NewAnalysisResult(opts.Source)
	if err := NewAnalysisPipeline(opts).Execute(ctx, password, result); err != nil {
		opts.logger().Warn("analysis incomplete", "source", opts.Source, "error", err)
	}
	return result
}

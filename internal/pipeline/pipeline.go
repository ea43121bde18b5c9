package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/pwcheck/internal/model"
)

// Step is one stage of a password analysis. Steps run in order and each
// one reads and fills in the shared result.
//
// Design decision: steps for optional checks record their failures in the
// result and return nil, so a missing wordlist or an unreachable breach
// API never hides the heuristic score. A non-nil error is reserved for
// conditions that make the remaining steps pointless, such as cancellation.
type Step interface {
	// Do runs the step for password and writes into result.
	Do(ctx context.Context, password string, result *model.AnalysisResult) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// RequiredStep is implemented by steps whose output every result must
// carry. They still run after ctx is cancelled.
type RequiredStep interface {
	Step
	Required() bool
}

func isRequired(step Step) bool {
	r, ok := step.(RequiredStep)
	return ok && r.Required()
}

// Pipeline runs steps in sequence.
type Pipeline struct {
	steps           []Step
	logger          *slog.Logger
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError keeps executing later steps after one returns an
// error. The default is to stop.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{steps: make([]Step, 0)}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs every step against password and result.
//
// Cancellation is checked before each step. Once ctx is done only
// required steps run, and the cancellation error is returned at the end.
// A step error stops the run unless WithContinueOnError is set, in which
// case it is only logged. Steps that ran are listed in
// result.PerformedSteps.
func (p *Pipeline) Execute(ctx context.Context, password string, result *model.AnalysisResult) error {
	var cancelErr error
	for _, step := range p.steps {
		if cancelErr == nil {
			if err := ctx.Err(); err != nil {
				p.logger.Warn("pipeline cancelled", "step", step.Name(), "reason", err)
				cancelErr = err
			}
		}
		if cancelErr != nil && !isRequired(step) {
			continue
		}

		p.logger.Debug("executing step", "step", step.Name(), "source", result.Source)

		if err := step.Do(ctx, password, result); err != nil {
			p.logger.Error("step failed", "step", step.Name(), "source", result.Source, "error", err)
			if !p.continueOnError {
				return err
			}
		} else {
			p.logger.Debug("step completed", "step", step.Name())
		}
		result.AddStep(step.Name())
	}
	return cancelErr
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

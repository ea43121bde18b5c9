package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/pwcheck/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, password string, r *model.AnalysisResult) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, password string, r *model.AnalysisResult) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, password, r)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()
		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))
		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "first"})
	p.AddSteps(&mockStep{name: "second"}, &mockStep{name: "third"})

	if p.StepCount() != 3 {
		t.Errorf("expected 3 steps, got %d", p.StepCount())
	}
	if got, want := p.StepNames(), []string{"first", "second", "third"}; !slices.Equal(got, want) {
		t.Errorf("StepNames() = %v, want %v", got, want)
	}
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order with the password", func(t *testing.T) {
		t.Parallel()

		var seen []string
		record := func(name string) *mockStep {
			return &mockStep{
				name: name,
				doFunc: func(_ context.Context, pw string, _ *model.AnalysisResult) error {
					seen = append(seen, name+"="+pw)
					return nil
				},
			}
		}

		p := New()
		p.AddSteps(record("step-1"), record("step-2"))

		r := model.NewAnalysisResult("test")
		if err := p.Execute(t.Context(), "secret", r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []string{"step-1=secret", "step-2=secret"}; !slices.Equal(seen, want) {
			t.Errorf("execution = %v, want %v", seen, want)
		}
		if want := []string{"step-1", "step-2"}; !slices.Equal(r.PerformedSteps, want) {
			t.Errorf("PerformedSteps = %v, want %v", r.PerformedSteps, want)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		second := &mockStep{name: "should-not-run"}

		p := New()
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(context.Context, string, *model.AnalysisResult) error {
				return expectedErr
			},
		})
		p.AddStep(second)

		err := p.Execute(t.Context(), "pw", model.NewAnalysisResult(""))
		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if second.callCount != 0 {
			t.Error("second step should not have been called")
		}
	})

	t.Run("continues on error when configured", func(t *testing.T) {
		t.Parallel()

		second := &mockStep{name: "should-run"}

		p := New(WithContinueOnError(true))
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(context.Context, string, *model.AnalysisResult) error {
				return errors.New("step failed")
			},
		})
		p.AddStep(second)

		if err := p.Execute(t.Context(), "pw", model.NewAnalysisResult("")); err != nil {
			t.Errorf("expected nil error with continueOnError, got %v", err)
		}
		if second.callCount != 1 {
			t.Error("second step should have been called")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		step := &mockStep{name: "should-not-run"}
		p := New(WithContinueOnError(true))
		p.AddStep(step)

		r := model.NewAnalysisResult("")
		err := p.Execute(ctx, "pw", r)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not have been called")
		}
		if len(r.PerformedSteps) != 0 {
			t.Errorf("PerformedSteps = %v, want none", r.PerformedSteps)
		}
	})
}

// requiredStep is a mockStep that also runs after cancellation.
type requiredStep struct {
	mockStep
}

func (*requiredStep) Required() bool { return true }

func TestPipelineExecuteCancelledRunsRequiredSteps(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	first := &requiredStep{mockStep{name: "first"}}
	optional := &mockStep{name: "optional"}
	last := &requiredStep{mockStep{name: "last"}}
	p := New(WithContinueOnError(true))
	p.AddSteps(first, optional, last)

	r := model.NewAnalysisResult("")
	err := p.Execute(ctx, "pw", r)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if first.callCount != 1 || last.callCount != 1 {
		t.Errorf("required steps called %d and %d times, want 1 each", first.callCount, last.callCount)
	}
	if optional.callCount != 0 {
		t.Error("optional step should not have been called")
	}
	if want := []string{"first", "last"}; !slices.Equal(r.PerformedSteps, want) {
		t.Errorf("PerformedSteps = %v, want %v", r.PerformedSteps, want)
	}
}

func TestPipelineWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := New(WithLogger(logger))
	p.AddStep(&mockStep{name: "logged-step"})

	if err := p.Execute(t.Context(), "hunter2", model.NewAnalysisResult("flag")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "logged-step") {
		t.Errorf("expected step name in log output, got %q", out)
	}
	if strings.Contains(out, "hunter2") {
		t.Error("password leaked into log output")
	}
}

package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/pwcheck/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of passwords analyzed at once in batch
// mode. It is small because every breach lookup is a network round trip.
const DefaultConcurrency = 4

// Input is one password to analyze together with a label for where it
// came from.
type Input struct {
	Source   string
	Password string
}

// BatchProcessor analyzes many passwords concurrently.
//
// Design decision: batch handling lives outside Pipeline so a single
// analysis stays a plain sequential run, and the batch layer only owns
// fan-out, ordering and the concurrency limit.
type BatchProcessor struct {
	// pipelineFactory creates the pipeline used for each input.
	pipelineFactory func() *Pipeline

	concurrency int
	logger      *slog.Logger

	// results is indexed like the inputs. Access is synchronized via mu.
	results []*model.AnalysisResult
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Values below 1 are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor. pipelineFactory is called
// once per input.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// Concurrency returns the configured limit.
func (bp *BatchProcessor) Concurrency() int {
	return bp.concurrency
}

// ProcessBatch analyzes every input and returns results in input order.
//
// Per-input failures are recorded in the results and do not stop the
// batch. If ctx is cancelled, inputs that never started have a nil entry
// and the cancellation error is returned.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, inputs []Input) ([]*model.AnalysisResult, error) {
	bp.logger.Info("starting batch processing",
		"total", len(inputs),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	bp.mu.Lock()
	bp.results = make([]*model.AnalysisResult, len(inputs))
	bp.mu.Unlock()

	err := bp.run(ctx, inputs, func(result *model.AnalysisResult, index int) {
		bp.mu.Lock()
		bp.results[index] = result
		bp.mu.Unlock()
	})

	bp.logger.Info("batch processing complete",
		"total", len(inputs),
		"elapsed", time.Since(startTime),
	)

	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.results, err
}

// ProcessBatchWithCallback analyzes every input and hands each result to
// callback as soon as it is ready. callback runs on worker goroutines and
// must be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	inputs []Input,
	callback func(result *model.AnalysisResult, index int),
) error {
	bp.logger.Info("starting batch processing with callback",
		"total", len(inputs),
		"concurrency", bp.concurrency,
	)
	return bp.run(ctx, inputs, callback)
}

func (bp *BatchProcessor) run(
	ctx context.Context,
	inputs []Input,
	deliver func(result *model.AnalysisResult, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, in := range inputs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Debug("analyzing password",
				"source", in.Source,
				"index", i+1,
				"total", len(inputs),
			)

			result := model.NewAnalysisResult(in.Source)
			if err := bp.pipelineFactory().Execute(ctx, in.Password, result); err != nil {
				// The partial result is still delivered.
				bp.logger.Warn("analysis incomplete", "source", in.Source, "error", err)
			}
			deliver(result, i)
			return nil
		})
	}

	return g.Wait()
}

package breach

import (
	"context"
	"math/rand/v2"
	"net/http"
	"time"
)

// delays are the [min, max) jitter windows before each retry.
// Retries past the table reuse the last window.
var delays = [...][2]time.Duration{
	{250 * time.Millisecond, 750 * time.Millisecond},
	{375 * time.Millisecond, 1125 * time.Millisecond},
	{562 * time.Millisecond, 1687 * time.Millisecond},
}

// RetryingDoer retries transport errors and 5xx responses.
// Range requests have no body, so requests are cloned as is.
type RetryingDoer struct {
	doer    Doer
	retries int
	sleep   func(context.Context, time.Duration) error
}

// NewRetryingDoer wraps doer with up to retries extra attempts.
// With retries <= 0, doer is returned unchanged.
func NewRetryingDoer(doer Doer, retries int) Doer {
	if retries <= 0 {
		return doer
	}
	return &RetryingDoer{doer: doer, retries: retries, sleep: sleepCtx}
}

// Do implements Doer. The last response or error is returned once the
// attempts run out.
func (r *RetryingDoer) Do(req *http.Request) (*http.Response, error) {
	var (
		resp *http.Response
		err  error
	)
	for attempt := 0; attempt <= r.retries; attempt++ {
		if attempt > 0 {
			if resp != nil {
				resp.Body.Close()
			}
			if serr := r.sleep(req.Context(), delayFor(attempt)); serr != nil {
				return nil, serr
			}
		}

		resp, err = r.doer.Do(req.Clone(req.Context()))
		if !retryable(resp, err) {
			return resp, err
		}
	}
	return resp, err
}

func retryable(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp.StatusCode >= http.StatusInternalServerError
}

func delayFor(attempt int) time.Duration {
	w := delays[min(attempt, len(delays))-1]
	return w[0] + rand.N(w[1]-w[0]) //nolint:gosec // jitter only
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

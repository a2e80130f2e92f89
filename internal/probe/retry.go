package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// RetryPolicy wraps a Prober with bounded-retry semantics for a single host:
// probe up to Attempts times, short-circuit on the first success, and wait
// Delay between consecutive attempts (never after the last one).
type RetryPolicy struct {
	Prober   Prober
	Attempts int
	Delay    time.Duration

	// wait is overridable so tests can count delays without sleeping.
	wait func(ctx context.Context, d time.Duration) error
}

func NewRetryPolicy(p Prober, attempts int, delay time.Duration) (*RetryPolicy, error) {
	if p == nil {
		return nil, fmt.Errorf("retry: prober is required")
	}
	if attempts < 1 {
		return nil, fmt.Errorf("retry: attempts must be >= 1, got %d", attempts)
	}
	if delay < 0 {
		return nil, fmt.Errorf("retry: delay must be >= 0, got %v", delay)
	}
	return &RetryPolicy{Prober: p, Attempts: attempts, Delay: delay, wait: sleepCtx}, nil
}

// Resolve produces the final verdict for one host. Ordinary network failure
// is a Down verdict, not an error; the only error returned is context
// cancellation, in which case no verdict exists for the host.
func (r *RetryPolicy) Resolve(ctx context.Context, h domain.Host) (domain.HostVerdict, error) {
	var firstFailure *time.Time
	var last Outcome

	for i := 1; i <= r.Attempts; i++ {
		if err := ctx.Err(); err != nil {
			return domain.HostVerdict{}, err
		}

		last = r.Prober.Probe(ctx, h)
		if last.Reachable {
			return domain.HostVerdict{
				Host:           h,
				Status:         domain.StatusUp,
				AttemptsMade:   i,
				FirstFailureAt: firstFailure,
				LastAttemptAt:  last.At,
				LatencyMS:      last.LatencyMS,
			}, nil
		}

		if firstFailure == nil {
			at := last.At
			firstFailure = &at
		}
		// an attempt abandoned mid-flight is not a real failure; no verdict
		if err := ctx.Err(); err != nil {
			return domain.HostVerdict{}, err
		}
		if i < r.Attempts {
			if err := r.wait(ctx, r.Delay); err != nil {
				return domain.HostVerdict{}, err
			}
		}
	}

	return domain.HostVerdict{
		Host:           h,
		Status:         domain.StatusDown,
		AttemptsMade:   r.Attempts,
		FirstFailureAt: firstFailure,
		LastAttemptAt:  last.At,
		LatencyMS:      last.LatencyMS,
		Reason:         string(last.Reason),
	}, nil
}

// sleepCtx suspends for d without blocking other hosts' resolutions.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

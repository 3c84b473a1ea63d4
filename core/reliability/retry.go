package reliability

import (
	"context"
	"math"
	"time"
)

// RetryPolicy configures bounded exponential backoff for one class of call.
// C4's read path uses R_read (more attempts, shorter backoff); its write
// path uses R_write (fewer attempts, longer backoff), per spec §4.6.
type RetryPolicy struct {
	MaxAttempts  int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
}

// ReadPolicy is the tracker's R_read policy: short backoff, generous attempt
// budget, safe because reads have no side effects to duplicate.
func ReadPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 5, BaseDelay: 100 * time.Millisecond, MaxDelay: 2 * time.Second}
}

// WritePolicy is the tracker's R_write policy: fewer attempts, longer
// backoff, to avoid duplicating a side-effecting call.
func WritePolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 500 * time.Millisecond, MaxDelay: 5 * time.Second}
}

// LedgerPolicy is the Ledger's optimistic-concurrency retry budget (spec
// §4.1): 3 attempts, waiting 100ms then 200ms between them; MaxDelay caps
// any wait at 400ms.
func LedgerPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 100 * time.Millisecond, MaxDelay: 400 * time.Millisecond}
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	d := time.Duration(float64(p.BaseDelay) * math.Pow(2, float64(attempt-1)))
	if d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Classifier decides whether an error returned by fn should be retried.
type Classifier func(err error) bool

// Do runs fn up to MaxAttempts times, sleeping with exponential backoff
// between attempts, stopping early when classify reports the error is
// terminal. It returns the last error seen if every attempt is exhausted.
func (p RetryPolicy) Do(ctx context.Context, classify Classifier, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if classify != nil && !classify(err) {
			return err
		}

		if attempt == p.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.delay(attempt)):
		}
	}

	return lastErr
}

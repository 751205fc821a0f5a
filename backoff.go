package retryable

import (
	"math"
	"time"
)

// Backoff computes the delay before a retry. retry is the zero-based retry
// counter: Delay(0) runs before the second attempt.
type Backoff interface {
	Delay(retry int) time.Duration
}

// BackoffFunc is an adapter that allows a function to be used as a Backoff.
type BackoffFunc func(retry int) time.Duration

// Delay implements Backoff.
func (f BackoffFunc) Delay(retry int) time.Duration {
	return f(retry)
}

// Fixed returns a backoff that always waits the same duration.
func Fixed(d time.Duration) Backoff {
	return BackoffFunc(func(int) time.Duration {
		return d
	})
}

// Linear returns a backoff that grows linearly with each retry.
// delay = base * (retry+1)
func Linear(base time.Duration) Backoff {
	return BackoffFunc(func(retry int) time.Duration {
		if retry < 0 {
			return base
		}
		return base * time.Duration(retry+1)
	})
}

// Exponential returns a backoff that doubles with each retry.
// delay = base * 2^retry
func Exponential(base time.Duration) Backoff {
	return BackoffFunc(func(retry int) time.Duration {
		if retry <= 0 {
			return base
		}
		// Prevent overflow
		if retry > 62 {
			return time.Duration(math.MaxInt64)
		}
		return base * time.Duration(1<<uint(retry))
	})
}

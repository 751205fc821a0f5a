package retryable

import (
	"context"
	"time"
)

// Sleeper abstracts the blocking delay between attempts. Useful for
// testing and for callers with their own delay primitive.
type Sleeper interface {
	// Sleep blocks for d or until the context is done, returning the
	// context's error in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// stdSleeper implements Sleeper using the standard time package. Delays
// are rounded to the nearest millisecond, the granularity this package
// promises for computed backoff.
type stdSleeper struct{}

func (stdSleeper) Sleep(ctx context.Context, d time.Duration) error {
	d = d.Round(time.Millisecond)
	if d < 0 {
		d = 0
	}
	timer := time.NewTimer(d)
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return ctx.Err()
	}
}

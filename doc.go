// Package retryable re-invokes a unit of work according to configurable
// policy until it succeeds, exhausts its attempts, or fails in a way the
// policy does not match.
//
// retryable is a retry-control package that provides:
//
//   - Matchers: retry only errors of matching kinds and messages
//   - Value Failures: treat designated return values as retryable failures
//   - Stored Profiles: resolve named policies from an injected provider
//   - Injectable Sleeper: control delays in tests without real sleeps
//   - After Hook: exactly-once cleanup when the whole run has resolved
//   - Composable Backoff: fixed delays or any function of the retry count
//
// # Quick Start
//
// Using the package-level Run for one-off retries:
//
//	v, err := retryable.Run(ctx, func() (any, error) {
//	    return client.Fetch()
//	}, retryable.Tries(3), retryable.Sleep(200*time.Millisecond))
//
// Or the typed form:
//
//	user, err := retryable.Do(ctx, retrier, func() (*User, error) {
//	    return client.FetchUser(id)
//	}, retryable.Tries(3))
//
// # Attempt Counting
//
// Tries counts retries after the first attempt: Tries(3) allows up to four
// invocations of the work function, and Tries(0) means a single attempt
// with no retry. No sleep ever follows the final attempt. The defaults are
// one retry and a one second fixed delay.
//
// # Matchers
//
// With no matchers installed every failure is retried. On, OnAs, and
// OnMatch restrict retry to matching error kinds; Message and
// MessagePattern restrict it to matching messages. A failure that misses
// either filter is returned immediately, even with tries remaining:
//
//	v, err := retrier.Run(ctx, work,
//	    retryable.On(io.ErrUnexpectedEOF, ErrThrottled),
//	    retryable.Message("timeout", "connection reset"),
//	)
//
// When attempts run out the last failure is returned unchanged; nothing is
// wrapped, so errors.Is and errors.As keep working on the result.
//
// # Value Failures
//
// Some work reports failure through its return value rather than an error.
// OnErrorValue retries values recognized by IsFailureValue (non-nil errors,
// Failer implementors, the "error" sentinel string, tagged []any tuples);
// OnValue installs an explicit condition:
//
//	v, err := retrier.Run(ctx, work,
//	    retryable.OnValue(func(v any) bool { return v == nil }),
//	    retryable.Tries(5),
//	)
//
// Note the asymmetry on exhaustion: a run that keeps failing with an error
// returns that error, but a run whose value keeps failing the condition
// returns the last value with a nil error. Callers on the value path
// inspect the result themselves.
//
// # Stored Profiles
//
// A Retrier built with a Provider resolves stored policies by name. The
// reserved "defaults" profile applies to every run; RunProfile layers a
// named profile on top, and literal options win over both:
//
//	retrier := retryable.New(retryable.WithProvider(retryable.Profiles{
//	    "defaults": {retryable.Tries(2)},
//	    "upstream": {retryable.Tries(5), retryable.Sleep(time.Second)},
//	}))
//
//	v, err := retrier.RunProfile(ctx, "upstream", work)
//
// Unknown profile names are not errors: resolution proceeds with defaults
// only. The profiles subpackage loads the same shapes from YAML.
//
// # After Hook
//
// After registers cleanup that runs exactly once per call, after the whole
// retry sequence has resolved, no matter how many attempts were made or
// how the run ended:
//
//	v, err := retrier.Run(ctx, work, retryable.After(conn.Close))
//
// # Backoff
//
// Delays are a fixed duration (Sleep) or any function of the zero-based
// retry count (SleepFunc), with Fixed, Linear, and Exponential provided:
//
//	retryable.Sleep(250*time.Millisecond)
//	retryable.SleepFunc(func(n int) time.Duration {
//	    return time.Duration(n+1) * time.Second
//	})
//	retryable.WithBackoff(retryable.Exponential(100*time.Millisecond))
//
// Computed delays are rounded to the nearest millisecond by the standard
// sleeper. There is no jitter and no delay cap; this package is a local,
// synchronous control-flow decorator, not a scheduler or circuit breaker.
//
// # Terminal Errors
//
// Use Stop to veto retry from inside the work function, bypassing the
// matchers:
//
//	func fetch(ctx context.Context) (any, error) {
//	    v, err := db.Get(ctx, id)
//	    if errors.Is(err, sql.ErrNoRows) {
//	        return nil, retryable.Stop(err)
//	    }
//	    return v, err
//	}
//
// # Testing
//
// Inject a recording sleeper to observe delays without waiting:
//
//	type fakeSleeper struct{ sleeps []time.Duration }
//
//	func (s *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
//	    s.sleeps = append(s.sleeps, d)
//	    return ctx.Err()
//	}
//
//	retrier := retryable.New(retryable.WithSleeper(&fakeSleeper{}))
package retryable

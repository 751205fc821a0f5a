package retryable

import (
	"context"
	"errors"
)

// Work is the unit of work driven by the retry loop. It either returns a
// value (which may still be judged a failure by a ValueCondition) or a
// non-nil error.
type Work func() (any, error)

// Retrier drives retry runs. The zero configuration retries with the
// package defaults and sleeps for real; inject a Provider for named
// profiles and a Sleeper for tests. Safe for concurrent use: every run
// resolves its own policy and keeps no state on the Retrier.
type Retrier struct {
	provider Provider
	sleeper  Sleeper
}

// RetrierOption configures a Retrier at construction.
type RetrierOption func(*Retrier)

// WithProvider sets the profile provider consulted for the defaults
// profile and for RunProfile lookups.
func WithProvider(p Provider) RetrierOption {
	return func(r *Retrier) {
		r.provider = p
	}
}

// WithSleeper sets the sleep primitive. Useful for testing.
func WithSleeper(s Sleeper) RetrierOption {
	return func(r *Retrier) {
		r.sleeper = s
	}
}

// New creates a Retrier with the given options.
func New(opts ...RetrierOption) *Retrier {
	r := &Retrier{
		sleeper: stdSleeper{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sleeper == nil {
		r.sleeper = stdSleeper{}
	}
	return r
}

var defaultRetrier = New()

// Run executes work with retry using a default Retrier (no provider, real
// sleeps) and the given options.
func Run(ctx context.Context, work Work, opts ...Option) (any, error) {
	return defaultRetrier.Run(ctx, work, opts...)
}

// Run executes work with retry using options resolved against the
// provider's defaults.
func (r *Retrier) Run(ctx context.Context, work Work, opts ...Option) (any, error) {
	return r.run(ctx, r.resolve("", opts), work)
}

// RunProfile executes work with retry using the named stored profile,
// resolved against the provider's defaults and then overridden by any
// literal options. An unknown name is not an error; resolution simply
// proceeds with defaults only.
func (r *Retrier) RunProfile(ctx context.Context, name string, work Work, opts ...Option) (any, error) {
	return r.run(ctx, r.resolve(name, opts), work)
}

// Do executes fn with retry and returns its typed result. It is Run with
// the boxing handled for the caller.
func Do[T any](ctx context.Context, r *Retrier, fn func() (T, error), opts ...Option) (T, error) {
	var out T
	v, err := r.Run(ctx, func() (any, error) { return fn() }, opts...)
	if v != nil {
		out = v.(T)
	}
	return out, err
}

// DoProfile is Do against a named stored profile.
func DoProfile[T any](ctx context.Context, r *Retrier, name string, fn func() (T, error), opts ...Option) (T, error) {
	var out T
	v, err := r.RunProfile(ctx, name, func() (any, error) { return fn() }, opts...)
	if v != nil {
		out = v.(T)
	}
	return out, err
}

// resolve builds the per-run policy: package defaults, then the provider's
// defaults profile, then the named profile when given, then literal
// options. Later layers win.
func (r *Retrier) resolve(name string, opts []Option) policy {
	p := policy{
		maxTries: DefaultTries,
		backoff:  Fixed(DefaultSleep),
	}
	if r.provider != nil {
		for _, opt := range r.provider.Profile(DefaultsProfile) {
			opt(&p)
		}
		if name != "" && name != DefaultsProfile {
			for _, opt := range r.provider.Profile(name) {
				opt(&p)
			}
		}
	}
	for _, opt := range opts {
		opt(&p)
	}
	p.normalize()
	return p
}

func (r *Retrier) run(ctx context.Context, p policy, work Work) (any, error) {
	// The after hook observes the fully resolved run, so it wraps the
	// whole loop once rather than firing per attempt.
	defer p.after()

	// n counts retries, not attempts: n == maxTries means the current
	// attempt is the last one, giving maxTries+1 attempts in the worst
	// case.
	for n := 0; ; n++ {
		v, err := work()
		if err == nil {
			if p.valueCond == nil || !p.valueCond(v) {
				return v, nil
			}
			if n == p.maxTries {
				// Exhausted on the value path: the caller gets the
				// last failing value back, with no error. Asymmetric
				// with the error path on purpose.
				return v, nil
			}
		} else {
			var terminal *stopError
			if errors.As(err, &terminal) {
				return nil, terminal.Unwrap()
			}
			if n == p.maxTries {
				// Exhausted: propagate the original failure unchanged.
				return nil, err
			}
			if !p.matchKind(err) || !p.matchMessage(err) {
				return nil, err
			}
		}

		delay := p.backoff.Delay(n)
		if p.onRetry != nil {
			p.onRetry(ctx, n, err, delay)
		}
		if p.logger != nil {
			p.logger.Debug("retrying",
				"attempt", n+1,
				"delay", delay,
				"error", err,
			)
		}
		if serr := r.sleeper.Sleep(ctx, delay); serr != nil {
			if err != nil {
				return nil, err
			}
			return v, serr
		}
	}
}

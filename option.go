package retryable

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"slices"
	"time"
)

// Defaults applied before any profile or literal option.
const (
	DefaultTries = 1
	DefaultSleep = 1 * time.Second
)

// policy is the resolved configuration for a single run. It is built fresh
// by resolve for every run and never mutated afterwards.
type policy struct {
	maxTries  int
	kinds     []ErrorMatcher
	substrs   []string
	patterns  []*regexp.Regexp
	valueCond ValueCondition
	errValue  bool
	backoff   Backoff
	after     func()
	onRetry   OnRetryFunc
	logger    *slog.Logger
}

// Option configures a single retry run.
type Option func(*policy)

// OnRetryFunc is called before each retry sleep. retry is the zero-based
// retry counter; err is nil when the retry was triggered by a failing
// returned value rather than an error.
type OnRetryFunc func(ctx context.Context, retry int, err error, delay time.Duration)

// Tries sets the number of retries allowed after the first attempt, so a
// run makes at most n+1 attempts. Zero means a single attempt. Negative
// values are treated as zero.
func Tries(n int) Option {
	return func(p *policy) {
		p.maxTries = n
	}
}

// Sleep sets a fixed delay between attempts.
func Sleep(d time.Duration) Option {
	return WithBackoff(Fixed(d))
}

// SleepFunc sets the delay as a function of the zero-based retry counter.
func SleepFunc(fn func(retry int) time.Duration) Option {
	return WithBackoff(BackoffFunc(fn))
}

// WithBackoff sets the backoff strategy.
func WithBackoff(b Backoff) Option {
	return func(p *policy) {
		p.backoff = b
	}
}

// On restricts retry to errors matching one of the targets, in the
// errors.Is sense. Multiple On calls accumulate. With no kind matchers
// installed, every error matches.
func On(targets ...error) Option {
	return func(p *policy) {
		for _, target := range targets {
			p.kinds = append(p.kinds, Is(target))
		}
	}
}

// OnMatch restricts retry to errors accepted by the matcher. Multiple
// matchers accumulate; any match qualifies.
func OnMatch(m ErrorMatcher) Option {
	return func(p *policy) {
		p.kinds = append(p.kinds, m)
	}
}

// OnAs restricts retry to errors assignable to E, in the errors.As sense.
func OnAs[E error]() Option {
	return OnMatch(func(err error) bool {
		var target E
		return errors.As(err, &target)
	})
}

// Message restricts retry to errors whose message contains one of the
// given substrings. Duplicates are dropped during resolution. With no
// message matchers installed, every message matches.
func Message(substrings ...string) Option {
	return func(p *policy) {
		p.substrs = append(p.substrs, substrings...)
	}
}

// MessagePattern restricts retry to errors whose message matches one of
// the given patterns. Patterns and substrings accumulate; any match
// qualifies.
func MessagePattern(patterns ...*regexp.Regexp) Option {
	return func(p *policy) {
		p.patterns = append(p.patterns, patterns...)
	}
}

// OnErrorValue enables the returned-value failure path using
// IsFailureValue. Without OnErrorValue or OnValue, returned values are
// never retried; only errors are.
func OnErrorValue() Option {
	return func(p *policy) {
		p.errValue = true
	}
}

// OnValue enables the returned-value failure path with an explicit
// condition. An explicit condition wins over OnErrorValue when both are
// present.
func OnValue(cond ValueCondition) Option {
	return func(p *policy) {
		p.valueCond = cond
	}
}

// After sets a hook that runs exactly once per run, after the whole retry
// sequence has resolved, whether it ended in success, exhaustion, or a
// propagated failure.
func After(fn func()) Option {
	return func(p *policy) {
		p.after = fn
	}
}

// OnRetry sets a hook that is called before each retry sleep.
func OnRetry(fn OnRetryFunc) Option {
	return func(p *policy) {
		p.onRetry = fn
	}
}

// WithLogger makes the run log each retry decision at Debug level.
func WithLogger(l *slog.Logger) Option {
	return func(p *policy) {
		p.logger = l
	}
}

// normalize canonicalizes a resolved policy.
func (p *policy) normalize() {
	if p.maxTries < 0 {
		p.maxTries = 0
	}
	p.substrs = dedupe(p.substrs)
	if p.valueCond == nil && p.errValue {
		p.valueCond = IsFailureValue
	}
	if p.backoff == nil {
		p.backoff = Fixed(DefaultSleep)
	}
	if p.after == nil {
		p.after = func() {}
	}
}

func dedupe(ss []string) []string {
	if len(ss) < 2 {
		return ss
	}
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

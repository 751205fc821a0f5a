package retryable

import (
	"errors"
	"strings"
)

// ErrorMatcher decides whether an error's kind qualifies for retry.
type ErrorMatcher func(error) bool

// Is returns a matcher for a single target in the errors.Is sense.
func Is(target error) ErrorMatcher {
	return func(err error) bool {
		return errors.Is(err, target)
	}
}

// Not inverts a matcher.
func Not(m ErrorMatcher) ErrorMatcher {
	return func(err error) bool {
		return !m(err)
	}
}

// matchKind reports whether the error's kind qualifies for retry. An empty
// matcher set is a wildcard.
func (p *policy) matchKind(err error) bool {
	if len(p.kinds) == 0 {
		return true
	}
	for _, m := range p.kinds {
		if m(err) {
			return true
		}
	}
	return false
}

// matchMessage reports whether the error's message qualifies for retry.
// With no substrings or patterns installed, every message matches.
func (p *policy) matchMessage(err error) bool {
	if len(p.substrs) == 0 && len(p.patterns) == 0 {
		return true
	}
	msg := err.Error()
	for _, s := range p.substrs {
		if strings.Contains(msg, s) {
			return true
		}
	}
	for _, re := range p.patterns {
		if re.MatchString(msg) {
			return true
		}
	}
	return false
}

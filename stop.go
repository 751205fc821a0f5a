package retryable

// Stop wraps an error to signal that it must not be retried, regardless of
// the run's kind and message matchers. The loop immediately returns the
// unwrapped error.
func Stop(err error) error {
	if err == nil {
		return nil
	}
	return &stopError{err: err}
}

// stopError marks an error as terminal for the retry loop.
type stopError struct {
	err error
}

func (e *stopError) Error() string {
	return e.err.Error()
}

func (e *stopError) Unwrap() error {
	return e.err
}

package retryable

import "fmt"

// ValueCondition reports whether a value returned without an error should
// nevertheless be treated as a failed attempt. Conditions only ever see
// values from the nil-error path; errors go through the kind and message
// matchers instead.
type ValueCondition func(v any) bool

// Failer marks returned values that carry their own failure state.
type Failer interface {
	Failed() bool
}

// Failure is a tagged failure value for callers whose work signals errors
// through return values rather than Go errors.
type Failure struct {
	Kind    string
	Message string
	Detail  any
}

// Failed implements Failer.
func (f Failure) Failed() bool { return true }

func (f Failure) String() string {
	if f.Detail != nil {
		return fmt.Sprintf("%s: %s (%v)", f.Kind, f.Message, f.Detail)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// IsFailureValue is the condition installed by OnErrorValue. It treats a
// value as failed when it is a Failer reporting failure, a non-nil error,
// the bare "error" sentinel string, or a non-empty []any tuple whose first
// element is itself a failed value.
func IsFailureValue(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case Failer:
		return v.Failed()
	case error:
		return v != nil
	case string:
		return v == "error"
	case []any:
		return len(v) > 0 && IsFailureValue(v[0])
	}
	return false
}

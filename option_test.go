package retryable

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrecedence(t *testing.T) {
	provider := Profiles{
		DefaultsProfile: {Tries(2), Sleep(100 * time.Millisecond)},
		"upstream":      {Tries(5)},
	}
	r := New(WithProvider(provider))

	t.Run("builtin defaults", func(t *testing.T) {
		p := New().resolve("", nil)
		assert.Equal(t, DefaultTries, p.maxTries)
		assert.Equal(t, DefaultSleep, p.backoff.Delay(0))
	})

	t.Run("provider defaults override builtins", func(t *testing.T) {
		p := r.resolve("", nil)
		assert.Equal(t, 2, p.maxTries)
		assert.Equal(t, 100*time.Millisecond, p.backoff.Delay(0))
	})

	t.Run("named profile overrides defaults", func(t *testing.T) {
		p := r.resolve("upstream", nil)
		assert.Equal(t, 5, p.maxTries)
		// sleep untouched by the named profile
		assert.Equal(t, 100*time.Millisecond, p.backoff.Delay(0))
	})

	t.Run("literal options win", func(t *testing.T) {
		p := r.resolve("upstream", []Option{Tries(1)})
		assert.Equal(t, 1, p.maxTries)
	})

	t.Run("unknown name is a no-op layer", func(t *testing.T) {
		p := r.resolve("missing", nil)
		assert.Equal(t, 2, p.maxTries)
	})
}

func TestNormalize(t *testing.T) {
	t.Run("negative tries clamp to zero", func(t *testing.T) {
		p := New().resolve("", []Option{Tries(-3)})
		assert.Equal(t, 0, p.maxTries)
	})

	t.Run("message substrings are deduped", func(t *testing.T) {
		p := New().resolve("", []Option{
			Message("timeout", "reset"),
			Message("timeout", "refused"),
		})
		if diff := cmp.Diff([]string{"timeout", "reset", "refused"}, p.substrs); diff != "" {
			t.Errorf("substrings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("OnErrorValue installs the default condition", func(t *testing.T) {
		p := New().resolve("", []Option{OnErrorValue()})
		require.NotNil(t, p.valueCond)
		assert.True(t, p.valueCond("error"))
		assert.False(t, p.valueCond("ok"))
	})

	t.Run("explicit condition wins over the default", func(t *testing.T) {
		cond := func(v any) bool { return v == "bad" }
		p := New().resolve("", []Option{OnErrorValue(), OnValue(cond)})
		require.NotNil(t, p.valueCond)
		assert.True(t, p.valueCond("bad"))
		assert.False(t, p.valueCond("error"))
	})

	t.Run("no condition without either option", func(t *testing.T) {
		p := New().resolve("", nil)
		assert.Nil(t, p.valueCond)
		assert.NotNil(t, p.after)
	})
}

func TestMatchKind(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")

	t.Run("empty set is a wildcard", func(t *testing.T) {
		p := New().resolve("", nil)
		assert.True(t, p.matchKind(errA))
	})

	t.Run("membership by errors.Is", func(t *testing.T) {
		p := New().resolve("", []Option{On(errA)})
		assert.True(t, p.matchKind(errA))
		assert.False(t, p.matchKind(errB))
	})

	t.Run("matchers accumulate", func(t *testing.T) {
		p := New().resolve("", []Option{On(errA), On(errB)})
		assert.True(t, p.matchKind(errA))
		assert.True(t, p.matchKind(errB))
	})

	t.Run("Not inverts a matcher", func(t *testing.T) {
		m := Not(Is(errA))
		assert.False(t, m(errA))
		assert.True(t, m(errB))
	})
}

func TestMatchMessage(t *testing.T) {
	t.Run("empty set is a wildcard", func(t *testing.T) {
		p := New().resolve("", nil)
		assert.True(t, p.matchMessage(errors.New("anything")))
	})

	t.Run("substring containment", func(t *testing.T) {
		p := New().resolve("", []Option{Message("reset")})
		assert.True(t, p.matchMessage(errors.New("connection reset by peer")))
		assert.False(t, p.matchMessage(errors.New("timeout")))
	})

	t.Run("pattern match", func(t *testing.T) {
		p := New().resolve("", []Option{MessagePattern(regexp.MustCompile(`^EOF`))})
		assert.True(t, p.matchMessage(errors.New("EOF while reading")))
		assert.False(t, p.matchMessage(errors.New("got EOF")))
	})

	t.Run("substrings and patterns are alternatives", func(t *testing.T) {
		p := New().resolve("", []Option{
			Message("timeout"),
			MessagePattern(regexp.MustCompile(`5\d\d`)),
		})
		assert.True(t, p.matchMessage(errors.New("dial timeout")))
		assert.True(t, p.matchMessage(errors.New("status 503")))
		assert.False(t, p.matchMessage(errors.New("permission denied")))
	})
}

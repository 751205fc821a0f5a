// Package profiles loads named retry profiles from YAML documents and
// serves them as a retryable.Provider.
//
// A document maps profile names to option sets. The reserved "defaults"
// profile applies to every run; other names are selected with RunProfile:
//
//	defaults:
//	  tries: 3
//	  sleep: 250ms
//	flaky-upstream:
//	  tries: 5
//	  sleep: 2
//	  message: ["timeout", "connection reset"]
//	  patterns: ["^EOF"]
//
// Sleep values are either a bare number of seconds (int or float) or a Go
// duration string. Patterns are compiled at load time; a profile that
// fails to parse fails the whole load, lookup of an unknown name later
// does not.
package profiles

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/retryable-go/retryable"
)

// Profile is the YAML shape of a single stored retry policy.
type Profile struct {
	Tries    *int     `yaml:"tries"`
	Sleep    *Seconds `yaml:"sleep"`
	Message  []string `yaml:"message"`
	Patterns []string `yaml:"patterns"`
}

// Seconds is a duration that decodes from either a bare number of seconds
// or a Go duration string.
type Seconds time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Seconds) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("sleep: expected scalar, got %v", node.Kind)
	}
	if f, err := strconv.ParseFloat(node.Value, 64); err == nil {
		*s = Seconds(time.Duration(f * float64(time.Second)))
		return nil
	}
	d, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("sleep: %q is neither seconds nor a duration", node.Value)
	}
	*s = Seconds(d)
	return nil
}

// Store holds loaded profiles. It implements retryable.Provider.
type Store struct {
	profiles map[string][]retryable.Option
}

// Parse loads profiles from a YAML document.
func Parse(data []byte) (*Store, error) {
	var raw map[string]Profile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("profiles: %w", err)
	}
	s := &Store{profiles: make(map[string][]retryable.Option, len(raw))}
	for name, prof := range raw {
		opts, err := prof.options()
		if err != nil {
			return nil, fmt.Errorf("profiles: profile %q: %w", name, err)
		}
		s.profiles[name] = opts
	}
	return s, nil
}

// Load reads a YAML document from r and parses it.
func Load(r io.Reader) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("profiles: %w", err)
	}
	return Parse(data)
}

// LoadFile parses the YAML document at path.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profiles: %w", err)
	}
	return Parse(data)
}

// Profile implements retryable.Provider. Unknown names return nil.
func (s *Store) Profile(name string) []retryable.Option {
	return s.profiles[name]
}

// Names returns the loaded profile names, for diagnostics.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	return names
}

func (p Profile) options() ([]retryable.Option, error) {
	var opts []retryable.Option
	if p.Tries != nil {
		opts = append(opts, retryable.Tries(*p.Tries))
	}
	if p.Sleep != nil {
		opts = append(opts, retryable.Sleep(time.Duration(*p.Sleep)))
	}
	if len(p.Message) > 0 {
		opts = append(opts, retryable.Message(p.Message...))
	}
	if len(p.Patterns) > 0 {
		compiled := make([]*regexp.Regexp, 0, len(p.Patterns))
		for _, expr := range p.Patterns {
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, err
			}
			compiled = append(compiled, re)
		}
		opts = append(opts, retryable.MessagePattern(compiled...))
	}
	return opts, nil
}

package retryable

// DefaultsProfile is the profile name a Provider is consulted under for
// every run, before any named profile or literal options.
const DefaultsProfile = "defaults"

// Provider supplies stored retry profiles as plain option lists.
//
// Lookup is deliberately permissive: a Provider returns nil for names it
// does not know, and the resolver treats that as an empty profile rather
// than an error, so an unknown name degrades to defaults-only behavior.
type Provider interface {
	Profile(name string) []Option
}

// Profiles is an in-memory Provider. Store run defaults under
// DefaultsProfile and named policies under their own keys.
type Profiles map[string][]Option

// Profile implements Provider.
func (p Profiles) Profile(name string) []Option {
	return p[name]
}

package nfa

// DefaultMaxStates is the state cap used when Config.MaxStates is unset.
const DefaultMaxStates = 4096

// Config configures NFA construction.
type Config struct {
	// MaxStates caps the number of allocated states. Non-positive values
	// select DefaultMaxStates.
	MaxStates int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{MaxStates: DefaultMaxStates}
}

// WithMaxStates returns a new config with the specified state cap
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}

func (c Config) maxStates() int {
	if c.MaxStates <= 0 {
		return DefaultMaxStates
	}
	return c.MaxStates
}

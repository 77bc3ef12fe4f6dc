package coregen

import (
	"github.com/coregx/coregen/dfa"
	"github.com/coregx/coregen/nfa"
	"github.com/coregx/coregen/product"
	"github.com/coregx/coregen/witness"
)

// Config gathers the caps of every stage. Each cap is scoped to a single
// call; nothing is shared between calls.
//
// Example:
//
//	config := coregen.DefaultConfig().WithMaxProductStates(512)
//	re, err := coregen.CompileWithConfig(`^[a-z]{2,8}$`, config)
type Config struct {
	// MaxNFAStates caps Thompson construction.
	// Default: 4096
	MaxNFAStates int

	// MaxDFAStates caps subset construction.
	// Default: 4096
	MaxDFAStates int

	// MaxProductStates caps product construction.
	// Default: 4096
	MaxProductStates int

	// MaxLength is the longest witness, in UTF-16 code units.
	// Default: 64
	MaxLength int

	// MaxCandidates caps the edges a witness search may enqueue.
	// Default: 10000
	MaxCandidates int
}

// DefaultConfig returns a configuration with the documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxNFAStates:     nfa.DefaultMaxStates,
		MaxDFAStates:     dfa.DefaultMaxStates,
		MaxProductStates: product.DefaultMaxStates,
		MaxLength:        witness.DefaultMaxLength,
		MaxCandidates:    witness.DefaultMaxCandidates,
	}
}

// WithMaxNFAStates returns a new config with the specified NFA cap
func (c Config) WithMaxNFAStates(n int) Config {
	c.MaxNFAStates = n
	return c
}

// WithMaxDFAStates returns a new config with the specified DFA cap
func (c Config) WithMaxDFAStates(n int) Config {
	c.MaxDFAStates = n
	return c
}

// WithMaxProductStates returns a new config with the specified product cap
func (c Config) WithMaxProductStates(n int) Config {
	c.MaxProductStates = n
	return c
}

// WithMaxLength returns a new config with the specified witness length bound
func (c Config) WithMaxLength(n int) Config {
	c.MaxLength = n
	return c
}

// WithMaxCandidates returns a new config with the specified candidate budget
func (c Config) WithMaxCandidates(n int) Config {
	c.MaxCandidates = n
	return c
}

// Validate checks that every cap is positive.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"MaxNFAStates", c.MaxNFAStates},
		{"MaxDFAStates", c.MaxDFAStates},
		{"MaxProductStates", c.MaxProductStates},
		{"MaxLength", c.MaxLength},
		{"MaxCandidates", c.MaxCandidates},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return &ConfigError{Field: f.name, Message: "must be positive"}
		}
	}
	return nil
}

func (c Config) nfaConfig() nfa.Config {
	return nfa.Config{MaxStates: c.MaxNFAStates}
}

func (c Config) dfaConfig() dfa.Config {
	return dfa.Config{MaxStates: c.MaxDFAStates}
}

func (c Config) productConfig() product.Config {
	return product.Config{MaxStates: c.MaxProductStates}
}

func (c Config) witnessConfig() witness.Config {
	return witness.Config{MaxLength: c.MaxLength, MaxCandidates: c.MaxCandidates}
}

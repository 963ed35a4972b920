package gen

import "runtime"

// DefaultModuleSuffix is appended to a file's module stem to form the
// generated-code module reference, e.g. "library" -> "library_pb".
const DefaultModuleSuffix = "_pb"

// Option configures graph building.
type Option func(*Config) error

// Config holds the global configuration for one generation pass.
type Config struct {
	// Workers is the number of parallel workers used to wrap the
	// per-file entities. Defaults to GOMAXPROCS.
	Workers int
	// ModuleSuffix is appended to module stems when deriving
	// generated-code module references.
	ModuleSuffix string
}

// NewConfig creates a Config with defaults and applies the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Workers:      runtime.GOMAXPROCS(0),
		ModuleSuffix: DefaultModuleSuffix,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithModuleSuffix sets the suffix of generated-code module references.
func WithModuleSuffix(suffix string) Option {
	return func(c *Config) error {
		if suffix == "" {
			return NewConfigError("ModuleSuffix", nil, "suffix cannot be empty")
		}
		c.ModuleSuffix = suffix
		return nil
	}
}

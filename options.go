package stepflow

// Option configures a Config.
type Option func(*Config)

// NewConfig returns DefaultConfig with the given options applied.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithRecoverPanics controls whether step panics are converted into
// recorded failures.
func WithRecoverPanics(enabled bool) Option {
	return func(c *Config) {
		c.RecoverPanics = enabled
	}
}

// WithLogTransitions controls debug logging of lifecycle transitions.
func WithLogTransitions(enabled bool) Option {
	return func(c *Config) {
		c.LogTransitions = enabled
	}
}

package stepflow

// Config holds execution settings shared by every workflow definition
// built from it.
type Config struct {
	// RecoverPanics converts a panicking step into a recorded failure
	// instead of letting the panic escape Call.
	RecoverPanics bool

	// LogTransitions logs every lifecycle transition at debug level.
	LogTransitions bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RecoverPanics:  true,
		LogTransitions: true,
	}
}

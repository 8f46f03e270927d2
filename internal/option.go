package internal

// Option configures the application before Run starts its subsystems.
type Option func(*application)

type application struct {
	config *Config
}

// WithConfig supplies the validated configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

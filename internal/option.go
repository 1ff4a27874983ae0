package internal

// Option is a functional option for configuring the serve-mode application.
type Option func(*application)

// application carries the resolved serve-mode wiring inputs. Analysis
// machinery itself is constructed inside Run.
type application struct {
	config *Config
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

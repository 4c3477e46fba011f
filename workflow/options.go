package workflow

import (
	"log/slog"

	"github.com/xraph/stepflow"
	"github.com/xraph/stepflow/middleware"
)

// settings holds the execution collaborators of a definition.
type settings struct {
	config     stepflow.Config
	logger     *slog.Logger
	classifier Classifier
	emitter    RunEmitter
	middleware []middleware.Middleware
}

func defaultSettings() settings {
	return settings{
		config:  stepflow.DefaultConfig(),
		logger:  slog.Default(),
		emitter: noopEmitter{},
	}
}

// Option configures a Definition.
type Option func(*settings)

// WithConfig sets the execution config.
func WithConfig(cfg stepflow.Config) Option {
	return func(s *settings) { s.config = cfg }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClassifier sets the classifier used by the rescue boundary. Errors it
// does not recognise fall back to Generic.
func WithClassifier(c Classifier) Option {
	return func(s *settings) { s.classifier = c }
}

// WithEmitter sets the lifecycle event receiver.
func WithEmitter(e RunEmitter) Option {
	return func(s *settings) {
		if e != nil {
			s.emitter = e
		}
	}
}

// WithMiddleware appends step middleware. The first middleware is the
// outermost wrapper.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(s *settings) { s.middleware = append(s.middleware, mws...) }
}

package engine

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/stepflow"
	"github.com/xraph/stepflow/ext"
	mw "github.com/xraph/stepflow/middleware"
	"github.com/xraph/stepflow/observability"
	"github.com/xraph/stepflow/workflow"
)

const instrumentationName = "github.com/xraph/stepflow"

// Engine holds the shared collaborators of a set of workflow definitions.
// Use New to create one.
type Engine struct {
	config      stepflow.Config
	logger      *slog.Logger
	extensions  *ext.Registry
	workflows   *workflow.Registry
	mws         []mw.Middleware
	classifiers workflow.Classifiers
	chain       []mw.Middleware
	metrics     *observability.MetricsExtension

	// OpenTelemetry providers (optional; nil means use global).
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider

	pending []ext.Extension
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the execution config passed to every definition.
func WithConfig(cfg stepflow.Config) Option {
	return func(eng *Engine) {
		eng.config = cfg
	}
}

// WithLogger sets the logger shared by the engine, its extensions and its
// definitions.
func WithLogger(l *slog.Logger) Option {
	return func(eng *Engine) {
		if l != nil {
			eng.logger = l
		}
	}
}

// WithExtension registers an extension with the engine.
func WithExtension(e ext.Extension) Option {
	return func(eng *Engine) {
		eng.pending = append(eng.pending, e)
	}
}

// WithMiddleware adds middleware after the default stack.
func WithMiddleware(m mw.Middleware) Option {
	return func(eng *Engine) {
		eng.mws = append(eng.mws, m)
	}
}

// WithClassifier adds error classifiers. They are tried in the order given,
// before the generic fallback.
func WithClassifier(cs ...workflow.Classifier) Option {
	return func(eng *Engine) {
		eng.classifiers = append(eng.classifiers, cs...)
	}
}

// WithTracerProvider sets a custom OTel TracerProvider for the tracing
// middleware. If not set, the global otel.GetTracerProvider() is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(eng *Engine) {
		eng.tracerProvider = tp
	}
}

// WithMeterProvider sets a custom OTel MeterProvider. Both the metrics
// middleware and the observability extension use it instead of the global
// one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(eng *Engine) {
		eng.meterProvider = mp
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		config:    stepflow.DefaultConfig(),
		logger:    slog.Default(),
		workflows: workflow.NewRegistry(),
	}
	for _, opt := range opts {
		opt(eng)
	}

	eng.extensions = ext.NewRegistry(eng.logger)

	// Build tracing middleware (custom provider or global).
	var tracingMw mw.Middleware
	if eng.tracerProvider != nil {
		tracingMw = mw.TracingWithTracer(eng.tracerProvider.Tracer(instrumentationName))
	} else {
		tracingMw = mw.Tracing()
	}

	// Build metrics middleware and the observability extension.
	var metricsMw mw.Middleware
	if eng.meterProvider != nil {
		metricsMw = mw.MetricsWithMeter(eng.meterProvider.Meter(instrumentationName))
		eng.metrics = observability.NewMetricsExtensionWithMeter(eng.meterProvider.Meter(instrumentationName + "/observability"))
	} else {
		metricsMw = mw.Metrics()
		eng.metrics = observability.NewMetricsExtension()
	}
	eng.extensions.Register(eng.metrics)
	for _, e := range eng.pending {
		eng.extensions.Register(e)
	}
	eng.pending = nil

	// Default stack: tracing → metrics → logging → user middleware.
	// workflow.Define adds recover innermost when the config asks for it.
	eng.chain = make([]mw.Middleware, 0, 3+len(eng.mws))
	eng.chain = append(eng.chain, tracingMw, metricsMw, mw.Logging(eng.logger))
	eng.chain = append(eng.chain, eng.mws...)

	return eng
}

// Options returns the workflow options that attach a definition to this
// engine's collaborators.
func (eng *Engine) Options() []workflow.Option {
	opts := []workflow.Option{
		workflow.WithConfig(eng.config),
		workflow.WithLogger(eng.logger),
		workflow.WithEmitter(eng.extensions),
		workflow.WithMiddleware(eng.chain...),
	}
	if len(eng.classifiers) > 0 {
		opts = append(opts, workflow.WithClassifier(eng.classifiers))
	}
	return opts
}

// Define creates a definition wired to eng and adds it to the engine's
// workflow catalog. It fails with stepflow.ErrDuplicateWorkflow when name
// is already defined.
func Define[T workflow.Subject](eng *Engine, name string, opts ...workflow.Option) (*workflow.Definition[T], error) {
	all := append(eng.Options(), opts...)
	def := workflow.Define[T](name, all...)
	if err := eng.workflows.Register(def); err != nil {
		return nil, err
	}
	eng.logger.Debug("workflow defined", slog.String("workflow", name))
	return def, nil
}

// Shutdown notifies every extension implementing ext.Shutdown.
func (eng *Engine) Shutdown(ctx context.Context) {
	eng.logger.Info("stepflow engine shutting down",
		slog.Int("workflows", len(eng.workflows.Names())),
	)
	eng.extensions.EmitShutdown(ctx)
}

// Config returns the execution config.
func (eng *Engine) Config() stepflow.Config { return eng.config }

// Logger returns the engine's logger.
func (eng *Engine) Logger() *slog.Logger { return eng.logger }

// Extensions returns the extension registry.
func (eng *Engine) Extensions() *ext.Registry { return eng.extensions }

// Workflows returns the workflow catalog.
func (eng *Engine) Workflows() *workflow.Registry { return eng.workflows }

// Metrics returns the built-in observability extension.
func (eng *Engine) Metrics() *observability.MetricsExtension { return eng.metrics }

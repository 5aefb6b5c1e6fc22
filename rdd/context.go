package rdd

import (
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/rddkit/errors"
	"github.com/kbukum/rddkit/logger"
	"github.com/kbukum/rddkit/observability"
)

// Context is the execution context every collection belongs to. It is
// created once per program and passed explicitly to constructors.
// A Context is safe for concurrent use.
type Context struct {
	id          string
	cfg         Config
	parallelism int

	log     *logger.Logger
	metrics *observability.StageMetrics
	tracer  trace.Tracer

	stopped atomic.Bool
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger stages report to. Defaults to a no-op logger.
func WithLogger(l *logger.Logger) Option {
	return func(sc *Context) {
		if l != nil {
			sc.log = l
		}
	}
}

// WithMetrics records stage metrics on m.
func WithMetrics(m *observability.StageMetrics) Option {
	return func(sc *Context) { sc.metrics = m }
}

// WithTracer opens one span per stage on t. Defaults to a no-op tracer.
func WithTracer(t trace.Tracer) Option {
	return func(sc *Context) {
		if t != nil {
			sc.tracer = t
		}
	}
}

// NewContext validates cfg and returns a running Context.
func NewContext(cfg Config, opts ...Option) (*Context, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.InvalidConfig("engine", err)
	}

	sc := &Context{
		id:          uuid.NewString(),
		cfg:         cfg,
		parallelism: cfg.parallelism(),
		log:         logger.Nop(),
		tracer:      noop.NewTracerProvider().Tracer(observability.InstrumentationName),
	}
	for _, opt := range opts {
		opt(sc)
	}
	sc.log = sc.log.WithComponent("rdd").WithFields(logger.Fields(
		logger.FieldContextID, sc.id,
		logger.FieldAppName, cfg.AppName,
	))

	sc.log.Info("context started", logger.Fields(
		"master", cfg.Master,
		"default_parallelism", sc.parallelism,
	))
	return sc, nil
}

// ID returns the unique id of the context.
func (sc *Context) ID() string { return sc.id }

// AppName returns the configured application name.
func (sc *Context) AppName() string { return sc.cfg.AppName }

// Master returns the configured master.
func (sc *Context) Master() string { return sc.cfg.Master }

// DefaultParallelism is the partition count used when a constructor is
// given zero.
func (sc *Context) DefaultParallelism() int { return sc.parallelism }

// Stop shuts the context down. Later constructors and stages fail with
// CONTEXT_STOPPED; collections already built stay readable. Stop is
// idempotent.
func (sc *Context) Stop() {
	if sc.stopped.CompareAndSwap(false, true) {
		sc.log.Info("context stopped")
	}
}

// Stopped reports whether Stop has been called.
func (sc *Context) Stopped() bool { return sc.stopped.Load() }

func (sc *Context) checkRunning() error {
	if sc.Stopped() {
		return errors.ContextStopped(sc.id)
	}
	return nil
}

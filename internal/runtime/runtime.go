package runtime

import (
	"context"
	"errors"

	cfgpkg "github.com/chenxiaowo/ktrace/internal/config"
	"github.com/chenxiaowo/ktrace/internal/trace"
	logpkg "github.com/chenxiaowo/ktrace/pkg/log"
)

// ErrNotInitialized reports a runtime whose tracer was never constructed.
var ErrNotInitialized = errors.New("tracer not initialized")

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Logger logpkg.Logger
	// Optional collaborator overrides, mainly for tests.
	Clock   trace.Clock
	Threads trace.Threads
	Alloc   trace.AllocFunc
}

// Runtime owns the process-wide tracer. Create exactly one per process.
type Runtime struct {
	tracer *trace.Tracer
	config cfgpkg.Config
	logger logpkg.Logger
}

// Open initializes the tracer from configuration. A zero configured buffer
// size leaves the subsystem inert; an allocation failure is logged and also
// leaves it inert rather than failing the process.
func Open(opts Options) (*Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	logger = logger.WithComponent("ktrace")

	tracer, err := trace.New(trace.Options{
		BufferSize: opts.Config.BufferSizeMB << 20,
		Groups:     trace.Group(opts.Config.GroupMask),
		Clock:      opts.Clock,
		Threads:    opts.Threads,
		Alloc:      opts.Alloc,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("ktrace: cannot initialize buffer", logpkg.Err(err))
		tracer, err = trace.New(trace.Options{Logger: logger})
		if err != nil {
			return nil, err
		}
	}
	return &Runtime{tracer: tracer, config: opts.Config, logger: logger}, nil
}

// Tracer returns the process-wide tracer handle.
func (r *Runtime) Tracer() *trace.Tracer { return r.tracer }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// CheckHealth performs a simple health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.tracer == nil {
		return ErrNotInitialized
	}
	return nil
}

// Close releases the runtime. The trace buffer itself lives for the process
// lifetime; there is nothing to tear down beyond dropping references.
func (r *Runtime) Close() error { return nil }

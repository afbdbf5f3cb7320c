package serverrun

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/oklog/run"

	cfgpkg "github.com/chenxiaowo/ktrace/internal/config"
	"github.com/chenxiaowo/ktrace/internal/runtime"
	httpserver "github.com/chenxiaowo/ktrace/internal/server/http"
	tracesvc "github.com/chenxiaowo/ktrace/internal/services/tracing"
	logpkg "github.com/chenxiaowo/ktrace/pkg/log"
)

// Options configure a server run.
type Options struct {
	HTTPAddr string
	Config   cfgpkg.Config
}

// Run starts the runtime and HTTP server and blocks until ctx is cancelled
// or a termination signal arrives.
func Run(ctx context.Context, opts Options) error {
	// Layer a local signal context over the provided one so callers that
	// pass a plain context still get signal-driven shutdown.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.HTTPAddr == "" {
		opts.HTTPAddr = opts.Config.HTTPAddr
	}

	procLogger, err := logpkg.ApplyConfig(&logpkg.Config{
		Level:  opts.Config.LogLevel,
		Format: opts.Config.LogFormat,
	})
	if err != nil {
		return err
	}
	logpkg.RedirectStdLog(procLogger)

	rt, err := runtime.Open(runtime.Options{Config: opts.Config, Logger: procLogger})
	if err != nil {
		return err
	}
	defer rt.Close()

	procLogger.Info("starting ktrace server",
		logpkg.Str("http", opts.HTTPAddr),
		logpkg.Int("bufsizeMB", opts.Config.BufferSizeMB),
		logpkg.Str("level", opts.Config.LogLevel),
		logpkg.Str("format", opts.Config.LogFormat),
	)

	svc := tracesvc.NewWithLogger(rt, procLogger.With(logpkg.Component("tracing")))
	hsrv := httpserver.NewWithService(rt, svc, procLogger.With(logpkg.Component("http")))

	var g run.Group
	g.Add(func() error {
		return hsrv.ListenAndServe(sctx, opts.HTTPAddr)
	}, func(error) {
		hsrv.Close()
	})
	g.Add(func() error {
		<-sctx.Done()
		return sctx.Err()
	}, func(error) {
		stop()
	})

	err = g.Run()
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

package runtime

import (
	"context"
	"errors"
	"testing"

	cfgpkg "github.com/chenxiaowo/ktrace/internal/config"
	"github.com/chenxiaowo/ktrace/internal/trace"
	logpkg "github.com/chenxiaowo/ktrace/pkg/log"
)

func quietLogger() logpkg.Logger {
	return logpkg.NewLogger(logpkg.WithLevel(logpkg.FatalLevel))
}

func TestOpenLive(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.BufferSizeMB = 1
	rt, err := Open(Options{Config: cfg, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()
	if !rt.Tracer().Enabled() {
		t.Fatal("tracer should be enabled")
	}
	if rt.Tracer().State() != trace.StateLive {
		t.Fatalf("state = %v, want live", rt.Tracer().State())
	}
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestOpenZeroSizeStaysDisabled(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.BufferSizeMB = 0
	rt, err := Open(Options{Config: cfg, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if rt.Tracer().Enabled() {
		t.Fatal("tracer should stay disabled with zero size")
	}
	if got := rt.Tracer().Size(); got != 0 {
		t.Fatalf("size = %d, want 0", got)
	}
}

func TestOpenAllocFailureIsAbsorbed(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.BufferSizeMB = 1
	rt, err := Open(Options{
		Config: cfg,
		Logger: quietLogger(),
		Alloc:  func(int) ([]byte, error) { return nil, errors.New("no memory") },
	})
	if err != nil {
		t.Fatalf("open should absorb alloc failure, got %v", err)
	}
	if rt.Tracer().Enabled() {
		t.Fatal("tracer should be inert after alloc failure")
	}
}

package tracesvc

import (
	"bytes"
	"context"
	"errors"
	"testing"

	cfgpkg "github.com/chenxiaowo/ktrace/internal/config"
	"github.com/chenxiaowo/ktrace/internal/runtime"
	"github.com/chenxiaowo/ktrace/internal/trace"
	logpkg "github.com/chenxiaowo/ktrace/pkg/log"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := cfgpkg.Default()
	cfg.BufferSizeMB = 1
	rt, err := runtime.Open(runtime.Options{
		Config:  cfg,
		Logger:  logpkg.NewLogger(logpkg.WithLevel(logpkg.FatalLevel)),
		Threads: trace.StaticThreads{ID: 1},
	})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	return NewWithLogger(rt, logpkg.NewLogger(logpkg.WithLevel(logpkg.FatalLevel)))
}

func TestParseAction(t *testing.T) {
	for _, name := range []string{"start", "stop", "rewind"} {
		if _, err := ParseAction(name); err != nil {
			t.Fatalf("ParseAction(%q): %v", name, err)
		}
	}
	if _, err := ParseAction("reset"); !errors.Is(err, trace.ErrInvalidArgs) {
		t.Fatalf("want ErrInvalidArgs, got %v", err)
	}
}

func TestParseGroups(t *testing.T) {
	g, err := ParseGroups([]string{"sched", "ipc"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if g != trace.GrpSched|trace.GrpIPC {
		t.Fatalf("groups = %#x", g)
	}
	if g, err := ParseGroups(nil); err != nil || g != 0 {
		t.Fatalf("empty selection = (%#x, %v), want (0, nil)", g, err)
	}
	if _, err := ParseGroups([]string{"bogus"}); !errors.Is(err, trace.ErrInvalidArgs) {
		t.Fatalf("want ErrInvalidArgs, got %v", err)
	}
}

func TestControlStopThenRead(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Control(ctx, "stop", nil); err != nil {
		t.Fatalf("stop: %v", err)
	}
	st := svc.Status(ctx)
	if st.State != trace.StateStopped {
		t.Fatalf("state = %v, want stopped", st.State)
	}
	size := svc.Size(ctx)
	if size == 0 {
		t.Fatal("size query should cover the metadata prefix")
	}
	var buf bytes.Buffer
	n, err := svc.Read(ctx, &buf, 0, size)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if uint32(n) != size {
		t.Fatalf("read %d bytes, want %d", n, size)
	}
	if _, ok := trace.DecodeMetadata(buf.Bytes()); !ok {
		t.Fatal("read-back bytes should carry the metadata prefix")
	}
}

func TestControlRejectsUnknownAction(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Control(context.Background(), "explode", nil); !errors.Is(err, trace.ErrInvalidArgs) {
		t.Fatalf("want ErrInvalidArgs, got %v", err)
	}
}

func TestControlStartRestoresTracing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if err := svc.Control(ctx, "stop", nil); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := svc.Control(ctx, "start", []string{"probe"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	st := svc.Status(ctx)
	if st.State != trace.StateLive {
		t.Fatalf("state = %v, want live", st.State)
	}
	if st.GroupMask != trace.GrpProbe.Mask() {
		t.Fatalf("mask = %#x, want %#x", st.GroupMask, trace.GrpProbe.Mask())
	}
}

package tracesvc

import (
	"context"
	"fmt"
	"io"

	"github.com/chenxiaowo/ktrace/internal/runtime"
	"github.com/chenxiaowo/ktrace/internal/trace"
	logpkg "github.com/chenxiaowo/ktrace/pkg/log"
)

// Service provides control and readout operations on the process tracer.
type Service struct {
	rt     *runtime.Runtime
	logger logpkg.Logger
}

// New returns a Service using a default logger.
func New(rt *runtime.Runtime) *Service {
	return NewWithLogger(rt, nil)
}

// NewWithLogger constructs the service with an injected logger.
func NewWithLogger(rt *runtime.Runtime, logger logpkg.Logger) *Service {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("tracing"))
	}
	return &Service{rt: rt, logger: logger}
}

// ParseAction maps a wire action name to a trace action.
func ParseAction(s string) (trace.Action, error) {
	switch s {
	case "start":
		return trace.ActionStart, nil
	case "stop":
		return trace.ActionStop, nil
	case "rewind":
		return trace.ActionRewind, nil
	default:
		return 0, fmt.Errorf("%w: unknown action %q", trace.ErrInvalidArgs, s)
	}
}

// ParseGroups resolves group names to a group selection. An empty list means
// "all groups" (selection zero).
func ParseGroups(names []string) (trace.Group, error) {
	var groups trace.Group
	for _, name := range names {
		g, ok := trace.GroupByName(name)
		if !ok {
			return 0, fmt.Errorf("%w: unknown group %q", trace.ErrInvalidArgs, name)
		}
		groups |= g
	}
	return groups, nil
}

// Control applies a session action by wire name.
func (s *Service) Control(ctx context.Context, action string, groupNames []string) error {
	act, err := ParseAction(action)
	if err != nil {
		return err
	}
	groups, err := ParseGroups(groupNames)
	if err != nil {
		return err
	}
	if err := s.rt.Tracer().Control(act, groups); err != nil {
		return err
	}
	s.logger.Info("trace control",
		logpkg.Str("action", act.String()),
		logpkg.Str("groups", groups.String()),
		logpkg.Str("state", s.rt.Tracer().State().String()),
	)
	return nil
}

// Size returns the current valid trace length in bytes (the size query).
func (s *Service) Size(ctx context.Context) uint32 {
	return s.rt.Tracer().Size()
}

// Read copies the clipped byte range [off, off+length) of the valid trace
// region to w and returns the number of bytes copied.
func (s *Service) Read(ctx context.Context, w io.Writer, off, length uint32) (int, error) {
	return s.rt.Tracer().ReadInto(w, off, length)
}

// Status reports a point-in-time session snapshot.
func (s *Service) Status(ctx context.Context) trace.Snapshot {
	return s.rt.Tracer().Snapshot()
}

// Package tracesvc implements the trace control/readout facade consumed by
// the HTTP transport and the CLI. It maps wire-level actions and group names
// onto the tracer, adds logging, and keeps transports free of trace
// internals.
//
// Example:
//
//	svc := tracesvc.New(rt)
//	_ = svc.Control(ctx, "start", []string{"sched", "ipc"})
//	n := svc.Size(ctx)
//	_, _ = svc.Read(ctx, w, 0, n)
package tracesvc

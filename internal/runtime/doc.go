// Package runtime wires configuration, the trace buffer, and its
// collaborators into a single-process ktrace instance. It exposes Open/Close,
// a basic health check, and the tracer handle used by services.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{Config: cfg, Logger: logger})
//	defer rt.Close()
//	rt.Tracer().Event32(tag, a, b, 0, 0)
package runtime

// Package httpserver exposes the ktrace control and readout API over HTTP.
//
// Endpoints (all under /v1 except metrics):
//
//	GET  /v1/healthz              liveness
//	GET  /v1/trace/size           size query for the valid trace region
//	GET  /v1/trace/read           binary readout (offset/length query params)
//	POST /v1/trace/control        {"action": "start|stop|rewind", "groups": [...]}
//	GET  /v1/trace/status         session snapshot
//	GET  /metrics                 Prometheus metrics
package httpserver

package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chenxiaowo/ktrace/internal/runtime"
	tracesvc "github.com/chenxiaowo/ktrace/internal/services/tracing"
	"github.com/chenxiaowo/ktrace/internal/trace"
	logpkg "github.com/chenxiaowo/ktrace/pkg/log"
)

// Probe tags emitted by the API itself, so control/readout activity shows up
// in the trace it operates on.
var (
	tagControlProbe = trace.NewTag(0x110, trace.GrpProbe, 0)
	tagReadProbe    = trace.NewTag(0x111, trace.GrpProbe, 0)
)

// TraceController handles the trace control and readout endpoints.
type TraceController struct {
	rt      *runtime.Runtime
	svc     *tracesvc.Service
	metrics *MetricsController
	logger  logpkg.Logger
}

// NewTraceController creates a new trace controller.
func NewTraceController(rt *runtime.Runtime, svc *tracesvc.Service, metrics *MetricsController, logger logpkg.Logger) *TraceController {
	return &TraceController{rt: rt, svc: svc, metrics: metrics, logger: logger}
}

// RegisterRoutes registers trace routes with the given mux.
func (c *TraceController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/trace/size", c.handleSize)
	mux.HandleFunc("/v1/trace/read", c.handleRead)
	mux.HandleFunc("/v1/trace/control", c.handleControl)
	mux.HandleFunc("/v1/trace/status", c.handleStatus)
}

// handleSize answers the size query: the current valid trace length.
func (c *TraceController) handleSize(w http.ResponseWriter, r *http.Request) {
	c.metrics.observe("size")
	writeJSON(w, sizeResponse{Size: c.svc.Size(r.Context())})
}

// handleRead streams the clipped byte range as application/octet-stream. An
// offset at or past the valid size yields an empty 200, not an error.
func (c *TraceController) handleRead(w http.ResponseWriter, r *http.Request) {
	c.metrics.observe("read")
	offset, err := parseUint32(r.URL.Query().Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}
	length, err := parseUint32(r.URL.Query().Get("length"), c.svc.Size(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid length")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	n, err := c.svc.Read(r.Context(), w, offset, length)
	if err != nil {
		// headers are gone already; all we can do is log
		c.logger.Warn("trace read failed mid-copy", logpkg.Err(err), logpkg.Int("copied", n))
		return
	}
	t := c.rt.Tracer()
	t.Event32(tagReadProbe, offset, length, uint32(n), 0)
}

// handleControl applies a session control action.
func (c *TraceController) handleControl(w http.ResponseWriter, r *http.Request) {
	c.metrics.observe("control")
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := c.svc.Control(r.Context(), req.Action, req.Groups); err != nil {
		if errors.Is(err, trace.ErrInvalidArgs) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "control failed")
		return
	}
	act, _ := tracesvc.ParseAction(req.Action)
	c.rt.Tracer().Event32(tagControlProbe, uint32(act), 0, 0, 0)
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleStatus reports a point-in-time session snapshot.
func (c *TraceController) handleStatus(w http.ResponseWriter, r *http.Request) {
	c.metrics.observe("status")
	writeJSON(w, statusFromSnapshot(c.svc.Status(r.Context())))
}

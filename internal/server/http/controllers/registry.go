package controllers

import (
	"net/http"

	"github.com/chenxiaowo/ktrace/internal/runtime"
	tracesvc "github.com/chenxiaowo/ktrace/internal/services/tracing"
	logpkg "github.com/chenxiaowo/ktrace/pkg/log"
)

// ControllerRegistry manages all HTTP controllers.
type ControllerRegistry struct {
	general *GeneralController
	trace   *TraceController
	metrics *MetricsController
}

// NewControllerRegistry initializes all controllers with the provided
// runtime and service.
func NewControllerRegistry(rt *runtime.Runtime, svc *tracesvc.Service, logger logpkg.Logger) *ControllerRegistry {
	metrics := NewMetricsController(rt)
	return &ControllerRegistry{
		general: NewGeneralController(rt),
		trace:   NewTraceController(rt, svc, metrics, logger),
		metrics: metrics,
	}
}

// RegisterAllRoutes registers every controller's routes with the given mux.
func (r *ControllerRegistry) RegisterAllRoutes(mux *http.ServeMux) {
	r.general.RegisterRoutes(mux)
	r.trace.RegisterRoutes(mux)
	r.metrics.RegisterRoutes(mux)
}

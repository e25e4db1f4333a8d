package bridge

import (
	"SquareBridge/internal/controller/rest"
	"SquareBridge/pkg/health"
	"SquareBridge/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	livePath    = "/health/live"
	readyPath   = "/health/ready"
	metricsPath = "/metrics"
)

type Router struct {
	api            *rest.Router
	healthRegistry *health.Registry
}

func (r *Router) SetUp(engine *gin.Engine) {
	probes := health.NewHandler(r.healthRegistry, health.DefaultTimeout)
	engine.GET(livePath, probes.Live)
	engine.GET(readyPath, probes.Ready)

	engine.GET(metricsPath, gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	r.api.SetUp(engine)
}

func NewRouter(api *rest.Router, healthRegistry *health.Registry) *Router {
	return &Router{
		api:            api,
		healthRegistry: healthRegistry,
	}
}

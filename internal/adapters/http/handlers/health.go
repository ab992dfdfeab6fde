// Package handlers holds the gin handlers of the dedication wall.
package handlers

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/dedication-wall/internal/adapters/http/dto"
	"github.com/jsamuelsen/dedication-wall/internal/ports"
)

// BuildInfo is injected at build time with ldflags.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// NewBuildInfo fills GoVersion from the running binary.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// HealthHandler serves the probe routes under /-/ and GET /api/health.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
	storage   string
}

// NewHealthHandler creates the handler. storage is the configured backend
// name reported by GET /api/health.
func NewHealthHandler(registry ports.HealthRegistry, buildInfo BuildInfo, storage string) *HealthHandler {
	return &HealthHandler{registry: registry, buildInfo: buildInfo, storage: storage}
}

type livenessResponse struct {
	Status string `json:"status"`
}

// Liveness answers 200 while the process runs. It checks nothing else.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{Status: "ok"})
}

type readinessResponse struct {
	Status string                        `json:"status"`
	Checks map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Readiness runs every registered check; any failure answers 503.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	status := http.StatusOK
	if result.Status == ports.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, readinessResponse{Status: string(result.Status), Checks: result.Checks})
}

// BuildInfoHandler serves GET /-/build.
func (h *HealthHandler) BuildInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}

// APIHealth serves GET /api/health, the status line browser clients poll.
func (h *HealthHandler) APIHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Storage: h.storage})
}

// MetricsHandler exposes the Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RegisterHealthRoutes registers live, ready, build and metrics on rg.
func (h *HealthHandler) RegisterHealthRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Liveness)
	rg.GET("/ready", h.Readiness)
	rg.GET("/build", h.BuildInfoHandler)
	rg.GET("/metrics", gin.WrapH(MetricsHandler()))
}

// RegisterHealthRoutesOnEngine registers the probe routes under /-/.
func (h *HealthHandler) RegisterHealthRoutesOnEngine(engine *gin.Engine) {
	h.RegisterHealthRoutes(engine.Group("/-"))
}

// Package api exposes the scoring pipeline over HTTP for dashboards and
// automation that prefer a service endpoint to shelling out.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/repopulse/repopulse/core"
	"github.com/repopulse/repopulse/internal/analyzer"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/internal/render"
)

// Handler handles API requests.
type Handler struct {
	cfg     *contract.Config
	store   contract.HistoryStore
	tool    string
	version string
}

// NewHandler creates a new API handler. The store may be nil when history
// tracking is disabled.
func NewHandler(cfg *contract.Config, store contract.HistoryStore, tool, version string) *Handler {
	return &Handler{
		cfg:     cfg,
		store:   store,
		tool:    tool,
		version: version,
	}
}

// HealthCheck returns the health status of the API.
// GET /healthz
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}

// GetScore runs a full scoring pass and returns the report.
// GET /api/v1/score?path=...&fail_under=...
func (h *Handler) GetScore(c *gin.Context) {
	cfg := h.requestConfig(c)

	root, err := contract.ResolveProjectRoot(c.DefaultQuery("path", cfg.ProjectRoot))
	if err != nil {
		respondBadRequest(c, "INVALID_PATH", err.Error())
		return
	}
	cfg.ProjectRoot = root

	report, err := core.ExecuteHealthScore(c.Request.Context(), cfg, &core.RunOptions{
		Analyzers:    analyzer.DefaultAnalyzers(cfg),
		Store:        h.store,
		ProjectTypes: analyzer.DetectProjectTypes(root),
		ToolName:     h.tool,
		ToolVersion:  h.version,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	passed := true
	if cfg.FailUnder > 0 {
		passed = core.EvaluatePolicy(report, cfg.FailUnder) == nil
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   report,
		"passed": passed,
	})
}

// GetMetricDefinitions returns the scored metric catalog with effective
// weights.
// GET /api/v1/metrics
func (h *Handler) GetMetricDefinitions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": render.BuildMetricDefinitions(h.cfg.Health),
	})
}

// GetHistory returns recent scoring runs, newest first.
// GET /api/v1/history?limit=...
func (h *Handler) GetHistory(c *gin.Context) {
	if h.store == nil {
		respondBadRequest(c, "HISTORY_DISABLED", "score history tracking is not enabled")
		return
	}

	runs, err := h.store.RecentRuns(parseIntQuery(c, "limit", 20))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": runs,
	})
}

// GetHistoryStatus returns store-level counters.
// GET /api/v1/history/status
func (h *Handler) GetHistoryStatus(c *gin.Context) {
	if h.store == nil {
		respondBadRequest(c, "HISTORY_DISABLED", "score history tracking is not enabled")
		return
	}

	status, err := h.store.GetStatus()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": status,
	})
}

// GetRunMetrics returns the stored metric rows of one run.
// GET /api/v1/history/:id/metrics
func (h *Handler) GetRunMetrics(c *gin.Context) {
	if h.store == nil {
		respondBadRequest(c, "HISTORY_DISABLED", "score history tracking is not enabled")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "INVALID_RUN_ID", "run id must be a positive integer")
		return
	}

	metrics, err := h.store.MetricsForRun(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": metrics,
	})
}

// requestConfig copies the base config so per-request query overrides never
// leak between requests.
func (h *Handler) requestConfig(c *gin.Context) *contract.Config {
	cfg := h.cfg.Clone()

	if v := c.Query("fail_under"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 100 {
			cfg.FailUnder = n
		}
	}
	return cfg
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// respondBadRequest sends a 400 with a stable error code.
func respondBadRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondError sends an error response.
func respondError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    "INTERNAL_ERROR",
			"message": err.Error(),
		},
	})
}

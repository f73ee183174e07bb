// Package handler provides HTTP handlers for the WeatherDeck API.
package handler

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weatherdeck/weatherdeck/internal/api/models"
	"github.com/weatherdeck/weatherdeck/internal/api/response"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	pool      *pgxpool.Pool
}

// NewOpsHandler creates a new OpsHandler. The pool may be nil, in which case
// the database check reports failure.
func NewOpsHandler(version, buildTime string, pool *pgxpool.Pool) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		pool:      pool,
	}
}

// HealthCheck handles GET /api/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// DBCheck handles GET /api/db-check - verifies the database is reachable and
// the users table exists.
func (h *OpsHandler) DBCheck(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil {
		response.ServiceUnavailable(w, r, "database is not configured")
		return
	}

	ctx := r.Context()
	if err := h.pool.Ping(ctx); err != nil {
		response.ServiceUnavailable(w, r, "database is unreachable")
		return
	}

	var exists bool
	err := h.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'users')`,
	).Scan(&exists)
	if err != nil || !exists {
		response.ServiceUnavailable(w, r, "users table is missing")
		return
	}

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"database": "ok",
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

package main

import (
	"database/sql"
	"net/http"
	"time"

	"storefront-app/internal/httpapi"
	"storefront-app/internal/metrics"
	"storefront-app/pkg/utils"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, db *sql.DB) {
	r.GET("/healthz", func(c *gin.Context) {
		if db != nil {
			if err := utils.HealthCheck(c.Request.Context(), db, 2*time.Second); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	h.Register(r)
}

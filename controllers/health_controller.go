package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	appName     string
	version     string
	environment string
	dataSource  string
	startedAt   time.Time
	pinger      Pinger
}

// NewHealthController builds the health and version handlers. pinger may be
// nil when the service runs on the in-memory store.
func NewHealthController(appName, version, environment, dataSource string, pinger Pinger) *HealthController {
	return &HealthController{
		appName:     appName,
		version:     version,
		environment: environment,
		dataSource:  dataSource,
		startedAt:   time.Now(),
		pinger:      pinger,
	}
}

// Health check handler for monitoring
func (hc *HealthController) Health(c *gin.Context) {
	health := gin.H{
		"status":      "ok",
		"service":     hc.appName,
		"version":     hc.version,
		"data_source": hc.dataSource,
		"timestamp":   time.Now().Unix(),
	}

	if hc.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := hc.pinger.Ping(ctx); err != nil {
			health["status"] = "degraded"
			health["database"] = "unhealthy"
		} else {
			health["database"] = "healthy"
		}
	}

	c.JSON(http.StatusOK, health)
}

func (hc *HealthController) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        hc.appName,
		"version":     hc.version,
		"environment": hc.environment,
		"started_at":  hc.startedAt.UTC().Format(time.RFC3339),
	})
}

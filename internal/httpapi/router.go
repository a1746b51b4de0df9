package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Skufu/cardiorisk/internal/risk"
	"github.com/Skufu/cardiorisk/internal/telemetry"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the router needs. DB may be nil when no
// database is configured.
type Deps struct {
	Service      *risk.Service
	DB           HealthChecker
	Metrics      *telemetry.Metrics
	Logger       zerolog.Logger
	CORSOrigins  []string
	MaxBodyBytes int64
}

func NewRouter(d Deps) *gin.Engine {
	if d.MaxBodyBytes <= 0 {
		d.MaxBodyBytes = 1 << 20
	}
	if len(d.CORSOrigins) == 0 {
		d.CORSOrigins = []string{"*"}
	}

	h := &handler{svc: d.Service, metrics: d.Metrics}

	router := gin.New()
	router.Use(
		requestLogger(d.Logger),
		recovery(d.Logger),
		limitBodySize(d.MaxBodyBytes),
		cors.New(cors.Config{
			AllowOrigins: d.CORSOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", readiness(d.Service, d.DB))
	if d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := router.Group("/api")
	api.POST("/assessments", h.assess)
	api.GET("/model", h.describeModel)

	return router
}

func readiness(svc *risk.Service, db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		body := gin.H{"status": "ok", "model": "ok", "db": "disabled"}
		ready := true

		if _, err := svc.Artifact(ctx); err != nil {
			body["model"] = fmt.Sprintf("unavailable: %v", err)
			ready = false
		}
		if db != nil {
			body["db"] = "ok"
			if err := db.Ping(ctx); err != nil {
				body["db"] = fmt.Sprintf("unhealthy: %v", err)
				ready = false
			}
		}

		if !ready {
			body["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		c.JSON(http.StatusOK, body)
	}
}

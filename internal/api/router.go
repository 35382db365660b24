package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/faceline/internal/api/handlers"
	"github.com/your-org/faceline/internal/api/ws"
	"github.com/your-org/faceline/internal/auth"
	"github.com/your-org/faceline/internal/cascadestore"
	"github.com/your-org/faceline/internal/queue"
	"github.com/your-org/faceline/internal/storage"
)

type RouterConfig struct {
	APIKey   string
	DB       *storage.PostgresStore
	MinIO    *storage.MinIOStore
	Producer *queue.Producer
	Hub      *ws.Hub
	Cascades *cascadestore.Registry
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware())
	r.Use(cors.Default())

	// System endpoints (no auth)
	systemH := handlers.NewSystemHandler(cfg.DB, cfg.MinIO, cfg.Producer)
	r.GET("/healthz", systemH.Healthz)
	r.GET("/readyz", systemH.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 (with auth)
	v1 := r.Group("/v1")
	v1.Use(auth.APIKeyMiddleware(cfg.APIKey))

	// WebSocket
	v1.GET("/ws", cfg.Hub.HandleWS)

	// Synchronous detect
	detectH := handlers.NewDetectHandler(cfg.Cascades)
	v1.POST("/detect", detectH.Run)

	// Jobs
	jobH := handlers.NewJobHandler(cfg.DB, cfg.Producer)
	v1.POST("/jobs", jobH.Create)
	v1.GET("/jobs", jobH.List)
	v1.GET("/jobs/:id", jobH.Get)
	v1.GET("/jobs/:id/results", jobH.ListFaceResults)

	// Cascade registry
	cascadeH := handlers.NewCascadeHandler(cfg.Cascades, cfg.DB)
	v1.POST("/cascades", cascadeH.Create)
	v1.GET("/cascades", cascadeH.List)

	return r
}

package api

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/api/handlers"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/api/ws"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/auth"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/queue"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/storage"
)

type RouterConfig struct {
	DB       *storage.PostgresStore
	MinIO    *storage.MinIOStore
	Producer *queue.Producer
	Hub      *ws.Hub
	Issuer   *auth.TokenIssuer
	Hasher   *auth.Hasher
	Logger   *slog.Logger
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

	// Account endpoints (no auth)
	authH := handlers.NewAuthHandler(cfg.DB, cfg.Issuer, cfg.Hasher, cfg.Logger)
	r.POST("/signup", authH.Signup)
	r.POST("/login", authH.Login)
	r.GET("/security-question", authH.SecurityQuestion)
	r.POST("/reset-password", authH.ResetPassword)

	// API v1 (token auth)
	v1 := r.Group("/v1")
	v1.Use(auth.Middleware(cfg.Issuer))

	// WebSocket alerts
	v1.GET("/ws", cfg.Hub.HandleWS)

	// Cameras and the adjacency graph
	camH := handlers.NewCameraHandler(cfg.DB, cfg.Logger)
	v1.POST("/cameras", camH.Create)
	v1.GET("/cameras", camH.List)
	v1.GET("/cameras/:id", camH.Detail)
	v1.PUT("/cameras/:id", camH.Update)
	v1.DELETE("/cameras/:id", camH.Delete)

	graphH := handlers.NewGraphHandler(cfg.DB, cfg.Logger)
	v1.GET("/cameras/:id/network", graphH.Neighbors)
	v1.PUT("/cameras/:id/network", graphH.ReplaceNetwork)
	v1.GET("/graph", graphH.Graph)

	// Floors and plans
	floorH := handlers.NewFloorHandler(cfg.DB, cfg.Logger)
	v1.POST("/floors", floorH.Create)
	v1.GET("/floors", floorH.List)
	v1.POST("/floor-plans", floorH.CreatePlan)
	v1.GET("/floor-plans/:id", floorH.GetPlan)
	v1.PUT("/floor-plans/:id", floorH.UpdatePlan)

	// Family members
	familyH := handlers.NewFamilyHandler(cfg.DB, cfg.MinIO, cfg.Logger)
	v1.POST("/family", familyH.Create)
	v1.GET("/family", familyH.List)
	v1.GET("/photos", familyH.Photo)

	// Event logs
	logH := handlers.NewLogHandler(cfg.DB, cfg.Logger)
	v1.GET("/logs/family", logH.FamilyFeed)
	v1.GET("/logs/unwanted", logH.UnwantedFeed)
	v1.POST("/logs/investigate", logH.Investigate)
	v1.POST("/logs/:id/reclassify", logH.Reclassify)

	// Dashboard
	dashH := handlers.NewDashboardHandler(cfg.DB)
	v1.GET("/dashboard", dashH.Summary)

	return r
}

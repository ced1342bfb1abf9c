package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpapi "github.com/navigara/navigara-backend/internal/api/http"
	"github.com/navigara/navigara-backend/internal/api/http/middleware"
	assessmenthttp "github.com/navigara/navigara-backend/internal/assessment/http"
	onahttp "github.com/navigara/navigara-backend/internal/org_network_analysis/http"
	"github.com/navigara/navigara-backend/internal/org_network_analysis/service"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int

	Logger   *zap.Logger
	Analysis *service.AnalysisService
	Stores   *Stores
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, healthDeps(dep.Stores))
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))

	onahttp.New(dep.Analysis).Register(api.Group("/nakhoda"))
	assessmenthttp.Register(api.Group("/assessment"))

	return r
}

// healthDeps keeps disabled backends as nil interfaces.
func healthDeps(st *Stores) httpapi.HealthDeps {
	var deps httpapi.HealthDeps
	if st == nil {
		return deps
	}
	if st.Pool != nil {
		deps.DB = st.Pool
	}
	deps.Redis = st.Redis
	deps.LogStore = st.LogDB
	return deps
}

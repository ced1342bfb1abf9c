package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
	Redis     string    `json:"redis,omitempty"`
	LogStore  string    `json:"log_store,omitempty"`
}

// HealthDeps lists the optional backends reported by the health check; nil
// entries are reported as disabled.
type HealthDeps struct {
	DB       Pinger
	Redis    *redis.Client
	LogStore *sql.DB
}

type HealthHandler struct {
	serviceName string
	version     string
	deps        HealthDeps
}

func NewHealthHandler(serviceName, version string, deps HealthDeps) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		deps:        deps,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        "disabled",
		Redis:     "disabled",
		LogStore:  "disabled",
	}

	if h.deps.DB != nil {
		resp.DB = status(h.deps.DB.Ping(ctx))
	}
	if h.deps.Redis != nil {
		resp.Redis = status(h.deps.Redis.Ping(ctx).Err())
	}
	if h.deps.LogStore != nil {
		resp.LogStore = status(h.deps.LogStore.PingContext(ctx))
	}
	if resp.DB == "down" || resp.Redis == "down" || resp.LogStore == "down" {
		resp.Status = "degraded"
	}

	c.JSON(http.StatusOK, resp)
}

func status(err error) string {
	if err != nil {
		return "down"
	}
	return "up"
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Redis     string    `json:"redis"`
	DB        string    `json:"db,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	redis       *redis.Client
	db          *pgxpool.Pool
}

// NewHealthHandler reports on redis and, when db is non-nil, on Postgres.
func NewHealthHandler(serviceName, version string, rdb *redis.Client, db *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		redis:       rdb,
		db:          db,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Redis:     "disabled",
		DB:        "disabled",
	}
	code := http.StatusOK

	if h.redis != nil {
		if err := h.redis.Ping(pingCtx).Err(); err != nil {
			resp.Redis = "down"
			resp.Status = "unhealthy"
			code = http.StatusServiceUnavailable
		} else {
			resp.Redis = "up"
		}
	}

	if h.db != nil {
		if err := h.db.Ping(pingCtx); err != nil {
			resp.DB = "down"
		} else {
			resp.DB = "up"
		}
	}

	c.JSON(code, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}

package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/GoSim-25-26J-441/site-builder-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/api/http/middleware"
	sitehttp "github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/http"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	// Auth identifies the caller; FirebaseAuthMiddleware or OptionalUser.
	Auth gin.HandlerFunc
	App  *App
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.App.Redis, dep.App.DB)
	healthHandler.RegisterRoutes(r)

	sites := r.Group("/api/v1/sites")
	sites.Use(dep.Auth)
	sitehttp.New(dep.App.Engine, dep.App.Writer).Register(sites)

	return r
}

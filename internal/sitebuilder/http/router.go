package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	projects.POST("", h.CreateProject)
	projects.GET("", h.ListProjects)
	projects.POST("/quick-start", h.QuickStart)
	projects.POST("/:id/chat", h.Chat)
	projects.GET("/:id/status", h.Status)
	projects.PATCH("/:id", h.UpdateProject)
	projects.GET("/:id/preview", h.Preview)
	projects.GET("/:id/export", h.Export)

	rg.POST("/content/blog", h.GenerateBlog)
	rg.GET("/metrics", h.Metrics)
}

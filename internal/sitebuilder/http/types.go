package http

import (
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/content"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/service"
)

type Handler struct {
	engine *service.Engine
	writer *content.Orchestrator
}

func New(engine *service.Engine, writer *content.Orchestrator) *Handler {
	return &Handler{
		engine: engine,
		writer: writer,
	}
}

type createProjectRequest struct {
	ProjectName string `json:"project_name"`
}

type createProjectResponse struct {
	Success     bool   `json:"success"`
	ProjectID   string `json:"project_id"`
	Message     string `json:"message"`
	CurrentStep string `json:"current_step"`
}

type quickStartRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	Industry     string `json:"industry"`
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

type updateProjectRequest struct {
	ProjectName *string `json:"project_name"`
	Description *string `json:"business_description"`
	Location    *string `json:"location"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
}

type blogRequest struct {
	Topic       string `json:"topic" binding:"required"`
	ContentType string `json:"content_type"`
	Language    string `json:"language"`
}

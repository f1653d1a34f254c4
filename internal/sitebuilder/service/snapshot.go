package service

import (
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/render"
)

// ChatResponse is the reply to one chat turn.
type ChatResponse struct {
	Success              bool                  `json:"success"`
	Message              string                `json:"message"`
	CurrentStep          domain.Step           `json:"current_step"`
	Progress             int                   `json:"progress"`
	ProjectSnapshot      ProjectSnapshot       `json:"project_snapshot"`
	TemplatePreviewHints *TemplatePreviewHints `json:"template_preview_hints,omitempty"`
}

// ProjectSnapshot is the live-preview view of a project.
type ProjectSnapshot struct {
	BusinessName  string            `json:"business_name"`
	Industry      string            `json:"industry"`
	About         *string           `json:"about"`
	Services      []ServiceSnapshot `json:"services"`
	ServicesCount int               `json:"services_count"`
	Status        string            `json:"status"`
	Tagline       string            `json:"tagline"`
}

type ServiceSnapshot struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// TemplatePreviewHints styles the client-side preview.
type TemplatePreviewHints struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	FontFamily     string `json:"fontFamily"`
	TextColor      string `json:"textColor"`
	CardBackground string `json:"cardBackground"`
}

// DefaultPreviewHints are the universal template's colours.
var DefaultPreviewHints = TemplatePreviewHints{
	PrimaryColor:   "#007bff",
	SecondaryColor: "#6c757d",
	FontFamily:     "Arial, sans-serif",
	TextColor:      "#333",
	CardBackground: "#f8f9fa",
}

func newChatResponse(message string, p *domain.Project, conv *domain.Conversation, services []domain.Service) *ChatResponse {
	resp := &ChatResponse{
		Success:         true,
		Message:         message,
		CurrentStep:     conv.CurrentStep,
		Progress:        p.Progress(),
		ProjectSnapshot: snapshot(p, services),
	}
	if p.TemplateID != "" {
		hints := DefaultPreviewHints
		resp.TemplatePreviewHints = &hints
	}
	return resp
}

func snapshot(p *domain.Project, services []domain.Service) ProjectSnapshot {
	s := ProjectSnapshot{
		BusinessName:  p.BusinessName,
		Industry:      p.Industry,
		About:         optional(p.Description),
		Services:      make([]ServiceSnapshot, 0, len(services)),
		ServicesCount: len(services),
		Status:        p.Status,
		Tagline:       render.Tagline(p.Industry),
	}
	for _, svc := range services {
		s.Services = append(s.Services, ServiceSnapshot{
			Name:        svc.Name,
			Description: optional(svc.Description),
		})
	}
	return s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package http

import (
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/auth"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/logging"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/content"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
)

// CreateProject starts a new conversation.
func (h *Handler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	// the body is optional
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	res, err := h.engine.Start(c.Request.Context(), auth.UserID(c), req.ProjectName)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createProjectResponse{
		Success:     true,
		ProjectID:   res.Project.ID,
		Message:     res.Message,
		CurrentStep: res.CurrentStep.String(),
	})
}

// QuickStart creates a project whose business name and industry are already known.
func (h *Handler) QuickStart(c *gin.Context) {
	var req quickStartRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.BusinessName) == "" {
		fail(c, http.StatusBadRequest, "Business name is required")
		return
	}

	p, err := h.engine.QuickStart(c.Request.Context(), auth.UserID(c), req.BusinessName, req.Industry)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"project_id": p.ID,
		"message":    "Project created for " + p.BusinessName,
	})
}

// Chat applies one user message to the project's conversation.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Message is required")
		return
	}

	resp, err := h.engine.Process(c.Request.Context(), auth.UserID(c), c.Param("id"), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.engine.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "projects": projects})
}

func (h *Handler) Status(c *gin.Context) {
	st, err := h.engine.Status(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "project": st})
}

// UpdateProject edits the user-editable fields of a project.
func (h *Handler) UpdateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.engine.Update(c.Request.Context(), auth.UserID(c), c.Param("id"), domain.UpdateProjectRequest{
		ProjectName: req.ProjectName,
		Description: req.Description,
		Location:    req.Location,
		Phone:       req.Phone,
		Email:       req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated_fields": updated})
}

func (h *Handler) Preview(c *gin.Context) {
	html, err := h.engine.Preview(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Export streams the completed site as a zip archive.
func (h *Handler) Export(c *gin.Context) {
	bundle, err := h.engine.Export(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": bundle.Filename}))
	c.Status(http.StatusOK)
	if err := bundle.WriteZip(c.Writer); err != nil {
		// headers are already sent
		logging.FromContext(c.Request.Context()).Error("failed to write export",
			zap.String("project_id", c.Param("id")),
			zap.Error(err),
		)
	}
}

// GenerateBlog writes a blog post; it falls back to stock copy when the provider fails.
func (h *Handler) GenerateBlog(c *gin.Context) {
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Topic) == "" {
		fail(c, http.StatusBadRequest, "Topic is required")
		return
	}

	post, source := h.writer.GenerateBlogPost(c.Request.Context(), content.BlogRequest{
		Topic:       strings.TrimSpace(req.Topic),
		ContentType: req.ContentType,
		Language:    req.Language,
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "content": post, "source": source})
}

func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "metrics": h.writer.Metrics()})
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/logging"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
)

// writeError maps err to a status and a user-facing message. Raw errors never
// reach the client.
func writeError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "Something went wrong on our side. Please try again."
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		status, msg = http.StatusNotFound, "Project not found"
	case errors.Is(err, domain.ErrConcurrentUpdate), errors.Is(err, domain.ErrLockTimeout):
		status, msg = http.StatusConflict, "This project is busy with another message. Please try again."
	case errors.Is(err, domain.ErrProjectNotCompleted):
		status, msg = http.StatusConflict, "Website not yet generated. Finish the conversation first."
	}

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	fail(c, status, msg)
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": "❌ " + msg})
}

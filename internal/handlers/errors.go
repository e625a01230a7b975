package handlers

import (
	"errors"
	"net/http"

	"symphony/internal/repository"
	"symphony/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// respondError maps service errors onto status codes.
func respondError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
		message = "not found"
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{
		"error":   message,
		"message": err.Error(),
	})
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid " + param,
			"message": err.Error(),
		})
		return uuid.Nil, false
	}
	return id, true
}

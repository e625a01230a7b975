package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"symphony/internal/models"
	"symphony/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type IntegrationHandler struct {
	service service.IntegrationService
}

func NewIntegrationHandler(service service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{service: service}
}

// connectRequest stands in for the OAuth callback, which is handled elsewhere.
type connectRequest struct {
	AccessToken  string          `json:"accessToken" binding:"required"`
	RefreshToken string          `json:"refreshToken"`
	ExpiresAt    *time.Time      `json:"expiresAt"`
	Metadata     json.RawMessage `json:"metadata"`
}

func (h *IntegrationHandler) ListIntegrations(c *gin.Context) {
	orgID, ok := parseUUID(c, "orgID")
	if !ok {
		return
	}

	statuses, err := h.service.List(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err, "failed to list integrations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": statuses})
}

func (h *IntegrationHandler) ConnectIntegration(c *gin.Context) {
	orgID, ok := parseUUID(c, "orgID")
	if !ok {
		return
	}

	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"message": err.Error(),
		})
		return
	}

	status, err := h.service.Connect(c.Request.Context(), orgID, models.IntegrationType(c.Param("type")), service.ConnectInput{
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		ExpiresAt:    req.ExpiresAt,
		Metadata:     datatypes.JSON(req.Metadata),
	})
	if err != nil {
		respondError(c, err, "failed to connect integration")
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *IntegrationHandler) DisconnectIntegration(c *gin.Context) {
	orgID, ok := parseUUID(c, "orgID")
	if !ok {
		return
	}

	if err := h.service.Disconnect(c.Request.Context(), orgID, models.IntegrationType(c.Param("type"))); err != nil {
		respondError(c, err, "failed to disconnect integration")
		return
	}

	c.Status(http.StatusNoContent)
}

package handlers

import (
	"fmt"
	"net/http"

	"symphony/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(service service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard godoc
// @Summary Cached dashboard data
// @Description Returns the cached pull requests, commits and Slack messages of a project
// @Tags Dashboard
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.DashboardBundle
// @Failure 400 {object} ErrorResponse
// @Router /projects/{id}/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	bundle, err := h.service.GetDashboard(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get dashboard")
		return
	}

	c.JSON(http.StatusOK, bundle)
}

// RefreshDashboard godoc
// @Summary Refresh a project now
// @Description Fetches fresh data for the project and returns the stored result
// @Tags Dashboard
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.DashboardBundle
// @Failure 404 {object} ErrorResponse
// @Router /projects/{id}/refresh [post]
func (h *DashboardHandler) RefreshDashboard(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	bundle, err := h.service.RefreshDashboard(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to refresh dashboard")
		return
	}

	c.JSON(http.StatusOK, bundle)
}

func (h *DashboardHandler) ExportDashboard(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	data, err := h.service.ExportDashboard(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to export dashboard")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="dashboard-%s.xlsx"`, id))
	c.Data(http.StatusOK, xlsxContentType, data)
}

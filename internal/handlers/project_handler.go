package handlers

import (
	"net/http"

	"symphony/internal/service"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	service service.ProjectService
}

func NewProjectHandler(service service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	GithubRepo   string `json:"githubRepo" binding:"max=255"`
	SlackChannel string `json:"slackChannel" binding:"max=64"`
}

type updateProjectRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=255"`
	GithubRepo   *string `json:"githubRepo" binding:"omitempty,max=255"`
	SlackChannel *string `json:"slackChannel" binding:"omitempty,max=64"`
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	orgID, ok := parseUUID(c, "orgID")
	if !ok {
		return
	}

	projects, err := h.service.List(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err, "failed to list projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(projects),
		"items": projects,
	})
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	orgID, ok := parseUUID(c, "orgID")
	if !ok {
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"message": err.Error(),
		})
		return
	}

	project, err := h.service.Create(c.Request.Context(), orgID, service.CreateProjectInput{
		Name:         req.Name,
		GithubRepo:   req.GithubRepo,
		SlackChannel: req.SlackChannel,
	})
	if err != nil {
		respondError(c, err, "failed to create project")
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	project, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject edits the name and links. Omitted fields are left unchanged,
// an empty string unlinks.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"message": err.Error(),
		})
		return
	}

	project, err := h.service.Update(c.Request.Context(), id, service.UpdateProjectInput{
		Name:         req.Name,
		GithubRepo:   req.GithubRepo,
		SlackChannel: req.SlackChannel,
	})
	if err != nil {
		respondError(c, err, "failed to update project")
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete project")
		return
	}

	c.Status(http.StatusNoContent)
}

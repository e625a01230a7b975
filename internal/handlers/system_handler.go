package handlers

import (
	"net/http"
	"time"

	"symphony/internal/repository"
	"symphony/internal/worker"
	redisstats "symphony/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SweepController is the part of the refresh worker exposed over HTTP.
type SweepController interface {
	Status() worker.SweepStatus
	Trigger() bool
}

type SystemHandler struct {
	projects repository.ProjectRepository
	caches   repository.ProjectCacheRepository
	redis    *redis.Client
	sweeper  SweepController
	log      *zap.SugaredLogger
}

// NewSystemHandler builds the handler. redisClient and sweeper may be nil when disabled.
func NewSystemHandler(
	projects repository.ProjectRepository,
	caches repository.ProjectCacheRepository,
	redisClient *redis.Client,
	sweeper SweepController,
	log *zap.SugaredLogger,
) *SystemHandler {
	return &SystemHandler{
		projects: projects,
		caches:   caches,
		redis:    redisClient,
		sweeper:  sweeper,
		log:      log,
	}
}

func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *SystemHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	projects, err := h.projects.Count(ctx)
	if err != nil {
		respondError(c, err, "failed to count projects")
		return
	}
	entries, err := h.caches.Count(ctx)
	if err != nil {
		respondError(c, err, "failed to count cache entries")
		return
	}

	resp := gin.H{
		"projects":     projects,
		"cacheEntries": entries,
	}

	if h.redis != nil {
		stats, err := redisstats.GetStats(ctx, h.redis)
		if err != nil {
			h.log.Warnw("failed to read redis stats", "error", err)
			resp["redis"] = gin.H{"error": err.Error()}
		} else {
			resp["redis"] = stats
		}
	}

	if h.sweeper != nil {
		resp["sweep"] = h.sweeper.Status()
	}

	c.JSON(http.StatusOK, resp)
}

// TriggerSweep schedules an immediate full refresh. Registered in debug mode only.
func (h *SystemHandler) TriggerSweep(c *gin.Context) {
	if h.sweeper == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "refresh disabled",
			"message": "the refresh worker is not running",
		})
		return
	}

	if !h.sweeper.Trigger() {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "sweep already pending",
			"message": "a sweep has already been requested",
		})
		return
	}

	h.log.Info("manual sweep requested")
	c.JSON(http.StatusAccepted, gin.H{"status": "scheduled"})
}

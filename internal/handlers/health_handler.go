package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/grisascutelnic/DrumBun/internal/services"
	"github.com/grisascutelnic/DrumBun/internal/utils"
	"github.com/grisascutelnic/DrumBun/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const healthCheckTimeout = 2 * time.Second

type HealthHandler struct {
	db     *mongo.Database
	cache  services.CacheService
	logger *logger.Logger
}

func NewHealthHandler(db *mongo.Database, cache services.CacheService, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// Health reports liveness of the service and its backing stores. The cache is
// optional, so a missing cache reports "disabled" rather than failing.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	components := gin.H{}
	healthy := true

	if h.db != nil {
		if err := h.db.Client().Ping(ctx, readpref.Primary()); err != nil {
			h.logger.WithError(err).Warn("MongoDB health check failed")
			components["mongodb"] = "down"
			healthy = false
		} else {
			components["mongodb"] = "up"
		}
	} else {
		components["mongodb"] = "disabled"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			h.logger.WithError(err).Warn("Redis health check failed")
			components["redis"] = "down"
			healthy = false
		} else {
			components["redis"] = "up"
		}
	} else {
		components["redis"] = "disabled"
	}

	status := http.StatusOK
	overall := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status":     overall,
		"components": components,
		"timestamp":  utils.FormatTimeISO(time.Now()),
	})
}

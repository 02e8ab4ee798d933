package handler

import (
	"log"
	"time"

	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	service *usecase.AnalyticsService
}

func NewAnalyticsHandler(service *usecase.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetAnalytics serves the dashboard rollup. When the store is unavailable it
// falls back to the last snapshot that computed successfully, flagged stale.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}
	uid := userID.(string)

	data, err := h.service.GetAnalytics(c.Request.Context(), uid, time.Now())
	if err != nil {
		snapshot, computedAt, cacheErr := h.service.LastKnownGood(uid)
		if cacheErr != nil {
			log.Printf("Analytics cache fallback failed for user %s: %v", uid, cacheErr)
		}
		if snapshot != nil {
			utils.Success(c, gin.H{
				"analytics":   snapshot,
				"stale":       true,
				"computed_at": computedAt,
			})
			return
		}
		utils.InternalError(c, "failed to compute analytics")
		return
	}

	utils.Success(c, gin.H{
		"analytics": data,
		"stale":     false,
	})
}

func (h *AnalyticsHandler) GetPointsSummary(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	summary, err := h.service.GetPointsSummary(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "failed to fetch points")
		return
	}

	utils.Success(c, summary)
}

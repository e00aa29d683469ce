package api

import (
	"net/http"
	"time"

	"dreamcatcher/dream-api/mood"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MoodToday returns the dominant mood of the current calendar day,
// or top_mood: null when nothing was recorded today
func (a *API) MoodToday(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	now := time.Now()

	dreams, err := a.Store.DreamsByUserAndDate(c.Request.Context(), userID, now)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load today's dreams", zap.Uint("userID", userID), zap.Error(err))
		return
	}

	label, share, ok := mood.TopForDay(dreams, now)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"top_mood": nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"top_mood": gin.H{
			"label":   label,
			"share":   share,
			"percent": mood.Percent(share),
		},
	})
}

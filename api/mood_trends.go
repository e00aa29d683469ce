package api

import (
	"net/http"
	"strconv"
	"time"

	"dreamcatcher/dream-api/mood"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxTrendDays = 90

// MoodTrends returns the normalized mood distribution over the
// trailing ?days= calendar days (default 7). Values are fractions,
// percent holds the display form truncated to one decimal
func (a *API) MoodTrends(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	days := 7
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "days must be a positive number",
				"requestID": requestID,
			})
			return
		}

		days = min(parsed, maxTrendDays)
	}

	dreams, err := a.Store.DreamsByUserID(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load dreams for trends", zap.Uint("userID", userID), zap.Error(err))
		return
	}

	fractions := mood.Aggregate(dreams, days, time.Now())

	percent := make(map[string]float64, len(fractions))
	for label, f := range fractions {
		percent[label] = mood.Percent(f)
	}

	c.JSON(http.StatusOK, gin.H{
		"days":    days,
		"moods":   fractions,
		"percent": percent,
	})
}

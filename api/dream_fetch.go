package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DreamFetch lists the user's dreams. An optional ?date=2006-01-02
// narrows the result to one calendar day
func (a *API) DreamFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		dreams, err := a.Store.DreamsByUserID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to list dreams", zap.Uint("userID", userID), zap.Error(err))
			return
		}

		c.JSON(http.StatusOK, dreams)
		return
	}

	day, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid date, expected YYYY-MM-DD",
			"requestID": requestID,
		})
		return
	}

	dreams, err := a.Store.DreamsByUserAndDate(c.Request.Context(), userID, day)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list dreams by date", zap.Uint("userID", userID), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dreams)
}

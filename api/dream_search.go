package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DreamSearch looks up dreams of a calendar day across all users.
// Deliberately not scoped to the caller, which is also why caching by
// request URI is safe here
func (a *API) DreamSearch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	dateStr := c.Query("date")
	if dateStr == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No date provided",
			"requestID": requestID,
		})
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

	dreams, err := a.Store.DreamsByDate(c.Request.Context(), day)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to search dreams by date", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dreams)
}

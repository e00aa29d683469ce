package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"dreamcatcher/dream-api/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DreamImage serves the stored illustration of a dream: a local file
// is streamed directly, an S3-hosted one redirects to its object URL
func (a *API) DreamImage(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid dream ID",
			"requestID": requestID,
		})
		return
	}

	dream, err := a.Store.DreamByID(c.Request.Context(), userID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Dream not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load dream", zap.Error(err))
		return
	}

	if storage.IsRemote(dream.ImageRef) {
		c.Redirect(http.StatusFound, dream.ImageRef)
		return
	}

	if _, err := os.Stat(dream.ImageRef); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Image file is missing",
			"requestID": requestID,
		})

		zap.L().Warn("Dream image file missing on disk", zap.String("path", dream.ImageRef))
		return
	}

	c.File(dream.ImageRef)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type imageBody struct {
	Prompt string `json:"prompt"`
}

// ImageGenerate asks the image API for an illustration of the prompt
// and stores the result right away, so the capture flow later gets a
// reference that's already durable
func (a *API) ImageGenerate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var data imageBody
	if err := c.ShouldBind(&data); err != nil || data.Prompt == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No prompt provided",
			"requestID": requestID,
		})
		return
	}

	url, err := a.OpenAI.GenerateImage(c.Request.Context(), data.Prompt)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
			"error":     "Image generation failed",
			"requestID": requestID,
		})

		zap.L().Error("Image generation failed", zap.Error(err), zap.Uint("userID", userID), zap.String("requestID", requestID))
		return
	}

	ref, err := a.Images.Resolve(c.Request.Context(), url)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
			"error":     "Failed to store generated image",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store generated image", zap.Error(err), zap.Uint("userID", userID), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"image_ref": ref,
	})
}

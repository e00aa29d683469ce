package api

import (
	"errors"
	"net/http"

	"dreamcatcher/dream-api/service"
	"dreamcatcher/dream-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type captureBody struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	ImageRef string `json:"image_ref"`
}

// DreamCapture runs the capture flow for the logged in user. The
// response carries a single "saved" flag for the client, the status
// code distinguishes a rejected input from a broken adapter
func (a *API) DreamCapture(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var data captureBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"saved":     false,
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.DreamTextValidator(data.Text); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"saved":     false,
			"requestID": requestID,
		})
		return
	}

	dream, topMoods, err := a.Capture.SaveDream(c.Request.Context(), userID, data.Title, data.Text, data.ImageRef)
	if err != nil {
		status := http.StatusBadGateway

		if service.IsValidation(err) {
			status = http.StatusBadRequest
			if errors.Is(err, service.ErrUnknownUser) {
				status = http.StatusNotFound
			}
		}

		var fe *service.FlowError
		if errors.As(err, &fe) && fe.Stage == service.StageCommit {
			status = http.StatusInternalServerError
		}

		c.AbortWithStatusJSON(status, gin.H{
			"error":     err.Error(),
			"saved":     false,
			"requestID": requestID,
		})

		zap.L().Error("Dream capture failed", zap.Error(err), zap.Uint("userID", userID), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"saved":     true,
		"dream":     dream,
		"top_moods": topMoods,
	})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Transcribe accepts an uploaded audio recording and returns the
// recognized text. A failed transcription is not an HTTP error: the
// client sees empty text, the same as the phone mic producing nothing
func (a *API) Transcribe(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No audio file provided",
			"requestID": requestID,
		})
		return
	}
	defer file.Close()

	text, err := a.OpenAI.Transcribe(c.Request.Context(), header.Filename, file)
	if err != nil {
		zap.L().Error("Transcription failed", zap.Error(err), zap.Uint("userID", userID), zap.String("requestID", requestID))

		c.JSON(http.StatusOK, gin.H{
			"text": "",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text": text,
	})
}

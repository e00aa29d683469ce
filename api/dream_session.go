package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DreamSessionImages returns the image refs saved since the session
// list was last reset, the "today" carousel reads this
func (a *API) DreamSessionImages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"images": a.Capture.SessionImages(),
	})
}

func (a *API) DreamSessionReset(c *gin.Context) {
	a.Capture.Reset()
	c.Status(http.StatusOK)
}

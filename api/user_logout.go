package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func (a *API) UserLogout(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if err := a.Settings.SetLoginState(c.Request.Context(), false, 0); err != nil {
		zap.L().Error("Failed to clear login state", zap.Error(err), zap.String("requestID", requestID))
	}

	sslEnabled := viper.GetBool("host.ssl.enabled")

	c.SetCookie("auth_token", "", -1, "/", "", sslEnabled, true)
	c.SetCookie("logged_in", "", -1, "/", "", sslEnabled, false)
	c.Status(http.StatusOK)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// UserDelete removes the logged in account. Dreams go with it through
// the foreign key cascade
func (a *API) UserDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	user, err := a.Store.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load user for deletion", zap.Uint("userID", userID), zap.Error(err))
		return
	}

	if err := a.Store.DeleteUser(c.Request.Context(), user); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete user", zap.Uint("userID", userID), zap.Error(err))
		return
	}

	if err := a.Settings.SetLoginState(c.Request.Context(), false, 0); err != nil {
		zap.L().Error("Failed to clear login state", zap.Error(err), zap.String("requestID", requestID))
	}

	sslEnabled := viper.GetBool("host.ssl.enabled")

	c.SetCookie("auth_token", "", -1, "/", "", sslEnabled, true)
	c.SetCookie("logged_in", "", -1, "/", "", sslEnabled, false)
	c.Status(http.StatusOK)
}

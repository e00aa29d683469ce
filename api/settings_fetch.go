package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) SettingsFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	ctx := c.Request.Context()

	darkMode, err := a.Settings.DarkMode(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to read dark mode setting", zap.Error(err))
		return
	}

	cards, err := a.Settings.HomeCards(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to read home card settings", zap.Error(err))
		return
	}

	hour, minute, err := a.Settings.ReminderTime(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to read reminder time setting", zap.Error(err))
		return
	}

	loggedIn, loginUserID, err := a.Settings.LoginState(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to read login state setting", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dark_mode":  darkMode,
		"home_cards": cards,
		"reminder": gin.H{
			"hour":   hour,
			"minute": minute,
		},
		"logged_in":     loggedIn,
		"login_user_id": loginUserID,
	})
}

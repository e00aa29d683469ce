package api

import (
	"errors"
	"net/http"

	"dreamcatcher/dream-api/settings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type settingsBody struct {
	DarkMode       *bool           `json:"dark_mode"`
	HomeCards      map[string]bool `json:"home_cards"`
	ReminderHour   *int            `json:"reminder_hour"`
	ReminderMinute *int            `json:"reminder_minute"`
}

// SettingsUpdate applies a partial preference update. Only the fields
// present in the body are written. A reminder time change makes the
// scheduler re-arm through the settings watch channel
func (a *API) SettingsUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	ctx := c.Request.Context()

	var data settingsBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.DarkMode != nil {
		if err := a.Settings.SetDarkMode(ctx, *data.DarkMode); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to write dark mode setting", zap.Error(err))
			return
		}
	}

	if data.HomeCards != nil {
		if err := a.Settings.SetHomeCards(ctx, data.HomeCards); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to write home card settings", zap.Error(err))
			return
		}
	}

	if data.ReminderHour != nil || data.ReminderMinute != nil {
		hour, minute, err := a.Settings.ReminderTime(ctx)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to read reminder time setting", zap.Error(err))
			return
		}

		if data.ReminderHour != nil {
			hour = *data.ReminderHour
		}
		if data.ReminderMinute != nil {
			minute = *data.ReminderMinute
		}

		if err := a.Settings.SetReminderTime(ctx, hour, minute); err != nil {
			if errors.Is(err, settings.ErrInvalidReminderTime) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":     err.Error(),
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to write reminder time setting", zap.Error(err))
			return
		}
	}

	c.Status(http.StatusOK)
}

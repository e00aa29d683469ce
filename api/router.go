// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"dreamcatcher/dream-api/db"
	"dreamcatcher/dream-api/huggingface"
	"dreamcatcher/dream-api/middleware"
	"dreamcatcher/dream-api/openai"
	"dreamcatcher/dream-api/security"
	"dreamcatcher/dream-api/service"
	"dreamcatcher/dream-api/settings"
	"dreamcatcher/dream-api/storage"
	"dreamcatcher/dream-api/store"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var cacheStore = persist.NewMemoryStore(time.Minute)

type API struct {
	Router   *gin.Engine
	Store    *store.Store
	Settings *settings.Store
	Argon    *security.ArgonHash
	OpenAI   *openai.Client
	Images   *storage.Fetcher
	Capture  *service.Capture
	Reminder *service.Reminder
}

func NewRouter() (*API, error) {
	a := &API{}

	gdb, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	a.Store = store.New(gdb)
	a.Settings = settings.New(gdb, a.Store.Hub())
	a.Argon = security.New()
	a.OpenAI = openai.New()

	imageStore, err := storage.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image storage, %w", err)
	}

	a.Images = storage.NewFetcher(imageStore)
	a.Capture = service.NewCapture(a.Store, huggingface.New(), a.Images)

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{viper.GetString("host.cors_origin")},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v, ok := c.Get("userID"); ok {
					if id, ok := v.(uint); ok {
						fields = append(fields, zap.Uint("userID", id))
					}
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	jwt := middleware.NewJWTMiddleware(a.Store)
	maxUploadSize := viper.GetInt64("upload.max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a JWT token
		main.HEAD("/validate", jwt, a.Validate)

		// POST /api/transcribe		-> Transcribes an uploaded audio recording
		main.POST("/transcribe", jwt, middleware.BodySizeLimiter(maxUploadSize), a.Transcribe)

		// POST /api/images		-> Generates and stores a dream illustration
		main.POST("/images", jwt, middleware.BodySizeLimiter(64<<10), a.ImageGenerate)
	}

	users := main.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/users 		-> Registers a new user
		users.POST("", a.UserRegister)

		// POST /api/users/login 	-> Logs in a user and returns a JWT cookie
		users.POST("/login", a.UserLogin)

		// POST /api/users/logout 	-> Clears the session
		users.POST("/logout", jwt, a.UserLogout)

		// GET /api/users		-> Returns the logged in user
		users.GET("", jwt, a.UserFetch)

		// DELETE /api/users 		-> Deletes the logged in user and their dreams
		users.DELETE("", jwt, a.UserDelete)
	}

	dreams := main.Group("/dreams", jwt)
	{
		// POST /api/dreams        	-> Runs the capture flow and stores a new dream
		dreams.POST("", middleware.BodySizeLimiter(1<<20), a.DreamCapture)

		// GET /api/dreams		-> Lists the user's dreams, ?date= narrows to one day
		dreams.GET("", a.DreamFetch)

		// GET /api/dreams/search	-> Date search across all users
		dreams.GET("/search", cacheFor(30), a.DreamSearch)

		// GET /api/dreams/session	-> Images saved since the last reset
		dreams.GET("/session", a.DreamSessionImages)

		// DELETE /api/dreams/session	-> Resets the session image list
		dreams.DELETE("/session", a.DreamSessionReset)

		// GET /api/dreams/:id/image	-> Serves the stored image of a dream
		dreams.GET("/:id/image", a.DreamImage)

		// DELETE /api/dreams/:id	-> Deletes a dream owned by the user
		dreams.DELETE("/:id", a.DreamDelete)
	}

	moods := main.Group("/mood", jwt)
	{
		// GET /api/mood/today		-> Top mood of the current day
		moods.GET("/today", a.MoodToday)

		// GET /api/mood/trends		-> Rolling N-day mood distribution
		moods.GET("/trends", a.MoodTrends)
	}

	prefs := main.Group("/settings", jwt, middleware.BodySizeLimiter(64<<10))
	{
		// GET /api/settings		-> All durable preferences
		prefs.GET("", a.SettingsFetch)

		// PUT /api/settings		-> Partial preference update
		prefs.PUT("", a.SettingsUpdate)
	}

	if viper.GetBool("reminder.enabled") {
		a.Reminder = service.NewReminder(a.Settings, a.Store.Hub())
		if err := a.Reminder.Start(); err != nil {
			return nil, fmt.Errorf("failed to start reminder scheduler, %w", err)
		}
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(cacheStore, time.Second*time.Duration(sec))
}

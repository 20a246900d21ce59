package http

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-advisor/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
	)
	if cfg.Sentry.DSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(
		errorHandlingMiddleware(handler.logger, cfg.HTTP.ExposeErrorDetails),
		profileMiddleware(),
		bodyLimitMiddleware(cfg.HTTP.MaxBodyBytes),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	{
		api.POST("/analyze-product", handler.AnalyzeProduct)
		api.POST("/analyze-photo", handler.AnalyzePhoto)

		api.GET("/wardrobe", handler.ListWardrobe)
		api.POST("/wardrobe", handler.AddWardrobeItem)
		api.GET("/wardrobe/:id", handler.GetWardrobeItem)
		api.DELETE("/wardrobe/:id", handler.DeleteWardrobeItem)

		api.GET("/preferences", handler.ListPreferences)
		api.PUT("/preferences", handler.SavePreference)
		api.DELETE("/preferences/:placeId", handler.DeletePreference)

		api.GET("/outfits/questions", handler.Questions)
		api.POST("/outfits/generate", handler.GenerateOutfit)
		api.POST("/outfits/sessions", handler.StartSession)
		api.GET("/outfits/sessions/:id", handler.GetSession)
		api.POST("/outfits/sessions/:id/answers", handler.AnswerQuestion)
		api.POST("/outfits/sessions/:id/reset", handler.ResetSession)

		api.GET("/photos/*key", handler.ServePhoto)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

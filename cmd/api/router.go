package api

import (
	"net/http"

	authDelivery "mailflow-backend/internal/auth/delivery"
	authUsecase "mailflow-backend/internal/auth/usecase"
	cacheDelivery "mailflow-backend/internal/cache/delivery"
	cacheUsecase "mailflow-backend/internal/cache/usecase"
	messageDelivery "mailflow-backend/internal/message/delivery"
	messageUsecase "mailflow-backend/internal/message/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, messageUc messageUsecase.MessageUsecase, cacheUc cacheUsecase.CacheUsecase) {
	authHandler := authDelivery.NewAuthHandler(authUc)
	messageHandler := messageDelivery.NewMessageHandler(messageUc)
	cacheHandler := cacheDelivery.NewCacheHandler(cacheUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/clients", authHandler.RegisterClient)
			auth.POST("/token", authHandler.IssueToken)
		}

		// Message routes (protected)
		messages := api.Group("/messages")
		messages.Use(authDelivery.AuthMiddleware(authUc))
		{
			messages.POST("", messageHandler.Send)
			messages.GET("", messageHandler.List)
			messages.POST("/process-pending", messageHandler.ProcessPending)
			messages.GET("/:id", messageHandler.GetByID)
			messages.GET("/:id/history", messageHandler.GetHistory)
			messages.POST("/:id/send", messageHandler.SendImmediately)
			messages.POST("/:id/retry", messageHandler.Retry)
			messages.PATCH("/:id/status", messageHandler.UpdateStatus)
			messages.DELETE("/:id", messageHandler.SoftDelete)
		}

		// Consolidation cache routes (protected)
		cache := api.Group("/cache")
		cache.Use(authDelivery.AuthMiddleware(authUc))
		{
			cache.POST("", cacheHandler.SendOrCache)
			cache.POST("/flush", cacheHandler.FlushExpired)
		}
	}
}

package api

import (
	authUsecase "mailflow-backend/internal/auth/usecase"
	cacheUsecase "mailflow-backend/internal/cache/usecase"
	messageUsecase "mailflow-backend/internal/message/usecase"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase    authUsecase.AuthUsecase
	messageUsecase messageUsecase.MessageUsecase
	cacheUsecase   cacheUsecase.CacheUsecase
}

func NewHandler(authUc authUsecase.AuthUsecase, messageUc messageUsecase.MessageUsecase, cacheUc cacheUsecase.CacheUsecase) *Handler {
	return &Handler{
		authUsecase:    authUc,
		messageUsecase: messageUc,
		cacheUsecase:   cacheUc,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Setup routes
	SetupRoutes(r, h.authUsecase, h.messageUsecase, h.cacheUsecase)

	return r.Run(addr)
}

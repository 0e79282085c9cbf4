package delivery

import (
	"net/http"

	cachedto "mailflow-backend/internal/cache/dto"
	"mailflow-backend/internal/cache/usecase"

	"github.com/gin-gonic/gin"
)

type CacheHandler struct {
	cacheUsecase usecase.CacheUsecase
}

func NewCacheHandler(cacheUsecase usecase.CacheUsecase) *CacheHandler {
	return &CacheHandler{
		cacheUsecase: cacheUsecase,
	}
}

// SendOrCache consolidates the request into a bucket
// POST /api/cache
func (h *CacheHandler) SendOrCache(c *gin.Context) {
	var req cachedto.CacheMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.CompanyID = c.GetString("companyID")
	req.ApplicationID = c.GetString("applicationID")

	message, err := h.cacheUsecase.SendOrCache(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, message)
}

// FlushExpired sends one consolidated message per expired bucket
// POST /api/cache/flush
func (h *CacheHandler) FlushExpired(c *gin.Context) {
	flushed, err := h.cacheUsecase.FlushExpired()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"flushed": flushed})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rnr-capital/microblog-backend/utils"
	Logger "github.com/rnr-capital/microblog-backend/utils/log"
)

// CacheClearHandler drops the cached home page so the next request
// recomputes fresh content. Administrative, outside the normal request
// flow, exposed on the internal route group only.
func CacheClearHandler(cache utils.PageCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		cache.Clear(c.Request.Context(), HomePageCacheKey)
		Logger.LogV2.Info("home page cache cleared")
		c.JSON(http.StatusOK, gin.H{"msg": "cache cleared"})
	}
}

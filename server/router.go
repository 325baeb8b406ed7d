package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rnr-capital/microblog-backend/imagestore"
	"github.com/rnr-capital/microblog-backend/server/handler"
	"github.com/rnr-capital/microblog-backend/server/middlewares"
	"github.com/rnr-capital/microblog-backend/utils"
)

// NewRouter wires the full HTTP surface. Listing routes are public,
// everything that mutates sits behind the login gate, and the cache clear
// lives on the internal group which the deployment keeps off the public
// load balancer.
func NewRouter(db *gorm.DB, cache utils.PageCache, store imagestore.ImageStore, homeCacheTTL time.Duration) *gin.Engine {
	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(middlewares.Auth(db))

	router.GET("/", handler.HomeFeedHandler(db, cache, homeCacheTTL))
	router.GET("/group/:slug/", handler.GroupFeedHandler(db))
	router.GET("/profile/:username/", handler.ProfileFeedHandler(db))
	router.GET("/posts/:id/", handler.PostDetailHandler(db))

	authed := router.Group("/", middlewares.LoginRequired())
	authed.GET("/create/", handler.PostCreateFormHandler(db))
	authed.POST("/create/", handler.PostCreateHandler(db, store))
	authed.GET("/posts/:id/edit/", handler.PostEditHandler(db, store))
	authed.POST("/posts/:id/edit/", handler.PostEditHandler(db, store))
	authed.POST("/posts/:id/comment/", handler.CommentCreateHandler(db))
	authed.GET("/profile/:username/follow/", handler.ProfileFollowHandler(db))
	authed.GET("/profile/:username/unfollow/", handler.ProfileUnfollowHandler(db))
	authed.GET("/follow/", handler.FollowingFeedHandler(db))

	internal := router.Group("/internal")
	internal.POST("/cache/clear", handler.CacheClearHandler(cache))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Microblog server - API not found"})
	})

	return router
}

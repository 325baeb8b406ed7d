package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rnr-capital/microblog-backend/model"
	"github.com/rnr-capital/microblog-backend/server/middlewares"
	"github.com/rnr-capital/microblog-backend/utils"
)

// HomePageCacheKey is the single cache slot for the anonymous home feed.
// Only the first page is cached, deeper pages are rare enough to always
// recompute.
const HomePageCacheKey = "page:home"

// postQuery is the base listing query every feed variant filters down.
// All feeds are ordered by publication time, newest first.
func postQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Post{}).
		Preload("Author").
		Preload("Group").
		Order("created_at desc")
}

// HomeFeedHandler serves the paginated, unfiltered post listing. The
// rendered first page is cached for the configured TTL: within the window
// repeated requests get the identical bytes back even if posts changed
// underneath, and only an explicit clear (CacheClearHandler) cuts the
// window short.
func HomeFeedHandler(db *gorm.DB, cache utils.PageCache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawPage := c.Query("page")
		cacheable := rawPage == "" || rawPage == "1"

		if cacheable {
			if data, ok := cache.Get(c.Request.Context(), HomePageCacheKey); ok {
				c.Data(http.StatusOK, jsonContentType, data)
				return
			}
		}

		var posts []model.Post
		page, err := utils.Paginate(postQuery(db), rawPage, utils.PostsPerPage(), &posts)
		if err != nil {
			internalError(c, err)
			return
		}

		data, err := json.Marshal(toFeedPage(posts, page))
		if err != nil {
			internalError(c, err)
			return
		}

		if cacheable {
			cache.Set(c.Request.Context(), HomePageCacheKey, data, ttl)
		}
		c.Data(http.StatusOK, jsonContentType, data)
	}
}

// GroupFeedHandler serves the paginated listing of one group's posts.
func GroupFeedHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var group model.Group
		if err := db.First(&group, "slug = ?", slug).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				notFound(c, fmt.Sprintf("unknown group %s", slug))
				return
			}
			internalError(c, err)
			return
		}

		var posts []model.Post
		query := postQuery(db).Where("group_id = ?", group.Id)
		page, err := utils.Paginate(query, c.Query("page"), utils.PostsPerPage(), &posts)
		if err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"group": gin.H{
				"title":       group.Title,
				"slug":        group.Slug,
				"description": group.Description,
			},
			"posts": toFeedPage(posts, page).Posts,
			"page":  page,
		})
	}
}

// ProfileFeedHandler serves one author's posts plus the profile header
// data: the author's total post count and whether the current viewer
// follows them. Following is always false for anonymous viewers and for
// the author looking at their own profile.
func ProfileFeedHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		var author model.User
		if err := db.First(&author, "username = ?", username).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				notFound(c, fmt.Sprintf("unknown user %s", username))
				return
			}
			internalError(c, err)
			return
		}

		var postCount int64
		if err := db.Model(&model.Post{}).Where("author_id = ?", author.Id).Count(&postCount).Error; err != nil {
			internalError(c, err)
			return
		}

		following := false
		if viewer, ok := middlewares.CurrentUser(c); ok && viewer.Id != author.Id {
			var edge model.Follow
			err := db.First(&edge, "user_id = ? AND author_id = ?", viewer.Id, author.Id).Error
			following = err == nil
		}

		var posts []model.Post
		query := postQuery(db).Where("author_id = ?", author.Id)
		page, err := utils.Paginate(query, c.Query("page"), utils.PostsPerPage(), &posts)
		if err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"author": gin.H{
				"username":   author.Username,
				"name":       author.Name,
				"avatar_url": author.AvatarUrl,
			},
			"post_count": postCount,
			"following":  following,
			"posts":      toFeedPage(posts, page).Posts,
			"page":       page,
		})
	}
}

// FollowingFeedHandler serves the posts of all authors the viewer
// follows. The route is login gated, by the time we are here the viewer
// is resolved.
func FollowingFeedHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := middlewares.CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, middlewares.LoginPath)
			return
		}

		followed := db.Model(&model.Follow{}).
			Select("author_id").
			Where("user_id = ?", viewer.Id)

		var posts []model.Post
		query := postQuery(db).Where("author_id IN (?)", followed)
		page, err := utils.Paginate(query, c.Query("page"), utils.PostsPerPage(), &posts)
		if err != nil {
			internalError(c, err)
			return
		}

		c.JSON(http.StatusOK, toFeedPage(posts, page))
	}
}

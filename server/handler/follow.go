package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rnr-capital/microblog-backend/model"
	"github.com/rnr-capital/microblog-backend/server/middlewares"
)

// ProfileFollowHandler creates the (viewer, author) follow edge and sends
// the viewer back to the profile. Following yourself is a silent no-op,
// and following someone twice is idempotent: the insert carries an
// ON CONFLICT DO NOTHING so a concurrent duplicate resolves to the one
// surviving row instead of an error.
func ProfileFollowHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := middlewares.CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, middlewares.LoginPath)
			return
		}

		username := c.Param("username")
		if username != viewer.Username {
			var author model.User
			if err := db.First(&author, "username = ?", username).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					notFound(c, fmt.Sprintf("unknown user %s", username))
					return
				}
				internalError(c, err)
				return
			}

			edge := model.Follow{UserID: viewer.Id, AuthorID: author.Id}
			err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
			if err != nil {
				internalError(c, err)
				return
			}
		}

		c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", username))
	}
}

// ProfileUnfollowHandler removes the (viewer, author) edge. A missing
// edge, including an unknown username, is a 404.
func ProfileUnfollowHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := middlewares.CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, middlewares.LoginPath)
			return
		}

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

		result := db.Where("user_id = ? AND author_id = ?", viewer.Id, author.Id).
			Delete(&model.Follow{})
		if result.Error != nil {
			internalError(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			notFound(c, fmt.Sprintf("not following %s", username))
			return
		}

		c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", username))
	}
}

package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"

	"github.com/rnr-capital/microblog-backend/imagestore"
	"github.com/rnr-capital/microblog-backend/model"
	"github.com/rnr-capital/microblog-backend/server/middlewares"
)

// PostForm is the submitted shape for both create and edit. Text is the
// only required field, group is a slug and must resolve when present,
// the image arrives as a separate multipart file field.
type PostForm struct {
	Text  string `form:"text" binding:"required"`
	Group string `form:"group"`
}

type CommentForm struct {
	Text string `form:"text" binding:"required"`
}

// PostDetailHandler serves one post with its comments (oldest first) and
// the author's total post count.
func PostDetailHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, ok := findPost(c, db)
		if !ok {
			return
		}

		var comments []model.Comment
		err := db.Preload("Author").
			Where("post_id = ?", post.Id).
			Order("created_at asc").
			Find(&comments).Error
		if err != nil {
			internalError(c, err)
			return
		}

		var postCount int64
		if err := db.Model(&model.Post{}).Where("author_id = ?", post.AuthorID).Count(&postCount).Error; err != nil {
			internalError(c, err)
			return
		}

		commentViews := make([]CommentView, 0, len(comments))
		for i := range comments {
			commentViews = append(commentViews, toCommentView(&comments[i]))
		}

		c.JSON(http.StatusOK, gin.H{
			"post":       toPostView(post),
			"post_count": postCount,
			"comments":   commentViews,
		})
	}
}

// PostCreateFormHandler seeds the create screen: an empty form plus the
// groups available in the group select.
func PostCreateFormHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var groups []model.Group
		if err := db.Order("title asc").Find(&groups).Error; err != nil {
			internalError(c, err)
			return
		}

		choices := make([]gin.H, 0, len(groups))
		for _, group := range groups {
			choices = append(choices, gin.H{"slug": group.Slug, "title": group.Title})
		}

		c.JSON(http.StatusOK, gin.H{
			"is_edit": false,
			"groups":  choices,
		})
	}
}

// PostCreateHandler persists a new post. The author is always the
// authenticated viewer, never client input, and the publication time is
// assigned by the store.
func PostCreateHandler(db *gorm.DB, store imagestore.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := middlewares.CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, middlewares.LoginPath)
			return
		}

		var form PostForm
		if err := c.ShouldBind(&form); err != nil {
			invalidForm(c, err.Error())
			return
		}

		post := model.Post{
			AuthorID: viewer.Id,
			Text:     form.Text,
		}

		if form.Group != "" {
			var group model.Group
			if err := db.First(&group, "slug = ?", form.Group).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					invalidForm(c, fmt.Sprintf("unknown group %s", form.Group))
					return
				}
				internalError(c, err)
				return
			}
			post.GroupID = &group.Id
		}

		imageUrl, ok := uploadImage(c, store)
		if !ok {
			return
		}
		post.ImageUrl = imageUrl

		if err := db.Create(&post).Error; err != nil {
			internalError(c, err)
			return
		}

		c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", viewer.Username))
	}
}

// PostEditHandler lets the original author change text, group and image.
// Anyone else lands on the read-only detail page instead of an error.
func PostEditHandler(db *gorm.DB, store imagestore.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := middlewares.CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, middlewares.LoginPath)
			return
		}

		post, ok := findPost(c, db)
		if !ok {
			return
		}

		if post.AuthorID != viewer.Id {
			c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%s/", post.Id))
			return
		}

		if c.Request.Method == http.MethodGet {
			// form seed for the edit screen
			c.JSON(http.StatusOK, gin.H{
				"post":    toPostView(post),
				"is_edit": true,
			})
			return
		}

		var form PostForm
		if err := c.ShouldBind(&form); err != nil {
			invalidForm(c, err.Error())
			return
		}

		if err := copier.Copy(post, &form); err != nil {
			internalError(c, err)
			return
		}

		if form.Group == "" {
			post.GroupID = nil
			post.Group = nil
		} else {
			var group model.Group
			if err := db.First(&group, "slug = ?", form.Group).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					invalidForm(c, fmt.Sprintf("unknown group %s", form.Group))
					return
				}
				internalError(c, err)
				return
			}
			post.GroupID = &group.Id
			post.Group = &group
		}

		if imageUrl, ok := uploadImage(c, store); !ok {
			return
		} else if imageUrl != "" {
			post.ImageUrl = imageUrl
		}

		if err := db.Save(post).Error; err != nil {
			internalError(c, err)
			return
		}

		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%s/", post.Id))
	}
}

// CommentCreateHandler attaches a comment to the post in the path. The
// comment author is always the viewer.
func CommentCreateHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := middlewares.CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, middlewares.LoginPath)
			return
		}

		post, ok := findPost(c, db)
		if !ok {
			return
		}

		var form CommentForm
		if err := c.ShouldBind(&form); err != nil {
			invalidForm(c, err.Error())
			return
		}

		comment := model.Comment{
			AuthorID: viewer.Id,
			PostID:   post.Id,
			Text:     form.Text,
		}
		if err := db.Create(&comment).Error; err != nil {
			internalError(c, err)
			return
		}

		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%s/", post.Id))
	}
}

func findPost(c *gin.Context, db *gorm.DB) (*model.Post, bool) {
	id := c.Param("id")

	var post model.Post
	err := db.Preload("Author").Preload("Group").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, fmt.Sprintf("unknown post %s", id))
			return nil, false
		}
		internalError(c, err)
		return nil, false
	}
	return &post, true
}

// uploadImage stores the optional multipart "image" field and returns its
// public URL. An absent field (or a non-multipart submit) is fine and
// returns the empty URL, any other multipart failure is the client's 400.
func uploadImage(c *gin.Context, store imagestore.ImageStore) (string, bool) {
	file, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", true
	}
	if err != nil {
		invalidForm(c, "bad image upload: "+err.Error())
		return "", false
	}

	src, err := file.Open()
	if err != nil {
		internalError(c, err)
		return "", false
	}
	defer src.Close()

	url, err := store.Upload(c.Request.Context(), file.Filename, src)
	if err != nil {
		internalError(c, err)
		return "", false
	}
	return url, true
}

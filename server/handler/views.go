package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rnr-capital/microblog-backend/model"
	"github.com/rnr-capital/microblog-backend/utils"
	Logger "github.com/rnr-capital/microblog-backend/utils/log"
)

const jsonContentType = "application/json; charset=utf-8"

// PostView is the wire shape of a post in feed and detail responses.
type PostView struct {
	Id         string    `json:"id"`
	Author     string    `json:"author"`
	AuthorName string    `json:"author_name,omitempty"`
	Group      *string   `json:"group"`
	Text       string    `json:"text"`
	ImageUrl   string    `json:"image_url,omitempty"`
	PubDate    time.Time `json:"pub_date"`
}

type CommentView struct {
	Id      string    `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

// FeedPage is the wire shape of every paginated listing.
type FeedPage struct {
	Posts []PostView `json:"posts"`
	Page  utils.Page `json:"page"`
}

func toPostView(p *model.Post) PostView {
	view := PostView{
		Id:         p.Id,
		Author:     p.Author.Username,
		AuthorName: p.Author.Name,
		Text:       p.Text,
		ImageUrl:   p.ImageUrl,
		PubDate:    p.CreatedAt,
	}
	if p.Group != nil {
		view.Group = &p.Group.Slug
	}
	return view
}

func toCommentView(c *model.Comment) CommentView {
	return CommentView{
		Id:      c.Id,
		Author:  c.Author.Username,
		Text:    c.Text,
		PubDate: c.CreatedAt,
	}
}

func toFeedPage(posts []model.Post, page utils.Page) FeedPage {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, toPostView(&posts[i]))
	}
	return FeedPage{Posts: views, Page: page}
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{
		"code": utils.ErrorNotFound,
		"msg":  msg,
	})
}

func invalidForm(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code": utils.ErrorInvalidForm,
		"msg":  msg,
	})
}

func internalError(c *gin.Context, err error) {
	Logger.LogV2.Errorf("request %s failed: %v", c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"code": utils.ErrorInternal,
		"msg":  "internal error",
	})
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*

Post is a data model for a published post

Id: primary key, a uuid generated at creation
CreatedAt: publication timestamp, assigned once at persistence time and
never updated afterwards. All feed listings order by this column
descending.
UpdatedAt: time when the post was last edited

AuthorID:
Author: user who published this post, "belongs-to" relation. Deleting the
author deletes all their posts.
GroupID:
Group: optional group this post was published into. Deleting the group
keeps the post and nulls the reference.
Text: post body in plain text
ImageUrl: public URL of the attached image in the image store, empty when
the post has no attachment
Comments: all comments on this post, "has-many" relation, deleted with
the post

*/

type Post struct {
	Id        string    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"<-:create;index:idx_posts_pub_date,sort:desc"`
	UpdatedAt time.Time
	AuthorID  string `gorm:"not null"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *string
	Group     *Group `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Text      string `gorm:"type:text;not null"`
	ImageUrl  string
	Comments  []*Comment `json:"comments" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
}

func (p *Post) BeforeCreate(db *gorm.DB) error {
	if p.Id == "" {
		p.Id = uuid.New().String()
	}
	return nil
}

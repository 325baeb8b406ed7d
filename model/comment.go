package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*

Comment is a data model for a comment on a post

Id: primary key, a uuid generated at creation
CreatedAt: publication timestamp, assigned once at persistence time

AuthorID:
Author: user who wrote this comment, "belongs-to" relation
PostID:
Post: post this comment is attached to, "belongs-to" relation
Text: comment body in plain text

A comment is owned by exactly one post, it is deleted when either the post
or the author is deleted.

*/

type Comment struct {
	Id        string    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"<-:create"`
	AuthorID  string    `gorm:"not null"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PostID    string    `gorm:"not null;index"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string    `gorm:"type:text;not null"`
}

func (c *Comment) BeforeCreate(db *gorm.DB) error {
	if c.Id == "" {
		c.Id = uuid.New().String()
	}
	return nil
}

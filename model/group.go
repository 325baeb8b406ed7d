package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*

Group is a data model for a named community that posts can be published into

Id: primary key
CreatedAt: time when entity is created

Title: group's display name
Slug: unique URL-safe identifier, used in group feed URLs
Description: free text shown on the group page
Posts: all posts published into this group, "has-many" relation

Groups are administered externally, the feed path only reads them. Deleting
a group must keep its posts (the group reference is nulled out), which is
why Post carries the SET NULL constraint on its side.

*/

type Group struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	Title       string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	Posts       []*Post `json:"posts" gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

func (g *Group) BeforeCreate(db *gorm.DB) error {
	if g.Id == "" {
		g.Id = uuid.New().String()
	}
	return nil
}

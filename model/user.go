package model

import (
	"time"
)

/*

User is a data model for a publishing user

Id: primary key, use to identify a user
CreatedAt: time when entity is created

Username: unique handle, used in profile URLs, assigned at signup and
never changed by this service
Name: display name of a user, can be changed, don't need to be unique
AvatarUrl: User's icon URL.
Posts: posts that this user authored, "has-many" relation
Following: follow edges where this user is the follower

Account creation and credential management live in the auth service, this
model is only read here.

*/

type User struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	Username  string `gorm:"uniqueIndex;not null"`
	Name      string
	AvatarUrl string
	Posts     []*Post   `json:"posts" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Following []*Follow `json:"following" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

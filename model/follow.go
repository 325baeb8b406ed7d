package model

import (
	"time"
)

/*

Follow is a directed "user follows author" edge

UserID: the follower
AuthorID: the followed user
CreatedAt: time when relation is created

The pair (UserID, AuthorID) is the composite primary key, so the store
itself guarantees a user cannot follow the same author twice. Concurrent
duplicate follow requests race into the key constraint and the loser is
treated as "already exists". The edge is deleted when either endpoint user
is deleted.

Note: nothing at this layer prevents a reflexive (u, u) row. The self-follow
guard lives on the follow request path only.

*/

type Follow struct {
	UserID    string `gorm:"primaryKey"`
	AuthorID  string `gorm:"primaryKey"`
	CreatedAt time.Time
	User      User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Author    User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

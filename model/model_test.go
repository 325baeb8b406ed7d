package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rnr-capital/microblog-backend/model"
	"github.com/rnr-capital/microblog-backend/utils"
)

func createUser(t *testing.T, db *gorm.DB, username string) *model.User {
	user := model.User{Id: username + "_id", Username: username}
	require.Nil(t, db.Create(&user).Error)
	return &user
}

func TestUsernameUnique(t *testing.T) {
	db, cleanup := utils.CreateTempDB(t)
	defer cleanup()

	createUser(t, db, "alice")
	err := db.Create(&model.User{Id: "other_id", Username: "alice"}).Error
	assert.NotNil(t, err)
}

func TestDeleteGroupKeepsPosts(t *testing.T) {
	db, cleanup := utils.CreateTempDB(t)
	defer cleanup()

	alice := createUser(t, db, "alice")
	group := model.Group{Title: "Go", Slug: "go"}
	require.Nil(t, db.Create(&group).Error)

	post := model.Post{AuthorID: alice.Id, GroupID: &group.Id, Text: "hello"}
	require.Nil(t, db.Create(&post).Error)

	require.Nil(t, db.Delete(&group).Error)

	var kept model.Post
	require.Nil(t, db.First(&kept, "id = ?", post.Id).Error)
	assert.Nil(t, kept.GroupID)
}

func TestDeleteUserCascades(t *testing.T) {
	db, cleanup := utils.CreateTempDB(t)
	defer cleanup()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	post := model.Post{AuthorID: alice.Id, Text: "hello"}
	require.Nil(t, db.Create(&post).Error)
	comment := model.Comment{AuthorID: bob.Id, PostID: post.Id, Text: "hi"}
	require.Nil(t, db.Create(&comment).Error)
	require.Nil(t, db.Create(&model.Follow{UserID: bob.Id, AuthorID: alice.Id}).Error)

	require.Nil(t, db.Delete(alice).Error)

	var postCount, commentCount, followCount int64
	db.Model(&model.Post{}).Count(&postCount)
	db.Model(&model.Comment{}).Count(&commentCount)
	db.Model(&model.Follow{}).Count(&followCount)
	assert.Equal(t, int64(0), postCount)
	assert.Equal(t, int64(0), commentCount)
	assert.Equal(t, int64(0), followCount)
}

func TestDeletePostCascadesComments(t *testing.T) {
	db, cleanup := utils.CreateTempDB(t)
	defer cleanup()

	alice := createUser(t, db, "alice")
	post := model.Post{AuthorID: alice.Id, Text: "hello"}
	require.Nil(t, db.Create(&post).Error)
	require.Nil(t, db.Create(&model.Comment{AuthorID: alice.Id, PostID: post.Id, Text: "hi"}).Error)

	require.Nil(t, db.Delete(&post).Error)

	var commentCount int64
	db.Model(&model.Comment{}).Count(&commentCount)
	assert.Equal(t, int64(0), commentCount)
}

// The (user, author) pair is the primary key, a duplicate edge must be
// rejected by the store itself, not just by application logic.
func TestFollowEdgeUniqueAtStore(t *testing.T) {
	db, cleanup := utils.CreateTempDB(t)
	defer cleanup()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.Nil(t, db.Create(&model.Follow{UserID: alice.Id, AuthorID: bob.Id}).Error)
	err := db.Create(&model.Follow{UserID: alice.Id, AuthorID: bob.Id}).Error
	assert.NotNil(t, err)

	// the reverse direction is a distinct edge
	assert.Nil(t, db.Create(&model.Follow{UserID: bob.Id, AuthorID: alice.Id}).Error)
}

func TestPostIdAssignedOnCreate(t *testing.T) {
	db, cleanup := utils.CreateTempDB(t)
	defer cleanup()

	alice := createUser(t, db, "alice")
	post := model.Post{AuthorID: alice.Id, Text: "hello"}
	require.Nil(t, db.Create(&post).Error)

	assert.NotEmpty(t, post.Id)
	assert.False(t, post.CreatedAt.IsZero())
}

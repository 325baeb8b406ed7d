package handler_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rnr-capital/microblog-backend/model"
	"github.com/rnr-capital/microblog-backend/server"
	"github.com/rnr-capital/microblog-backend/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// fakeClock drives the page cache in tests so expiry doesn't need
// sleeping.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// fakeImageStore records uploads and hands back a deterministic URL per
// file name.
type fakeImageStore struct {
	uploads []string
}

func (f *fakeImageStore) Upload(ctx context.Context, fileName string, body io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, fileName)
	return "https://images.test/" + fileName, nil
}

type testServer struct {
	db     *gorm.DB
	router *gin.Engine
	cache  *utils.MemoryPageCache
	clock  *fakeClock
	images *fakeImageStore

	// monotonically bumps each created post's pub date so feed order is
	// deterministic
	postSeq int
}

// newTestServer wires the full router against a temp database, with the
// NO_AUTH switch on so tests authenticate via the X-User-Id header.
func newTestServer(t *testing.T) *testServer {
	t.Setenv("NO_AUTH", "true")

	db, cleanup := utils.CreateTempDB(t)
	t.Cleanup(cleanup)

	clock := &fakeClock{now: time.Date(2022, 9, 1, 12, 0, 0, 0, time.UTC)}
	cache := utils.NewMemoryPageCache(clock.Now)
	images := &fakeImageStore{}
	router := server.NewRouter(db, cache, images, 20*time.Second)

	return &testServer{db: db, router: router, cache: cache, clock: clock, images: images}
}

func (s *testServer) get(t *testing.T, path, userId string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userId != "" {
		req.Header.Set("X-User-Id", userId)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) postMultipart(t *testing.T, path, userId string, fields url.Values, imageName string, image []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, value := range values {
			require.Nil(t, writer.WriteField(key, value))
		}
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		require.Nil(t, err)
		_, err = part.Write(image)
		require.Nil(t, err)
	}
	require.Nil(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if userId != "" {
		req.Header.Set("X-User-Id", userId)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) postForm(t *testing.T, path, userId string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if userId != "" {
		req.Header.Set("X-User-Id", userId)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createUser(t *testing.T, username string) *model.User {
	user := model.User{Id: username + "_id", Username: username}
	require.Nil(t, s.db.Create(&user).Error)
	return &user
}

func (s *testServer) createGroup(t *testing.T, title, slug string) *model.Group {
	group := model.Group{Title: title, Slug: slug}
	require.Nil(t, s.db.Create(&group).Error)
	return &group
}

func (s *testServer) createPost(t *testing.T, author *model.User, text string, group *model.Group) *model.Post {
	s.postSeq++
	post := model.Post{
		AuthorID:  author.Id,
		Text:      text,
		CreatedAt: time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.postSeq) * time.Minute),
	}
	if group != nil {
		post.GroupID = &group.Id
	}
	require.Nil(t, s.db.Create(&post).Error)
	return &post
}

func (s *testServer) followCount(t *testing.T, userId, authorId string) int64 {
	var count int64
	require.Nil(t, s.db.Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", userId, authorId).
		Count(&count).Error)
	return count
}

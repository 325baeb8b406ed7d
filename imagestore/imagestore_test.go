package imagestore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromFileName(t *testing.T) {
	store := &S3ImageStore{}

	key, err := store.keyFromFileName("Photo.JPG")
	require.Nil(t, err)
	// 32 hex chars of digest plus the lowercased extension
	assert.Equal(t, 36, len(key))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	// the random component keeps two uploads of the same file apart
	other, err := store.keyFromFileName("Photo.JPG")
	require.Nil(t, err)
	assert.NotEqual(t, key, other)
}

func TestKeyFromFileNameWithoutExtension(t *testing.T) {
	store := &S3ImageStore{}

	key, err := store.keyFromFileName("photo")
	require.Nil(t, err)
	assert.Equal(t, 32, len(key))
	assert.False(t, strings.Contains(key, "."))
}

func TestNullImageStoreDiscards(t *testing.T) {
	url, err := NullImageStore{}.Upload(context.Background(), "photo.jpg", strings.NewReader("bytes"))
	assert.Nil(t, err)
	assert.Equal(t, "", url)
}

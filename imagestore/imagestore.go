package imagestore

import (
	"context"
	"io"
)

// ImageStore persists post image attachments and hands back the public
// URL to embed in the post. Storage itself is an external collaborator
// (object store plus CDN), this interface is the seam the handlers use.
type ImageStore interface {
	Upload(ctx context.Context, fileName string, body io.Reader) (string, error)
}

// NullImageStore drops uploads, used in tests and image-less deployments.
type NullImageStore struct{}

func (NullImageStore) Upload(ctx context.Context, fileName string, body io.Reader) (string, error) {
	return "", nil
}

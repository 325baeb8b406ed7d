package imagestore

import (
	"context"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rnr-capital/microblog-backend/utils"
)

const (
	DefaultS3ImageBucket = "microblog-post-images"
	DefaultUrlPrefix     = "https://images.rnr.capital/"
)

// S3ImageStore uploads post attachments to a public S3 bucket fronted by
// a CDN. The object key is derived from the original file name plus a
// random component, so two users uploading "photo.jpg" never collide.
type S3ImageStore struct {
	bucket    string
	urlPrefix string
	uploader  *s3manager.Uploader
}

func NewS3ImageStore(bucket, urlPrefix string) (*S3ImageStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(regionFromEnv()),
	})
	if err != nil {
		return nil, errors.Wrap(err, "fail to create aws session")
	}

	return &S3ImageStore{
		bucket:    bucket,
		urlPrefix: urlPrefix,
		uploader:  s3manager.NewUploader(sess),
	}, nil
}

func regionFromEnv() string {
	if region := os.Getenv("AWS_REGION"); region != "" {
		return region
	}
	return "us-west-1"
}

// S3 key is the file name
func (s *S3ImageStore) keyFromFileName(fileName string) (string, error) {
	hash, err := utils.TextToMd5Hash(fileName + uuid.New().String())
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(path.Ext(fileName))
	return hash + ext, nil
}

func (s *S3ImageStore) Upload(ctx context.Context, fileName string, body io.Reader) (string, error) {
	key, err := s.keyFromFileName(fileName)
	if err != nil {
		return "", errors.Wrap(err, "fail to generate s3 key")
	}

	_, err = s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", errors.Wrapf(err, "fail to upload %s to bucket %s", key, s.bucket)
	}

	return s.urlPrefix + key, nil
}

package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/mkravets/linkjournal/internal/server/config"
)

const presignValidity = 15 * time.Minute

// UploadService hands out presigned PUT URLs so clients upload screenshots
// and avatars straight to object storage, bypassing the API server.
type UploadService struct {
	config *sc.Config
}

func NewUploadService(config *sc.Config) *UploadService {
	return &UploadService{config: config}
}

// randomStorageKey buckets objects by date; the uuid avoids collisions and
// keeps original filenames out of the store. Only the extension survives.
func randomStorageKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%02d/%02d/%v%v", d.Year(), d.Month(), d.Day(), uuid.New(), path.Ext(filename))
}

func (s *UploadService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return s3.NewPresignClient(client), nil
}

// PresignUpload returns the storage key, a short-lived PUT URL, and the
// public URL the object will be readable at once uploaded.
func (s *UploadService) PresignUpload(ctx context.Context, filename string) (key, uploadURL, publicURL string, err error) {

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", "", err
	}

	bucket := s.config.S3Bucket
	key = randomStorageKey(filename)

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", "", "", err
	}

	publicURL = strings.TrimSuffix(s.config.S3PublicBaseURL, "/") + "/" + key
	return key, req.URL, publicURL, nil
}

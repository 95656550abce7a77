package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/mkravets/linkjournal/internal/server/config"
)

func newUploadService() *UploadService {
	return NewUploadService(&sc.Config{
		S3AccessKey:     "access",
		S3SecretKey:     "secret",
		S3Bucket:        "linkjournal",
		S3Region:        "us-east-1",
		S3BaseEndpoint:  "http://127.0.0.1:9000",
		S3PublicBaseURL: "http://127.0.0.1:9000/linkjournal/",
	})
}

func TestRandomStorageKey(t *testing.T) {
	key := randomStorageKey("screenshot.png")

	assert.True(t, strings.HasPrefix(key, "users/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	// the original filename must not survive into the key
	assert.NotContains(t, key, "screenshot")

	other := randomStorageKey("screenshot.png")
	assert.NotEqual(t, key, other)
}

// Presigning is a local signing operation, no storage backend is contacted.
func TestPresignUpload(t *testing.T) {
	svc := newUploadService()

	key, uploadURL, publicURL, err := svc.PresignUpload(context.Background(), "avatar.jpg")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.Contains(t, uploadURL, "linkjournal")
	assert.Contains(t, uploadURL, "X-Amz-Signature")
	assert.Equal(t, "http://127.0.0.1:9000/linkjournal/"+key, publicURL)
}

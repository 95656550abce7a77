// Package media uploads user files (screenshots, avatars) through the
// backend's presigned-URL flow: ask the API for a one-shot PUT URL, push
// the bytes straight to object storage, hand back the public URL.
package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/mkravets/linkjournal/internal/apperr"
	"github.com/mkravets/linkjournal/internal/client/transport"
	"github.com/mkravets/linkjournal/internal/logging"
)

// Uploader performs presigned uploads. The zero value is not usable;
// construct with NewUploader.
type Uploader struct {
	api    transport.Client
	http   *http.Client
	logger logging.Logger
}

func NewUploader(api transport.Client, logger logging.Logger) *Uploader {
	return &Uploader{
		api:    api,
		http:   &http.Client{Timeout: 2 * time.Minute},
		logger: logger,
	}
}

// Upload pushes the contents of r under the given filename and returns
// the public URL of the stored object. Any failure after the presign
// step classifies as an upload error.
func (u *Uploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	presign, err := u.api.PresignUpload(ctx, filename)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presign.UploadURL, r)
	if err != nil {
		return "", apperr.Upload(err)
	}
	req.Header.Set("Content-Type", contentTypeFor(filename))

	resp, err := u.http.Do(req)
	if err != nil {
		return "", apperr.Upload(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		u.logger.Warn(ctx, "storage rejected upload", "status", resp.Status, "key", presign.Key)
		return "", apperr.Upload(fmt.Errorf("storage answered %s: %s", resp.Status, body))
	}

	return presign.PublicURL, nil
}

func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

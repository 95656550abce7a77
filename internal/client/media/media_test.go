package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkravets/linkjournal/internal/apperr"
	"github.com/mkravets/linkjournal/internal/client/transport"
	"github.com/mkravets/linkjournal/internal/logging"
	"github.com/mkravets/linkjournal/internal/models"
)

// presignAPI stubs only the presign call; nothing else is reached.
type presignAPI struct {
	transport.Client
	resp models.PresignResponse
	err  error
}

func (p *presignAPI) PresignUpload(context.Context, string) (models.PresignResponse, error) {
	return p.resp, p.err
}

func TestUpload(t *testing.T) {
	var gotMethod, gotContentType string
	var gotBody []byte

	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer storage.Close()

	api := &presignAPI{resp: models.PresignResponse{
		Key:       "uploads/shot.png",
		UploadURL: storage.URL + "/put/shot.png",
		PublicURL: "https://cdn.example.com/shot.png",
	}}

	u := NewUploader(api, logging.NopLogger{})
	url, err := u.Upload(context.Background(), "shot.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/shot.png", url)
	require.Equal(t, http.MethodPut, gotMethod)
	require.Equal(t, "image/png", gotContentType)
	require.Equal(t, []byte("png-bytes"), gotBody)
}

func TestUpload_StorageRejects(t *testing.T) {
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer storage.Close()

	api := &presignAPI{resp: models.PresignResponse{UploadURL: storage.URL + "/put/x"}}
	u := NewUploader(api, logging.NopLogger{})

	_, err := u.Upload(context.Background(), "x.bin", strings.NewReader("data"))
	require.True(t, apperr.IsKind(err, apperr.KindUpload))
}

func TestUpload_NetworkFailureClassifiesAsUpload(t *testing.T) {
	storage := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := storage.URL
	storage.Close()

	api := &presignAPI{resp: models.PresignResponse{UploadURL: url + "/put/x"}}
	u := NewUploader(api, logging.NopLogger{})

	_, err := u.Upload(context.Background(), "x.bin", strings.NewReader("data"))
	require.True(t, apperr.IsKind(err, apperr.KindUpload))
}

func TestUpload_PresignFailurePropagates(t *testing.T) {
	api := &presignAPI{err: apperr.FromStatus(http.StatusUnauthorized, "missing token")}
	u := NewUploader(api, logging.NopLogger{})

	_, err := u.Upload(context.Background(), "x.bin", strings.NewReader("data"))
	require.True(t, apperr.IsKind(err, apperr.KindAuthentication))
}

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mkravets/linkjournal/internal/apperr"
	"github.com/mkravets/linkjournal/internal/common"
	"github.com/mkravets/linkjournal/internal/logging"
	"github.com/mkravets/linkjournal/internal/models"
)

const defaultTimeout = 15 * time.Second

// HTTPClient is the concrete Client talking JSON over HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logging.Logger
}

// NewHTTPClient builds a client for the backend at baseURL (scheme://host,
// without the /api prefix).
func NewHTTPClient(baseURL string, tokens TokenSource, logger logging.Logger) *HTTPClient {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// do executes one backend call. It is the single choke point: credential
// injection, JSON encoding, status classification, and body decoding all
// happen here and nowhere else. It returns either nil with out populated, or
// a classified *apperr.Error; it never panics across this boundary.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperr.Classify(fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperr.Classify(fmt.Errorf("build request: %w", err))
	}

	if token := c.tokens.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "err", err)
		return apperr.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr models.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		classified := apperr.FromStatus(resp.StatusCode, apiErr.Error)
		c.logger.Debug(ctx, "request rejected",
			"method", method, "path", path, "status", resp.StatusCode, "kind", classified.Kind)
		return classified
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperr.Classify(fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}

func (c *HTTPClient) ListTopics(ctx context.Context) ([]models.Topic, error) {
	var topics []models.Topic
	if err := c.do(ctx, http.MethodGet, "/api/topics", nil, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (c *HTTPClient) GetTopic(ctx context.Context, id string) (models.Topic, error) {
	var topic models.Topic
	err := c.do(ctx, http.MethodGet, "/api/topics/"+url.PathEscape(id), nil, &topic)
	return topic, err
}

func (c *HTTPClient) CreateTopic(ctx context.Context, req models.CreateTopicRequest) (models.Topic, error) {
	var topic models.Topic
	err := c.do(ctx, http.MethodPost, "/api/topics", req, &topic)
	return topic, err
}

func (c *HTTPClient) UpdateTopic(ctx context.Context, id string, req models.UpdateTopicRequest) error {
	return c.do(ctx, http.MethodPut, "/api/topics/"+url.PathEscape(id), req, nil)
}

func (c *HTTPClient) DeleteTopic(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/topics/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ListJournals(ctx context.Context) ([]models.Journal, error) {
	var journals []models.Journal
	if err := c.do(ctx, http.MethodGet, "/api/journals", nil, &journals); err != nil {
		return nil, err
	}
	return journals, nil
}

func (c *HTTPClient) ListJournalsByTopic(ctx context.Context, topicID string) ([]models.Journal, error) {
	var journals []models.Journal
	path := "/api/topics/" + url.PathEscape(topicID) + "/journals"
	if err := c.do(ctx, http.MethodGet, path, nil, &journals); err != nil {
		return nil, err
	}
	return journals, nil
}

func (c *HTTPClient) GetJournal(ctx context.Context, id string) (models.Journal, error) {
	var j models.Journal
	err := c.do(ctx, http.MethodGet, "/api/journal/"+url.PathEscape(id), nil, &j)
	return j, err
}

func (c *HTTPClient) CreateJournal(ctx context.Context, req models.CreateJournalRequest) (models.Journal, error) {
	var j models.Journal
	err := c.do(ctx, http.MethodPost, "/api/journals", req, &j)
	return j, err
}

func (c *HTTPClient) UpdateJournal(ctx context.Context, id string, req models.UpdateJournalRequest) error {
	return c.do(ctx, http.MethodPut, "/api/journal/"+url.PathEscape(id), req, nil)
}

func (c *HTTPClient) DeleteJournal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/journal/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ToggleImportant(ctx context.Context, id string) (bool, error) {
	var resp models.ToggleImportantResponse
	path := "/api/journal/" + url.PathEscape(id) + "/important"
	if err := c.do(ctx, http.MethodPut, path, nil, &resp); err != nil {
		return false, err
	}
	return resp.IsImportant, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &u)
	return u, err
}

func (c *HTTPClient) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodPost, "/api/users/signup", req, &u)
	return u, err
}

func (c *HTTPClient) UpdateAvatar(ctx context.Context, req models.UpdateAvatarRequest) (string, error) {
	var resp models.AvatarResponse
	if err := c.do(ctx, http.MethodPut, "/api/users/profile-picture", req, &resp); err != nil {
		return "", err
	}
	return resp.ProfilePicture, nil
}

func (c *HTTPClient) PresignUpload(ctx context.Context, filename string) (models.PresignResponse, error) {
	var resp models.PresignResponse
	body := map[string]string{"filename": filename}
	err := c.do(ctx, http.MethodPost, "/api/uploads/presign", body, &resp)
	return resp, err
}

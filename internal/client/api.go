package client

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

	"shrikemedia/internal/domain"
	"shrikemedia/internal/modules/comment"
	"shrikemedia/internal/modules/download"
	"shrikemedia/internal/modules/gallery"
	"shrikemedia/internal/modules/like"
)

// defaultTimeout bounds every store round-trip so a hung request surfaces as
// a retryable error instead of an infinite spinner.
const defaultTimeout = 15 * time.Second

// APIError is a decoded error envelope from the gallery backend.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// API is the typed accessor over the remote photo store. Pure data fetching,
// no state.
type API struct {
	baseURL string
	httpc   *http.Client
}

func NewAPI(baseURL string) *API {
	return &API{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	if !env.Success {
		if env.Error != nil {
			return &APIError{Code: env.Error.Code, Message: env.Error.Message}
		}
		return &APIError{Code: "UNKNOWN", Message: "request failed"}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// Event fetches a published event by slug.
func (a *API) Event(ctx context.Context, slug string) (*gallery.EventResponse, error) {
	var event gallery.EventResponse
	if err := a.do(ctx, http.MethodGet, "/api/v1/events/"+url.PathEscape(slug), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Photos fetches one pagination batch ordered by sort_order.
func (a *API) Photos(ctx context.Context, slug string, offset, limit int) (*gallery.PhotoPageResponse, error) {
	path := fmt.Sprintf("/api/v1/events/%s/photos?offset=%d&limit=%d",
		url.PathEscape(slug), offset, limit)
	var page gallery.PhotoPageResponse
	if err := a.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// LikedPhotoIDs returns which of the event's photos this device has liked.
func (a *API) LikedPhotoIDs(ctx context.Context, slug, deviceID string) ([]string, error) {
	path := fmt.Sprintf("/api/v1/events/%s/likes?device_id=%s",
		url.PathEscape(slug), url.QueryEscape(deviceID))
	var out struct {
		PhotoIDs []string `json:"photo_ids"`
	}
	if err := a.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.PhotoIDs, nil
}

// Like creates the like relation for this device.
func (a *API) Like(ctx context.Context, photoID, deviceID string) (*like.LikeResult, error) {
	var result like.LikeResult
	err := a.do(ctx, http.MethodPost, "/api/v1/photos/"+url.PathEscape(photoID)+"/likes",
		map[string]string{"device_id": deviceID}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Unlike removes the like relation for this device.
func (a *API) Unlike(ctx context.Context, photoID, deviceID string) (*like.LikeResult, error) {
	path := fmt.Sprintf("/api/v1/photos/%s/likes/%s",
		url.PathEscape(photoID), url.PathEscape(deviceID))
	var result like.LikeResult
	if err := a.do(ctx, http.MethodDelete, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Comments fetches the visible guestbook, newest first.
func (a *API) Comments(ctx context.Context, slug string) ([]domain.PhotoComment, error) {
	var comments []domain.PhotoComment
	err := a.do(ctx, http.MethodGet, "/api/v1/events/"+url.PathEscape(slug)+"/comments", nil, &comments)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// SubmitComment posts a guestbook entry. A nil comment with nil error means
// the submission was silently gated server-side.
func (a *API) SubmitComment(ctx context.Context, slug string, req comment.SubmitCommentRequest) (*domain.PhotoComment, error) {
	var cm domain.PhotoComment
	err := a.do(ctx, http.MethodPost, "/api/v1/events/"+url.PathEscape(slug)+"/comments", req, &cm)
	if err != nil {
		return nil, err
	}
	if cm.ID == "" {
		return nil, nil
	}
	return &cm, nil
}

// CreateDownloadSession submits the queue for a full-resolution export link.
func (a *API) CreateDownloadSession(ctx context.Context, req download.CreateSessionRequest) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := a.do(ctx, http.MethodPost, "/api/v1/downloads", req, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// ResolveDownload resolves a token page.
func (a *API) ResolveDownload(ctx context.Context, token string) (*download.SessionView, error) {
	var view download.SessionView
	if err := a.do(ctx, http.MethodGet, "/api/v1/downloads/"+url.PathEscape(token), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// WebDownloadURL is the instant-download endpoint for a photo. The server
// falls back to redirecting at the original object, so following this URL
// always yields image bytes when the object exists.
func (a *API) WebDownloadURL(photoID string) string {
	return a.baseURL + "/api/v1/photos/" + url.PathEscape(photoID) + "/web"
}

// FetchBytes downloads a raw resource (image bytes, archives).
func (a *API) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

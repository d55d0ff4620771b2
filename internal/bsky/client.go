package bsky

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrMissingToken is returned when a call needs a bearer token and none was given.
var ErrMissingToken = errors.New("missing bearer token")

// APIError is returned for any non-2xx XRPC response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bad status %d: %s", e.StatusCode, e.Body)
}

// Client is a client for the Bluesky (atproto) XRPC API of a PDS.
type Client struct {
	BaseURL string
	client  *http.Client
}

// NewClient creates a new Bluesky client. A zero timeout means no client timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// CreateSession logs in with an identifier (handle or email) and app password.
func (c *Client) CreateSession(ctx context.Context, identifier, password string) (*SessionTokens, error) {
	body, err := json.Marshal(map[string]string{
		"identifier": identifier,
		"password":   password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var out SessionTokens
	if err := c.do(ctx, "com.atproto.server.createSession", "", "application/json", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshSession exchanges a refresh token for new session tokens.
// RefreshJwt in the result may be empty if the server did not rotate it.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*SessionTokens, error) {
	if refreshToken == "" {
		return nil, ErrMissingToken
	}
	var out SessionTokens
	if err := c.do(ctx, "com.atproto.server.refreshSession", refreshToken, "", nil, &out); err != nil {
		return nil, err
	}
	if out.AccessJwt == "" {
		return nil, fmt.Errorf("refresh response has no access token")
	}
	return &out, nil
}

// UploadBlob uploads raw bytes and returns the blob reference.
func (c *Client) UploadBlob(ctx context.Context, accessToken string, data []byte, mimeType string) (*Blob, error) {
	if accessToken == "" {
		return nil, ErrMissingToken
	}
	var out struct {
		Blob *Blob `json:"blob"`
	}
	if err := c.do(ctx, "com.atproto.repo.uploadBlob", accessToken, mimeType, data, &out); err != nil {
		return nil, err
	}
	if out.Blob == nil {
		return nil, fmt.Errorf("upload response has no blob")
	}
	if out.Blob.Type == "" {
		out.Blob.Type = blobTypeIdentifier
	}
	return out.Blob, nil
}

// CreatePost writes a post record into repo (the account DID).
func (c *Client) CreatePost(ctx context.Context, accessToken, repo string, record *PostRecord) (*CreateRecordOutput, error) {
	if accessToken == "" {
		return nil, ErrMissingToken
	}
	body, err := json.Marshal(CreateRecordRequest{
		Repo:       repo,
		Collection: CollectionPost,
		Record:     record,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var out CreateRecordOutput
	if err := c.do(ctx, "com.atproto.repo.createRecord", accessToken, "application/json", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do POSTs body to the XRPC method and decodes a 2xx JSON response into out.
func (c *Client) do(ctx context.Context, method, token, contentType string, body []byte, out any) error {
	url := fmt.Sprintf("%s/xrpc/%s", c.BaseURL, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

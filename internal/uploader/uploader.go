// Package uploader talks to the external image hosting collaborator.
package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ozanatli/microsite-backend/internal/config"
)

var ErrNotConfigured = errors.New("image upload is not configured")

// Client uploads an image and returns its public URL.
type Client interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// HTTPClient posts multipart uploads to the hosting service.
type HTTPClient struct {
	http      *resty.Client
	uploadURL string
}

func NewHTTPClient(cfg *config.Config) *HTTPClient {
	client := resty.New().
		SetTimeout(60 * time.Second).
		SetHeader("Accept", "application/json")
	if cfg.UploadAPIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.UploadAPIKey)
	}
	return &HTTPClient{
		http:      client,
		uploadURL: cfg.UploadURL,
	}
}

type uploadResponse struct {
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

func (c *HTTPClient) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if c.uploadURL == "" {
		return "", ErrNotConfigured
	}

	var result uploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(data)).
		SetResult(&result).
		Post(c.uploadURL)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("upload %s: status %d: %s", filename, resp.StatusCode(), result.Error)
	}
	if result.URL == "" {
		return "", fmt.Errorf("upload %s: empty url in response", filename)
	}
	return result.URL, nil
}

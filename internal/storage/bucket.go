package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gh0stlung/Agri-Store/internal/errx"
	"github.com/gh0stlung/Agri-Store/internal/logx"
)

// Bucket uploads binary blobs to an object-storage REST endpoint and hands
// back durable public URLs. Only the admin image-upload path uses it.
type Bucket struct {
	baseURL string
	bucket  string
	apiKey  string
	client  *http.Client
}

// New builds a bucket client. An empty baseURL yields an unconfigured
// bucket whose uploads fail with a config notice instead of a panic.
func New(baseURL, bucket, apiKey string) *Bucket {
	return &Bucket{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether an endpoint was provided.
func (b *Bucket) Configured() bool {
	return b.baseURL != ""
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Upload stores the blob under name and returns its public URL.
func (b *Bucket) Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	if !b.Configured() {
		return "", errx.Unconfigured("object storage")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", b.baseURL, b.bucket, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := b.client.Do(req)
	if err != nil {
		logx.Error().Err(err).Str("object", name).Msg("image upload failed")
		return "", errx.New(err, http.StatusBadGateway, "upload failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			logx.Error().Int("status", resp.StatusCode).Str("object", name).Str("message", apiErr.Message).Msg("storage API rejected upload")
			return "", errx.New(fmt.Errorf("storage API: %s", apiErr.Message), http.StatusBadGateway, "upload rejected")
		}
		logx.Error().Int("status", resp.StatusCode).Str("object", name).Msg("storage API returned non-success status")
		return "", errx.New(fmt.Errorf("storage API status %d", resp.StatusCode), http.StatusBadGateway, "upload rejected")
	}

	return b.PublicURL(name), nil
}

// PublicURL is the durable, unauthenticated URL for an uploaded object.
func (b *Bucket) PublicURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", b.baseURL, b.bucket, name)
}

package uploads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BlobStore uploads a file and returns its public URL. The preview/confirm
// step depends on this interface so tests can swap in an in-memory store.
type BlobStore interface {
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)
}

// StorageClient defines what we need from the storage HTTP API.
type StorageClient interface {
	UploadObject(ctx context.Context, bucket, path, contentType string, body []byte) error
}

// HTTPClient is a StorageClient backed by the Supabase storage HTTP API.
type HTTPClient struct {
	BaseURL   string
	SecretKey string
	Client    *http.Client
}

func (c *HTTPClient) UploadObject(ctx context.Context, bucket, path, contentType string, body []byte) error {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if c.BaseURL == "" {
		return fmt.Errorf("storage: STORAGE_URL is not set")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("storage: STORAGE_SECRET_KEY is not set")
	}
	base := strings.TrimRight(c.BaseURL, "/")
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", base, bucket, escapePath(path))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	// Match @supabase/supabase-js: both apikey and Authorization Bearer (same key)
	req.Header.Set("apikey", c.SecretKey)
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("storage request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		bodyStr := string(respBody)
		// 400/403 with a JWS error means the anon key was sent where the
		// service_role key is required.
		if resp.StatusCode == 400 || resp.StatusCode == 403 {
			if strings.Contains(bodyStr, "Invalid Compact JWS") || strings.Contains(bodyStr, "Unauthorized") {
				return fmt.Errorf("storage requires the service_role key (secret), not the anon key: set STORAGE_SECRET_KEY from Dashboard → Project Settings → API (raw body: %s)", bodyStr)
			}
		}
		return fmt.Errorf("storage error: status %d body: %s", resp.StatusCode, bodyStr)
	}
	return nil
}

// Service uploads product media and returns public URLs.
type Service struct {
	Client     StorageClient
	StorageURL string
	Bucket     string
}

// Upload writes the object and returns its public URL.
// Callers build collision-free paths (user id + purpose + timestamp + name).
func (s *Service) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if err := s.Client.UploadObject(ctx, s.Bucket, path, contentType, data); err != nil {
		return "", err
	}
	publicBase := strings.TrimRight(s.StorageURL, "/")
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", publicBase, s.Bucket, escapePath(path)), nil
}

// escapePath escapes each segment but keeps the slashes.
func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BlobStore downloads raw resume bytes from their storage location.
type BlobStore interface {
	Download(ctx context.Context, resumeURL string) ([]byte, error)
}

type httpBlobStore struct {
	client      *http.Client
	gatewayBase string
}

// NewHTTPBlobStore returns a BlobStore that resolves both supported resume
// location schemes: the bucket-prefixed form "gs://bucket/object" (rewritten
// against gatewayBase) and direct HTTP(S) storage-gateway URLs.
func NewHTTPBlobStore(gatewayBase string) BlobStore {
	return &httpBlobStore{
		client:      &http.Client{Timeout: 60 * time.Second},
		gatewayBase: strings.TrimRight(gatewayBase, "/"),
	}
}

func (s *httpBlobStore) Download(ctx context.Context, resumeURL string) ([]byte, error) {
	downloadURL, err := s.resolve(resumeURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download resume: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download resume: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("resume download returned no data")
	}

	return data, nil
}

func (s *httpBlobStore) resolve(resumeURL string) (string, error) {
	parsed, err := url.Parse(resumeURL)
	if err != nil {
		return "", fmt.Errorf("invalid resume URL %q: %w", resumeURL, err)
	}

	switch parsed.Scheme {
	case "gs":
		// gs://bucket/path/to/resume.pdf
		object := strings.TrimPrefix(parsed.Path, "/")
		if parsed.Host == "" || object == "" {
			return "", fmt.Errorf("invalid bucket resume URL %q", resumeURL)
		}
		return fmt.Sprintf("%s/%s/%s", s.gatewayBase, parsed.Host, object), nil
	case "http", "https":
		return resumeURL, nil
	default:
		return "", fmt.Errorf("unsupported resume URL scheme %q", parsed.Scheme)
	}
}

package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBlobStoreResolve(t *testing.T) {
	store := NewHTTPBlobStore("https://storage.example.com/").(*httpBlobStore)

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "bucket url rewritten against gateway",
			input:    "gs://resumes/2026/ada.pdf",
			expected: "https://storage.example.com/resumes/2026/ada.pdf",
		},
		{
			name:     "https passthrough",
			input:    "https://cdn.example.com/ada.pdf",
			expected: "https://cdn.example.com/ada.pdf",
		},
		{
			name:    "bucket url without object",
			input:   "gs://resumes",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			input:   "ftp://resumes/ada.pdf",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.resolve(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("resolve(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("resolve(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBlobStoreDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resumes/ada.pdf" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("%PDF-1.4 content"))
	}))
	defer server.Close()

	store := NewHTTPBlobStore(server.URL)

	data, err := store.Download(context.Background(), "gs://resumes/ada.pdf")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if string(data) != "%PDF-1.4 content" {
		t.Errorf("downloaded %q", data)
	}
}

func TestBlobStoreDownloadNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer server.Close()

	store := NewHTTPBlobStore(server.URL)

	if _, err := store.Download(context.Background(), "gs://resumes/missing.pdf"); err == nil {
		t.Fatal("expected error for missing object")
	}
}

func TestBlobStoreDownloadEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store := NewHTTPBlobStore(server.URL)

	if _, err := store.Download(context.Background(), "gs://resumes/empty.pdf"); err == nil {
		t.Fatal("expected error for empty resume body")
	}
}

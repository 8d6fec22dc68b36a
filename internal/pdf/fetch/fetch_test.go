package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRemote(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"http://example.com/doc.pdf", true},
		{"https://example.com/doc.pdf", true},
		{"/tmp/doc.pdf", false},
		{"doc.pdf", false},
		{"ftp://example.com/doc.pdf", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRemote(tt.path))
		})
	}
}

func TestFetcher_FetchToTemp(t *testing.T) {
	content := []byte("%PDF-1.4\nfake body\n%%EOF")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(content)
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, 1024)

	path, cleanup, err := fetcher.FetchToTemp(context.Background(), server.URL)
	require.NoError(t, err)
	require.NotNil(t, cleanup)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, data)

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "cleanup should remove the temp file")
}

func TestFetcher_FetchToTemp_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, 1024)
	_, _, err := fetcher.FetchToTemp(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestFetcher_FetchToTemp_TooLargeByHeader(t *testing.T) {
	body := make([]byte, 2048)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, 1024)
	_, _, err := fetcher.FetchToTemp(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestFetcher_FetchToTemp_TooLargeDuringRead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Chunked response without Content-Length.
		flusher, ok := w.(http.Flusher)
		if !ok {
			t.Error("response writer does not support flushing")
			return
		}
		chunk := make([]byte, 512)
		for i := 0; i < 4; i++ {
			_, _ = w.Write(chunk)
			flusher.Flush()
		}
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, 1024)
	_, _, err := fetcher.FetchToTemp(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestFetcher_FetchToTemp_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, 1024)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := fetcher.FetchToTemp(ctx, server.URL)
	require.Error(t, err)
}

func TestFetcher_FetchToTemp_InvalidURL(t *testing.T) {
	fetcher := NewFetcher(5*time.Second, 1024)
	_, _, err := fetcher.FetchToTemp(context.Background(), "http://127.0.0.1:1/doc.pdf")
	require.Error(t, err)
}

package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetcher_Run_Success(t *testing.T) {
	var userAgent, accept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte("<rss></rss>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), FetcherConfig{UserAgent: "AI Hub Test/1.0"})

	data, err := fetcher.Run(context.Background(), Source{Key: "test", URL: server.URL})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if string(data) != "<rss></rss>" {
		t.Errorf("Unexpected body: %s", data)
	}
	if userAgent != "AI Hub Test/1.0" {
		t.Errorf("Expected configured user agent, got: %s", userAgent)
	}
	if accept == "" {
		t.Error("Expected Accept header to be set")
	}
}

func TestFetcher_Run_ServerErrorRetried(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), FetcherConfig{Attempts: 2})

	_, err := fetcher.Run(context.Background(), Source{Key: "broken", URL: server.URL})
	if err == nil {
		t.Fatal("Expected error for HTTP 500")
	}

	var fetchErr *SourceFetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected SourceFetchError, got: %T", err)
	}
	if fetchErr.Source != "broken" {
		t.Errorf("Expected source key 'broken', got: %s", fetchErr.Source)
	}
	if fetchErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got: %d", fetchErr.StatusCode)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("Expected 2 attempts, got: %d", got)
	}
}

func TestFetcher_Run_ClientErrorNotRetried(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), FetcherConfig{Attempts: 3})

	_, err := fetcher.Run(context.Background(), Source{Key: "gone", URL: server.URL})

	var fetchErr *SourceFetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected SourceFetchError, got: %v", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got: %d", fetchErr.StatusCode)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("Expected a single attempt, got: %d", got)
	}
}

func TestFetcher_Run_RecoversAfterRetry(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), FetcherConfig{Attempts: 2})

	data, err := fetcher.Run(context.Background(), Source{Key: "flaky", URL: server.URL})
	if err != nil {
		t.Fatalf("Expected retry to succeed, got: %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("Unexpected body: %s", data)
	}
}

func TestFetcher_Run_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), FetcherConfig{Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := fetcher.Run(context.Background(), Source{Key: "slow", URL: server.URL})
	if err == nil {
		t.Fatal("Expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Expected fetch to give up quickly, took %v", elapsed)
	}

	var fetchErr *SourceFetchError
	if !errors.As(err, &fetchErr) || fetchErr.StatusCode != 0 {
		t.Errorf("Expected SourceFetchError without status, got: %v", err)
	}
}

func TestFetcher_Run_InvalidURL(t *testing.T) {
	fetcher := NewFetcher(nil, FetcherConfig{})

	if _, err := fetcher.Run(context.Background(), Source{Key: "bad", URL: "://missing-scheme"}); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestFetcher_Page(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/article":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body><p>Article</p></body></html>"))
		default:
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF"))
		}
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), FetcherConfig{})
	source := Source{Key: "pages", URL: server.URL}

	data, err := fetcher.Page(context.Background(), source, server.URL+"/article")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected page body")
	}

	if _, err := fetcher.Page(context.Background(), source, server.URL+"/paper.pdf"); err == nil {
		t.Error("Expected error for non-HTML page")
	}
}

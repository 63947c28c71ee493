// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient("http://localhost")

	if client == nil || client.Client == nil {
		t.Fatal("expected non-nil *HTTPClient with embedded resty client")
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient("http://a")
	client2 := NewHTTPClient("http://b")

	if client1.Client == client2.Client {
		t.Fatal("expected independent resty clients")
	}
}

func TestHTTPClient_SendsUserAgentToBaseURL(t *testing.T) {
	var gotAgent, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	resp, err := NewHTTPClient(srv.URL).R().Get("/ping")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode())
	}
	if gotAgent != UserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotAgent, UserAgent)
	}
	if gotPath != "/ping" {
		t.Fatalf("path = %q, want /ping", gotPath)
	}
}

// TestHTTPClient_NoRetries verifies that a 5xx answer is not replayed.
func TestHTTPClient_NoRetries(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL).R().Get("/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

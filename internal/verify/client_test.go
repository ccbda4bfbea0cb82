package verify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/molscan/molscan/internal/cache"
	"github.com/molscan/molscan/internal/model"
)

func newTestClient(serverURL string, c cache.Cache) *PubChemClient {
	cfg := model.DefaultConfig()
	cfg.Verify.BaseURL = serverURL
	cfg.Verify.RatePerSec = 1000 // don't slow tests down
	cfg.Verify.Burst = 1000
	return NewPubChemClient(cfg.Verify, cfg.HTTP, c, time.Minute)
}

func TestPubChemClient_Lookup(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte("C1=CC=CC=C1\n"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	canonical, err := client.Lookup(context.Background(), "c1ccccc1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if canonical != "C1=CC=CC=C1" {
		t.Errorf("Expected C1=CC=CC=C1, got %q", canonical)
	}
	if !strings.Contains(gotPath, "/compound/smiles/") || !strings.Contains(gotPath, "/property/CanonicalSMILES/TXT") {
		t.Errorf("Unexpected request path: %s", gotPath)
	}
}

func TestPubChemClient_EscapesCandidate(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte("CC(=O)O"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	if _, err := client.Lookup(context.Background(), "CC(=O)/C=C/O"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(gotPath, "%2F") {
		t.Errorf("Candidate slashes must be escaped, path: %s", gotPath)
	}
}

func TestPubChemClient_NotFoundIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "PUGREST.NotFound", http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	if _, err := client.Lookup(context.Background(), "notachemical"); err == nil {
		t.Error("Expected error for 404 response")
	}
}

func TestPubChemClient_EmptyBodyIsEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with no body
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	canonical, err := client.Lookup(context.Background(), "CCO")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if canonical != "" {
		t.Errorf("Expected empty canonical, got %q", canonical)
	}
}

func TestPubChemClient_EmptyCandidateRejectedLocally(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	if _, err := client.Lookup(context.Background(), "   "); err == nil {
		t.Error("Expected error for blank candidate")
	}
	if calls != 0 {
		t.Errorf("Blank candidate must not reach the service, got %d calls", calls)
	}
}

func TestPubChemClient_MemoizesLookups(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte("CCO"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, cache.NewMemoryCache(time.Minute, time.Minute))

	for i := 0; i < 3; i++ {
		canonical, err := client.Lookup(context.Background(), "CCO")
		if err != nil {
			t.Fatalf("Lookup %d failed: %v", i, err)
		}
		if canonical != "CCO" {
			t.Errorf("Lookup %d: expected CCO, got %q", i, canonical)
		}
	}

	if calls != 1 {
		t.Errorf("Expected 1 upstream call with cache enabled, got %d", calls)
	}
}

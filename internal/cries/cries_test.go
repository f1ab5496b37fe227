package cries

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestURL(t *testing.T) {
	c := NewClient("https://example.com/cries/%d.mp3", time.Second)
	if got := c.URL(25); got != "https://example.com/cries/25.mp3" {
		t.Errorf("unexpected URL: %s", got)
	}
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	c := NewClient(server.URL+"/cries/%d.mp3", 5*time.Second)
	data, err := c.Fetch(context.Background(), 1)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != "mp3-bytes" {
		t.Errorf("unexpected body: %q", data)
	}
}

func TestFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL+"/cries/%d.mp3", 5*time.Second)
	if _, err := c.Fetch(context.Background(), 99999); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestFetchReleasesContextOnSettle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	c := NewClient(server.URL+"/cries/%d.mp3", 5*time.Second)
	if _, err := c.Fetch(context.Background(), 1); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// A settled fetch must not hold its cancel func until the next fetch
	c.mu.Lock()
	held := c.cancel != nil
	c.mu.Unlock()
	if held {
		t.Error("completed fetch left its context cancel in place")
	}
}

func TestMostRecentRequestWins(t *testing.T) {
	var slowStarted atomic.Bool
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/cries/1.mp3" {
			slowStarted.Store(true)
			select {
			case <-release:
			case <-r.Context().Done():
				return // cancelled, as expected
			}
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()
	defer close(release)

	c := NewClient(server.URL+"/cries/%d.mp3", 5*time.Second)

	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Fetch(context.Background(), 1)
		firstErr <- err
	}()

	// Wait for the slow request to be in flight
	for i := 0; i < 100 && !slowStarted.Load(); i++ {
		time.Sleep(5 * time.Millisecond)
	}
	if !slowStarted.Load() {
		t.Fatal("first fetch never reached the server")
	}

	// Second fetch cancels the first
	data, err := c.Fetch(context.Background(), 2)
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("unexpected body: %q", data)
	}

	select {
	case err := <-firstErr:
		if err == nil {
			t.Error("expected the superseded fetch to fail")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("superseded fetch did not settle")
	}
}

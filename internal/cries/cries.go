// Package cries fetches per-Pokemon audio clips.
//
// Playback policy is "most recent request wins": starting a new fetch
// cancels any clip still downloading. Decoding and actually playing the
// bytes is the front end's job.
package cries

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/abelbrown/pokedex/internal/logging"
)

// Client fetches cry clips from a templated URL.
type Client struct {
	urlTemplate string // expects one %d verb for the Pokemon id
	client      *http.Client

	mu     sync.Mutex
	cancel context.CancelFunc // cancels the previous in-flight fetch
	seq    uint64             // identifies the fetch that owns cancel
}

// NewClient creates a Client. urlTemplate must contain a %d verb.
func NewClient(urlTemplate string, timeout time.Duration) *Client {
	return &Client{
		urlTemplate: urlTemplate,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// URL returns the clip URL for a Pokemon id.
func (c *Client) URL(id int) string {
	return fmt.Sprintf(c.urlTemplate, id)
}

// Fetch downloads the clip for id, cancelling any previous fetch still
// in flight. Returns the raw audio bytes.
func (c *Client) Fetch(ctx context.Context, id int) ([]byte, error) {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel() // previous request loses
	}
	c.cancel = cancel
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	// Release this fetch's context when it settles, unless a newer fetch
	// has already taken over the cancel slot.
	defer func() {
		c.mu.Lock()
		if c.seq == seq {
			c.cancel = nil
		}
		c.mu.Unlock()
		cancel()
	}()

	url := c.URL(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch cry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch cry: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read cry: %w", err)
	}

	logging.Debug("Cry fetched", "id", id, "bytes", len(data))
	return data, nil
}

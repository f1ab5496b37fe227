// Package pokeapi is the HTTP client for the PokeAPI REST service.
//
// The client performs single one-shot requests and decodes them into typed
// records. It holds no mutable state besides the shared http.Client and an
// optional outbound rate limiter, so it is safe to call from many
// goroutines at once - each call succeeds or fails independently.
package pokeapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
)

const userAgent = "Pokedex/0.1 (https://github.com/abelbrown/pokedex)"

// json decodes like encoding/json but considerably faster, which matters
// when a refresh decodes ~1000 record bodies.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client fetches resources from a PokeAPI-compatible service.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter // nil = unpaced
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit paces outbound requests to rps requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a Client for the given base URL with a per-request
// timeout.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// ListPokemon fetches the bulk listing of up to limit entry references.
// This is the one call whose failure aborts a whole catalog load, so
// errors here are never swallowed.
func (c *Client) ListPokemon(ctx context.Context, limit int) ([]Ref, error) {
	url := fmt.Sprintf("%s/pokemon?limit=%d", c.baseURL, limit)

	var list listResponse
	if err := c.getJSON(ctx, url, &list); err != nil {
		return nil, err
	}
	return list.Results, nil
}

// FetchPokemon fetches and decodes a single record by its resource URL.
func (c *Client) FetchPokemon(ctx context.Context, url string) (Pokemon, error) {
	var p Pokemon
	if err := c.getJSON(ctx, url, &p); err != nil {
		return Pokemon{}, err
	}
	return p, nil
}

// FetchEvolutionChain resolves the evolution chain for a Pokemon id.
// Two dependent requests: the species record holds the chain locator,
// the chain resource holds the tree.
func (c *Client) FetchEvolutionChain(ctx context.Context, id int) (EvolutionChain, error) {
	speciesURL := fmt.Sprintf("%s/pokemon-species/%d", c.baseURL, id)

	var species speciesResponse
	if err := c.getJSON(ctx, speciesURL, &species); err != nil {
		return EvolutionChain{}, err
	}

	var chain EvolutionChain
	if err := c.getJSON(ctx, species.EvolutionChain.URL, &chain); err != nil {
		return EvolutionChain{}, err
	}
	return chain, nil
}

// getJSON performs one GET and decodes the body into v.
func (c *Client) getJSON(ctx context.Context, url string, v interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &RequestError{URL: url, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &RequestError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return &RequestError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		return &RequestError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{URL: url, Err: err}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{URL: url, Err: err}
	}
	return nil
}

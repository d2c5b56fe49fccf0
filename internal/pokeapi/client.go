package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

// Resource is a named reference returned by list endpoints.
type Resource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type resourceList struct {
	Count   int        `json:"count"`
	Results []Resource `json:"results"`
}

// Pokemon is the subset of the PokeAPI detail payload used by the app.
type Pokemon struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Sprites Sprites     `json:"sprites"`
	Types   []TypeSlot  `json:"types"`
	Stats   []StatEntry `json:"stats"`
}

type Sprites struct {
	FrontDefault *string `json:"front_default"`
}

type TypeSlot struct {
	Slot int      `json:"slot"`
	Type Resource `json:"type"`
}

type StatEntry struct {
	BaseStat int      `json:"base_stat"`
	Stat     Resource `json:"stat"`
}

type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient builds a client for baseURL. requestsPerSecond <= 0 disables
// client-side rate limiting.
func NewClient(baseURL string, requestsPerSecond float64, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (c *Client) ListPokemon(ctx context.Context, limit int) ([]Resource, error) {
	if limit < 1 {
		limit = 20
	}

	q := make(url.Values)
	q.Set("limit", strconv.Itoa(limit))

	var list resourceList
	if err := c.getJSON(ctx, c.baseURL+"/pokemon?"+q.Encode(), "pokemon list", &list); err != nil {
		return nil, err
	}
	return list.Results, nil
}

// GetPokemon fetches a detail document by its absolute URL, as handed out by
// ListPokemon.
func (c *Client) GetPokemon(ctx context.Context, detailURL string) (Pokemon, error) {
	if strings.TrimSpace(detailURL) == "" {
		return Pokemon{}, fmt.Errorf("pokemon detail URL is empty")
	}
	var p Pokemon
	if err := c.getJSON(ctx, detailURL, "pokemon detail", &p); err != nil {
		return Pokemon{}, err
	}
	return p, nil
}

func (c *Client) getJSON(ctx context.Context, fullURL, resource string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s rate limit wait: %w", resource, err)
	}

	req, err := c.newRequest(ctx, http.MethodGet, fullURL)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s failed with status %d: %s", resource, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, fullURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

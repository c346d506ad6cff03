package defillama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tkhs0813/airdroplens/internal/data"
	"github.com/tkhs0813/airdroplens/internal/models"
	"github.com/tkhs0813/airdroplens/internal/utils/request"
)

const defaultCacheTTL = 6 * time.Hour

// Client fetches protocol and funding-round listings from the public
// DeFiLlama API, serving repeated calls from a time-boxed file cache.
type Client struct {
	baseURL    string
	httpClient *resty.Client
	cache      *fileCache
}

// NewClient creates a DeFiLlama client. cacheDir may be empty to disable
// response caching; a zero ttl uses the 6 hour default.
func NewClient(cacheDir string, ttl time.Duration) (*Client, error) {
	c := &Client{
		baseURL:    "https://api.llama.fi",
		httpClient: request.Request,
	}

	if cacheDir != "" {
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		cache, err := newFileCache(cacheDir, ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache dir: %w", err)
		}
		c.cache = cache
	}

	return c, nil
}

func (c *Client) Name() string {
	return "defillama"
}

// GetProtocols implements the data.DataCollector interface.
func (c *Client) GetProtocols(ctx context.Context) ([]models.Protocol, error) {
	body, err := c.fetch(ctx, "/protocols")
	if err != nil {
		return nil, err
	}

	var protocols []models.Protocol
	if err := json.Unmarshal(body, &protocols); err != nil {
		return nil, fmt.Errorf("failed to decode protocols response: %w", err)
	}

	if len(protocols) == 0 {
		return nil, fmt.Errorf("protocols endpoint: %w", data.ErrNoData)
	}

	return protocols, nil
}

// GetRaises implements the data.DataCollector interface.
func (c *Client) GetRaises(ctx context.Context) ([]models.FundingRound, error) {
	body, err := c.fetch(ctx, "/raises")
	if err != nil {
		return nil, err
	}

	var result struct {
		Raises []models.FundingRound `json:"raises"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode raises response: %w", err)
	}

	if len(result.Raises) == 0 {
		return nil, fmt.Errorf("raises endpoint: %w", data.ErrNoData)
	}

	return result.Raises, nil
}

// ClearCache implements the data.DataCollector interface.
func (c *Client) ClearCache() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Clear()
}

// fetch returns the raw body for an endpoint, preferring the cache when it
// holds a fresh copy. Transient failures are retried by the shared resty
// client with backoff.
func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	if c.cache != nil {
		if body := c.cache.Load(endpoint); body != nil {
			return body, nil
		}
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(c.baseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode(), endpoint)
	}

	body := resp.Body()
	if c.cache != nil {
		if err := c.cache.Store(endpoint, body); err != nil {
			return nil, fmt.Errorf("failed to cache %s response: %w", endpoint, err)
		}
	}

	return body, nil
}

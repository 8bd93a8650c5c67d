// Package hub is a minimal client for the Hugging Face datasets-server API.
// It exposes paged row access over plain HTTP; authentication is optional
// and only needed for gated datasets.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL  = "https://datasets-server.huggingface.co"
	defaultPageSize = 100
)

// Config holds the datasets-server client configuration
type Config struct {
	BaseURL       string        `yaml:"base_url"`
	Token         string        `yaml:"token"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxRetries    int           `yaml:"max_retries"`
	RetryDelay    time.Duration `yaml:"retry_delay"`
	PageCacheSize int           `yaml:"page_cache_size"`
	UserAgent     string        `yaml:"user_agent"`
}

// DefaultConfig returns a default client configuration. The token is read
// from HF_TOKEN when present.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       defaultBaseURL,
		Token:         os.Getenv("HF_TOKEN"),
		Timeout:       60 * time.Second,
		MaxRetries:    3,
		RetryDelay:    2 * time.Second,
		PageCacheSize: 64,
		UserAgent:     "benchkit",
	}
}

// RowsRef identifies one split of one dataset on the Hub
type RowsRef struct {
	Dataset string
	Config  string
	Split   string
}

func (r RowsRef) String() string {
	if r.Config != "" {
		return fmt.Sprintf("%s/%s:%s", r.Dataset, r.Config, r.Split)
	}
	return fmt.Sprintf("%s:%s", r.Dataset, r.Split)
}

// Page is one window of raw rows plus the split's total row count
type Page struct {
	Rows  []json.RawMessage
	Total int
}

type pageKey struct {
	ref    RowsRef
	offset int
	length int
}

// Client fetches rows from the datasets-server with retries and a small
// LRU cache of already-fetched pages
type Client struct {
	config     *Config
	httpClient *http.Client
	pages      *lru.Cache[pageKey, *Page]
}

// NewClient creates a new datasets-server client
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.PageCacheSize <= 0 {
		config.PageCacheSize = 64
	}

	pages, err := lru.New[pageKey, *Page](config.PageCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		pages: pages,
	}, nil
}

// rowsResponse mirrors the datasets-server /rows payload
type rowsResponse struct {
	Rows []struct {
		RowIdx int             `json:"row_idx"`
		Row    json.RawMessage `json:"row"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Rows fetches one page of raw rows for the given split. Pages are cached,
// so re-reading the same window does not hit the network again.
func (c *Client) Rows(ctx context.Context, ref RowsRef, offset, length int) (*Page, error) {
	key := pageKey{ref: ref, offset: offset, length: length}
	if page, ok := c.pages.Get(key); ok {
		return page, nil
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.config.RetryDelay * time.Duration(attempt)):
			}
			log.Debug().
				Str("ref", ref.String()).
				Int("offset", offset).
				Int("attempt", attempt).
				Err(lastErr).
				Msg("datasets-server request failed, retrying")
		}

		page, retryable, err := c.fetchRows(ctx, ref, offset, length)
		if err == nil {
			c.pages.Add(key, page)
			return page, nil
		}

		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("all retry attempts failed, last error: %w", lastErr)
}

func (c *Client) fetchRows(ctx context.Context, ref RowsRef, offset, length int) (*Page, bool, error) {
	u, err := url.Parse(c.config.BaseURL + "/rows")
	if err != nil {
		return nil, false, fmt.Errorf("invalid base URL: %w", err)
	}

	q := url.Values{}
	q.Set("dataset", ref.Dataset)
	if ref.Config != "" {
		q.Set("config", ref.Config)
	}
	q.Set("split", ref.Split)
	q.Set("offset", strconv.Itoa(offset))
	q.Set("length", strconv.Itoa(length))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("failed to make API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// 429 and server errors are worth retrying, other client errors are not
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500

		var errResp errorResponse
		if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.Error != "" {
			return nil, retryable, fmt.Errorf("datasets-server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return nil, retryable, fmt.Errorf("datasets-server error (%d): %s", resp.StatusCode, string(body))
	}

	var rowsResp rowsResponse
	if err := json.Unmarshal(body, &rowsResp); err != nil {
		return nil, false, fmt.Errorf("failed to parse rows response: %w", err)
	}

	page := &Page{
		Rows:  make([]json.RawMessage, len(rowsResp.Rows)),
		Total: rowsResp.NumRowsTotal,
	}
	for i, row := range rowsResp.Rows {
		page.Rows[i] = row.Row
	}

	return page, false, nil
}

// Package search implements the client for the upstream job search API.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/techjobs/harvester/internal/harvest"
)

// Config controls the search client.
type Config struct {
	// Endpoint is the fixed search URL.
	Endpoint string
	// HitsPerPage is the page size requested from the API.
	HitsPerPage int
	// Timeout bounds one search request end to end.
	Timeout time.Duration
}

// Client calls the search endpoint and decodes its job pages.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

type searchRequest struct {
	HitsPerPage int           `json:"hitsPerPage"`
	Page        int           `json:"page"`
	Query       string        `json:"query"`
	Filters     searchFilters `json:"filters"`
}

type searchFilters struct {
	JobFunctions []string `json:"job_functions"`
}

type searchResponse struct {
	Results struct {
		Count int           `json:"count"`
		Jobs  []harvest.Job `json:"jobs"`
	} `json:"results"`
}

// New builds a Client.
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.HitsPerPage <= 0 {
		cfg.HitsPerPage = 12
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newHTTPTransport(),
		},
		logger: logger,
	}
}

// Search POSTs one (industry, page) query and decodes the jobs array.
// Every failure mode (non-200 status, empty body, malformed JSON, missing
// results path) surfaces as an error; the caller treats it as the end of
// this industry's pagination.
func (c *Client) Search(ctx context.Context, industry string, page int) (harvest.SearchPage, error) {
	body, err := json.Marshal(searchRequest{
		HitsPerPage: c.cfg.HitsPerPage,
		Page:        page,
		Query:       "",
		Filters:     searchFilters{JobFunctions: []string{industry}},
	})
	if err != nil {
		return harvest.SearchPage{}, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return harvest.SearchPage{}, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return harvest.SearchPage{}, fmt.Errorf("search request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("close search response body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return harvest.SearchPage{}, fmt.Errorf("search returned HTTP %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return harvest.SearchPage{}, fmt.Errorf("read search response: %w", err)
	}
	if len(payload) == 0 {
		return harvest.SearchPage{}, fmt.Errorf("empty search response body")
	}

	var decoded searchResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return harvest.SearchPage{}, fmt.Errorf("decode search response: %w", err)
	}

	return harvest.SearchPage{
		Count: decoded.Results.Count,
		Jobs:  decoded.Results.Jobs,
	}, nil
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}

package cogsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAPIVersion = "2023-11-01"
	defaultTimeout    = 30 * time.Second

	apiKeyHeader = "api-key"
)

// Client is the cogsearch SDK entry point. It talks to a hosted search
// service addressed by endpoint URL and authenticated by API key.
type Client struct {
	endpoint   string
	apiKey     string
	apiVersion string
	httpc      *http.Client
	obs        *observer
}

// New creates a Client for the service at endpoint.
func New(endpoint, apiKey string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		apiVersion: defaultAPIVersion,
		timeout:    defaultTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if endpoint == "" {
		return nil, errors.New("cogsearch: endpoint required")
	}
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("cogsearch: invalid endpoint %q", endpoint)
	}
	if apiKey == "" {
		return nil, errors.New("cogsearch: api key required")
	}

	httpc := cfg.httpClient
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		apiVersion: cfg.apiVersion,
		httpc:      httpc,
		obs:        obs,
	}, nil
}

// Indexes returns the index management service.
func (c *Client) Indexes() *IndexesService {
	return &IndexesService{c: c, obs: c.obs}
}

// Documents returns the document service for a given index.
func (c *Client) Documents(index string) *DocumentsService {
	return &DocumentsService{index: index, c: c, obs: c.obs}
}

// Search returns the search service for a given index.
func (c *Client) Search(index string) *SearchService {
	return &SearchService{index: index, c: c, obs: c.obs}
}

// do executes one REST call. body and out may be nil; error responses
// are mapped to *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	u := fmt.Sprintf("%s%s?api-version=%s", c.endpoint, path, url.QueryEscape(c.apiVersion))

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return apiError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiError decodes the service error envelope into an *APIError.
func apiError(resp *http.Response) error {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(raw, &envelope)

	msg := envelope.Error.Message
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = resp.Status
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       envelope.Error.Code,
		Message:    msg,
	}
}

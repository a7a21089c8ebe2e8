// Package client provides the trade API HTTP client: order list queries,
// per-order detail fetches with boundary normalization, and the mark-paid
// operation.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/p2pdesk/orders-dashboard/pkg/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for trade API client operations.
var (
	tradeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trade_api_requests_total",
		Help: "Total trade API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	tradeRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trade_api_request_duration_seconds",
		Help:    "Trade API request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"endpoint"})

	tradeErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trade_api_errors_total",
		Help: "Total trade API errors by class",
	}, []string{"class"})
)

// Config holds the client configuration.
type Config struct {
	// BaseURL of the trade API, e.g. "https://api.example.com/v1".
	BaseURL string

	// Tokens supplies the bearer credential. REQUIRED.
	Tokens auth.TokenSource

	// Timeout per request.
	Timeout time.Duration

	// HTTPClient overrides the underlying transport (for testing).
	HTTPClient *http.Client
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(baseURL string, tokens auth.TokenSource) Config {
	return Config{
		BaseURL: baseURL,
		Tokens:  tokens,
		Timeout: 15 * time.Second,
	}
}

// Client is the trade API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     auth.TokenSource
	logger     zerolog.Logger
}

// New creates a new trade API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tokens:     cfg.Tokens,
		logger:     log.With().Str("component", "trade-client").Logger(),
	}, nil
}

// FetchDetail fetches and normalizes the detail record for one order.
// Failure modes: auth.ErrUnauthenticated before any network activity,
// *RequestFailedError for a non-success status, ErrUnavailable-wrapped errors
// for transport failures and undecodable payloads. No retry is performed at
// this layer.
func (c *Client) FetchDetail(ctx context.Context, id string) (*OrderDetail, error) {
	endpoint := "/orders/" + url.PathEscape(id)

	var raw RawOrderDetail
	if err := c.getJSON(ctx, endpoint, nil, &raw); err != nil {
		return nil, err
	}

	detail := raw.Normalize()
	if detail.ID == "" {
		// Some list/detail mismatches omit the id in the body; the record is
		// keyed by the id it was fetched with.
		detail.ID = id
	}

	c.logger.Debug().
		Str("order_id", id).
		Int("payment_terms", len(detail.PaymentTermList)).
		Msg("Fetched order detail")

	return &detail, nil
}

// ListQuery selects a page of orders.
type ListQuery struct {
	Page   int
	Size   int
	Status string
	Side   string
}

// Values encodes the query for the list endpoint. The encoding is
// deterministic, so it doubles as a cache key for list pages.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Side != "" {
		v.Set("side", q.Side)
	}
	return v
}

// OrderStub is the minimal order representation returned by the list endpoint.
type OrderStub struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
	Side   string `json:"side,omitempty"`
}

// OrderPage is one page of order stubs.
type OrderPage struct {
	Items []OrderStub `json:"items"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
}

// IDs extracts the order identifiers of the page, in page order.
func (p *OrderPage) IDs() []string {
	ids := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// ListOrders queries one page of orders.
func (c *Client) ListOrders(ctx context.Context, q ListQuery) (*OrderPage, error) {
	var page OrderPage
	if err := c.getJSON(ctx, "/orders", q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// MarkPaid marks one order as paid.
func (c *Client) MarkPaid(ctx context.Context, id string) error {
	endpoint := "/orders/" + url.PathEscape(id) + "/pay"

	req, err := c.newRequest(ctx, http.MethodPost, endpoint)
	if err != nil {
		return err
	}

	resp, err := c.do(req, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.requestFailed(resp, endpoint)
	}

	c.logger.Info().Str("order_id", id).Msg("Order marked paid")
	return nil
}

// getJSON performs a GET against an endpoint and decodes the response body.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	target := endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodGet, target)
	if err != nil {
		return err
	}

	resp, err := c.do(req, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.requestFailed(resp, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		tradeErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Undecodable response body")
		return fmt.Errorf("%w: decode %s: %v", ErrUnavailable, endpoint, err)
	}

	return nil
}

// newRequest builds a request with the bearer credential attached.
// Fails with auth.ErrUnauthenticated before touching the network.
func (c *Client) newRequest(ctx context.Context, method, target string) (*http.Request, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do executes the request, recording duration and outcome metrics.
func (c *Client) do(req *http.Request, endpoint string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	tradeRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		tradeErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		tradeRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Trade API request failed")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	tradeRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

// requestFailed drains the response and builds a RequestFailedError.
func (c *Client) requestFailed(resp *http.Response, endpoint string) error {
	reqErr := &RequestFailedError{
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint,
		Message:    resp.Status,
	}

	tradeErrorsTotal.WithLabelValues(string(reqErr.Class())).Inc()
	c.logger.Warn().
		Str("endpoint", endpoint).
		Int("status_code", resp.StatusCode).
		Str("error_class", string(reqErr.Class())).
		Msg("Trade API non-success status")

	return reqErr
}

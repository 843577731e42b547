// Package binance provides a client for the Binance public market data API
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/coinfolio/coinfolio/internal/common"
)

const (
	DefaultBaseURL   = "https://api.binance.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
	quoteCurrency    = "USDT"
)

// Client fetches spot ticker prices from Binance. It implements
// interfaces.PriceClient: assets are quoted against USDT, and symbols with
// no listed USDT pair are simply absent from the result map.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Binance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Binance API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// tickerPrice is one entry of /api/v3/ticker/price. Binance serializes
// prices as strings.
type tickerPrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "coinfolio/"+common.GetVersion())

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Binance API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Quote returns current unit prices keyed by asset symbol. It fetches the
// full spot ticker list in one request and maps each requested symbol to its
// {SYMBOL}USDT pair. Symbols without a USDT listing are absent from the
// result; stablecoin symbols equal to the quote currency are priced at 1.
func (c *Client) Quote(ctx context.Context, symbols []string) (map[string]float64, error) {
	if len(symbols) == 0 {
		return map[string]float64{}, nil
	}

	var tickers []tickerPrice
	if err := c.get(ctx, "/api/v3/ticker/price", nil, &tickers); err != nil {
		return nil, fmt.Errorf("failed to fetch ticker prices: %w", err)
	}

	pairs := make(map[string]float64, len(tickers))
	for _, t := range tickers {
		price, err := strconv.ParseFloat(t.Price, 64)
		if err != nil {
			continue
		}
		pairs[t.Symbol] = price
	}

	prices := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		upper := strings.ToUpper(strings.TrimSpace(symbol))
		if upper == "" {
			continue
		}
		if upper == quoteCurrency {
			prices[symbol] = 1
			continue
		}
		if price, ok := pairs[upper+quoteCurrency]; ok {
			prices[symbol] = price
		}
	}

	c.logger.Debug().
		Int("requested", len(symbols)).
		Int("quoted", len(prices)).
		Msg("Binance quotes resolved")

	return prices, nil
}

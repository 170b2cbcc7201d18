// Package awesomeapi is a small client for the AwesomeAPI currency-quote
// endpoint (https://economia.awesomeapi.com.br), which requires no API key.
package awesomeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const maxResponseSizeBytes = 2 << 20

type Config struct {
	URL     string        `split_words:"true" default:"https://economia.awesomeapi.com.br"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.URL)
	if baseURL == "" {
		return nil, errors.New("awesomeapi url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// Quote is the parsed result of one currency lookup.
type Quote struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

type quotePayload struct {
	Bid string `json:"bid"`
}

// Quote fetches the current rate for a currency pair. The response maps the
// pair key to an object whose bid field carries the rate; some deployments key
// the pair with the dash, some without, so both forms are accepted.
func (c *Client) Quote(ctx context.Context, from, to string) (Quote, error) {
	fromCode := strings.ToUpper(strings.TrimSpace(from))
	toCode := strings.ToUpper(strings.TrimSpace(to))
	if fromCode == "" || toCode == "" {
		return Quote{}, errors.New("both currency codes are required")
	}

	pair := fromCode + "-" + toCode
	endpoint := fmt.Sprintf("%s/json/last/%s", c.baseURL, pair)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("build quote request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("execute quote request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return Quote{}, fmt.Errorf("read quote response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Quote{}, fmt.Errorf("quote http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed map[string]quotePayload
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Quote{}, fmt.Errorf("decode quote response: %w", err)
	}

	payload, ok := parsed[pair]
	if !ok {
		payload, ok = parsed[fromCode+toCode]
	}
	if !ok {
		return Quote{}, fmt.Errorf("currency pair %s not found in response", pair)
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(payload.Bid))
	if err != nil {
		return Quote{}, fmt.Errorf("parse bid %q: %w", payload.Bid, err)
	}

	return Quote{From: fromCode, To: toCode, Rate: rate}, nil
}

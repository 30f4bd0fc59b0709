// Package quotes talks to the Alpha Vantage query endpoint: the full listing (CSV) and
// per-symbol latest quotes (JSON).
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/iafilius/StockListViewer/src/logging"
	"github.com/iafilius/StockListViewer/src/types"
)

const queryPath = "/query"

// Client fetches listings and quotes. No retries, no rate limiting.
type Client struct {
	http   *resty.Client
	apiKey string
}

// NewClient builds a client against baseURL (e.g. https://www.alphavantage.co).
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("User-Agent", "stocklistviewer/1.0")
	return &Client{http: rc, apiKey: apiKey}
}

// FetchListing returns the raw LISTING_STATUS body. The status code is not checked:
// Alpha Vantage reports most errors as 200 with a JSON body, which ParseListing rejects.
func (c *Client) FetchListing(ctx context.Context) (string, error) {
	start := time.Now()
	defer logging.TimeTrack(start, "listing fetch")
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "LISTING_STATUS",
			"apikey":   c.apiKey,
		}).
		Get(queryPath)
	if err != nil {
		return "", fmt.Errorf("fetch listing: %w", err)
	}
	logging.Debugf("listing status=%d bytes=%d", resp.StatusCode(), len(resp.Body()))
	return resp.String(), nil
}

// globalQuote mirrors the part of the GLOBAL_QUOTE response we read.
type globalQuote struct {
	GlobalQuote *struct {
		Symbol string  `json:"01. symbol"`
		Price  *string `json:"05. price"`
	} `json:"Global Quote"`
}

// FetchQuote returns the latest price for symbol. A response without the price field is
// not an error: it yields a QuoteUnavailable quote carrying the "N/A" sentinel. Transport
// and decoding failures yield a QuoteFailed quote and a non-nil error.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (types.Quote, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "GLOBAL_QUOTE",
			"symbol":   symbol,
			"apikey":   c.apiKey,
		}).
		Get(queryPath)
	if err != nil {
		err = fmt.Errorf("fetch quote %s: %w", symbol, err)
		return types.Quote{Symbol: symbol, Status: types.QuoteFailed, Err: err}, err
	}
	return decodeQuote(symbol, resp.Body())
}

func decodeQuote(symbol string, body []byte) (types.Quote, error) {
	var gq globalQuote
	if err := json.Unmarshal(body, &gq); err != nil {
		err = fmt.Errorf("decode quote %s: %w", symbol, err)
		return types.Quote{Symbol: symbol, Status: types.QuoteFailed, Err: err}, err
	}
	if gq.GlobalQuote == nil || gq.GlobalQuote.Price == nil {
		logging.Debugf("quote %s: no price field", symbol)
		return types.Quote{Symbol: symbol, Status: types.QuoteUnavailable, Price: types.Unavailable}, nil
	}
	raw := strings.TrimSpace(*gq.GlobalQuote.Price)
	q := types.Quote{Symbol: symbol, Status: types.QuotePriced, Price: raw}
	if v, err := decimal.NewFromString(raw); err == nil {
		q.Value = v
	} else {
		// keep the text, the table shows what the API sent
		logging.Warnf("quote %s: non-numeric price %q", symbol, raw)
	}
	return q, nil
}

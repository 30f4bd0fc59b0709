package quotes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iafilius/StockListViewer/src/types"
)

const sampleListing = "symbol,name,exchange,assetType,ipoDate,delistingDate,status\r\n" +
	"A,Agilent Technologies Inc,NYSE,Stock,1999-11-18,null,Active\r\n" +
	"AA,\"Alcoa Corp, Inc\",NYSE,Stock,2016-10-18,null,Active\r\n" +
	"AAA,AXS FIRST PRIORITY CLO BOND ETF,NYSE ARCA,ETF,2020-09-09,null,Active\r\n"

func newTestServer(t *testing.T, h http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL+"/", "TESTKEY", 5*time.Second)
}

func TestFetchListing_SendsFunctionAndKey(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query" {
			t.Errorf("path=%q want /query", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("function") != "LISTING_STATUS" || q.Get("apikey") != "TESTKEY" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(sampleListing))
	})
	body, err := c.FetchListing(context.Background())
	if err != nil {
		t.Fatalf("fetch listing: %v", err)
	}
	if body != sampleListing {
		t.Fatalf("body mismatch: %q", body)
	}
}

func TestFetchListing_ErrorStatusStillReturnsBody(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"Information":"rate limit"}`))
	})
	body, err := c.FetchListing(context.Background())
	if err != nil {
		t.Fatalf("status codes are not checked, got err %v", err)
	}
	if !strings.Contains(body, "rate limit") {
		t.Fatalf("expected error body passthrough, got %q", body)
	}
	if _, err := ParseListing(body); !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("error body should fail parsing with ErrMissingColumn, got %v", err)
	}
}

func TestFetchQuote_Outcomes(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("function") != "GLOBAL_QUOTE" || q.Get("apikey") != "TESTKEY" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		switch q.Get("symbol") {
		case "IBM":
			w.Write([]byte(`{"Global Quote":{"01. symbol":"IBM","05. price":"189.5000"}}`))
		case "EMPTY":
			w.Write([]byte(`{"Global Quote":{}}`))
		case "NOTE":
			w.Write([]byte(`{"Note":"Thank you for using Alpha Vantage!"}`))
		case "ODD":
			w.Write([]byte(`{"Global Quote":{"05. price":"n/a"}}`))
		default:
			w.Write([]byte(`<html>oops`))
		}
	})
	cases := []struct {
		symbol  string
		status  types.QuoteStatus
		display string
		wantErr bool
	}{
		{"IBM", types.QuotePriced, "189.5000", false},
		{"EMPTY", types.QuoteUnavailable, types.Unavailable, false},
		{"NOTE", types.QuoteUnavailable, types.Unavailable, false},
		{"ODD", types.QuotePriced, "n/a", false},
		{"HTML", types.QuoteFailed, types.Unavailable, true},
	}
	for _, tc := range cases {
		q, err := c.FetchQuote(context.Background(), tc.symbol)
		if (err != nil) != tc.wantErr {
			t.Fatalf("%s: err=%v wantErr=%v", tc.symbol, err, tc.wantErr)
		}
		if q.Status != tc.status {
			t.Fatalf("%s: status=%v want %v", tc.symbol, q.Status, tc.status)
		}
		if q.Display() != tc.display {
			t.Fatalf("%s: display=%q want %q", tc.symbol, q.Display(), tc.display)
		}
		if q.Symbol != tc.symbol {
			t.Fatalf("%s: symbol not carried: %q", tc.symbol, q.Symbol)
		}
	}
	q, _ := c.FetchQuote(context.Background(), "IBM")
	if q.Value.String() != "189.5" {
		t.Fatalf("decimal value = %s want 189.5", q.Value.String())
	}
}

func TestFetchQuote_NetworkFailure(t *testing.T) {
	srv, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()
	q, err := c.FetchQuote(context.Background(), "IBM")
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if q.Status != types.QuoteFailed || q.Err == nil {
		t.Fatalf("expected failed quote with reason, got %+v", q)
	}
}

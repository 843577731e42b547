package binance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coinfolio/coinfolio/internal/common"
)

func newTickerServer(t *testing.T, tickers []tickerPrice) (*httptest.Server, *string) {
	t.Helper()
	var capturedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tickers)
	}))
	t.Cleanup(srv.Close)
	return srv, &capturedPath
}

func TestQuote_SendsVersionedUserAgent(t *testing.T) {
	var capturedAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]tickerPrice{})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(WithBaseURL(srv.URL))
	if _, err := client.Quote(context.Background(), []string{"BTC"}); err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	want := "coinfolio/" + common.GetVersion()
	if capturedAgent != want {
		t.Errorf("User-Agent = %q, want %q", capturedAgent, want)
	}
}

func TestQuote_MapsSymbolsToUSDTPairs(t *testing.T) {
	srv, capturedPath := newTickerServer(t, []tickerPrice{
		{Symbol: "BTCUSDT", Price: "43250.10"},
		{Symbol: "ETHUSDT", Price: "2310.55"},
		{Symbol: "BTCEUR", Price: "39900.00"},
	})

	client := NewClient(WithBaseURL(srv.URL))
	prices, err := client.Quote(context.Background(), []string{"BTC", "eth"})
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	if *capturedPath != "/api/v3/ticker/price" {
		t.Errorf("expected path /api/v3/ticker/price, got %s", *capturedPath)
	}
	if got := prices["BTC"]; got != 43250.10 {
		t.Errorf("BTC price = %v, want 43250.10", got)
	}
	if got := prices["eth"]; got != 2310.55 {
		t.Errorf("eth price = %v, want 2310.55 (symbol matching is case-insensitive)", got)
	}
}

func TestQuote_MissingPairAbsentFromResult(t *testing.T) {
	srv, _ := newTickerServer(t, []tickerPrice{
		{Symbol: "BTCUSDT", Price: "43250.10"},
	})

	client := NewClient(WithBaseURL(srv.URL))
	prices, err := client.Quote(context.Background(), []string{"BTC", "OBSCURECOIN"})
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	if _, ok := prices["OBSCURECOIN"]; ok {
		t.Error("symbol without a USDT pair must be absent, not zero")
	}
	if _, ok := prices["BTC"]; !ok {
		t.Error("one missing symbol must not drop the others")
	}
}

func TestQuote_StablecoinQuoteCurrency(t *testing.T) {
	srv, _ := newTickerServer(t, []tickerPrice{})

	client := NewClient(WithBaseURL(srv.URL))
	prices, err := client.Quote(context.Background(), []string{"USDT"})
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if got := prices["USDT"]; got != 1 {
		t.Errorf("USDT price = %v, want 1", got)
	}
}

func TestQuote_EmptySymbolList(t *testing.T) {
	client := NewClient(WithBaseURL("http://127.0.0.1:0"))
	prices, err := client.Quote(context.Background(), nil)
	if err != nil {
		t.Fatalf("Quote with no symbols should not call the API: %v", err)
	}
	if len(prices) != 0 {
		t.Errorf("expected empty map, got %v", prices)
	}
}

func TestQuote_APIErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"code":-1003,"msg":"Too many requests."}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Quote(context.Background(), []string{"BTC"})
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestQuote_UnparseablePriceSkipped(t *testing.T) {
	srv, _ := newTickerServer(t, []tickerPrice{
		{Symbol: "BTCUSDT", Price: "not-a-number"},
		{Symbol: "ETHUSDT", Price: "2310.55"},
	})

	client := NewClient(WithBaseURL(srv.URL))
	prices, err := client.Quote(context.Background(), []string{"BTC", "ETH"})
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if _, ok := prices["BTC"]; ok {
		t.Error("unparseable price should drop the pair, not zero it")
	}
	if got := prices["ETH"]; got != 2310.55 {
		t.Errorf("ETH price = %v, want 2310.55", got)
	}
}

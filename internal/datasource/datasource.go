// Package datasource fetches the USD→VND quote from public web pages.
// It defines the Fetcher interface and implements it with a plain HTTP
// scraper (goquery) and a headless Chrome scraper (chromedp).
package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher returns the textual exchange-rate quote shown on a page,
// e.g. "25,430.50". Parsing is left to ParseQuote.
type Fetcher interface {
	// Name returns the human-readable name of this source.
	Name() string

	// FetchRate retrieves the quote text. It blocks until the page is loaded
	// or ctx is done.
	FetchRate(ctx context.Context) (string, error)
}

// Default quote page and the element holding the rate.
const (
	DefaultQuoteURL = "https://www.google.com/finance/quote/USD-VND"
	DefaultSelector = "div.YMlKec.fxKbKc"
)

// --- Sentinel errors ---

// ErrElementNotFound is returned when the quote element is absent or empty.
var ErrElementNotFound = errors.New("quote element not found on page")

// ErrBadQuote is returned when the quote text is not a positive number.
var ErrBadQuote = errors.New("malformed quote")

// ErrHTTP wraps an HTTP error with status code.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// --- Shared HTTP client helpers ---

// DefaultUserAgent is the user agent string used for page requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// NewHTTPClient returns a client with the given overall request timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// doGet performs a GET request with the given URL and headers, returning the response body.
// The caller is responsible for closing the returned ReadCloser.
func doGet(ctx context.Context, client *http.Client, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "text/html, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s: %w", url, err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &ErrHTTP{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	return resp.Body, nil
}

package datasource

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// GoogleFinance implements Fetcher by downloading the quote page over HTTP
// and reading the rate element out of the server-rendered HTML.
type GoogleFinance struct {
	url      string
	selector string
	client   *http.Client
}

// NewGoogleFinance creates a scraper for url. Empty arguments fall back to
// DefaultQuoteURL, DefaultSelector and a 30s client.
func NewGoogleFinance(url, selector string, client *http.Client) *GoogleFinance {
	if url == "" {
		url = DefaultQuoteURL
	}
	if selector == "" {
		selector = DefaultSelector
	}
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &GoogleFinance{url: url, selector: selector, client: client}
}

// Name returns the data source name.
func (g *GoogleFinance) Name() string { return "Google Finance" }

// FetchRate downloads the page and returns the text of the first element
// matching the selector.
func (g *GoogleFinance) FetchRate(ctx context.Context) (string, error) {
	doc, err := g.fetchPage(ctx)
	if err != nil {
		return "", err
	}

	sel := doc.Find(g.selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrElementNotFound, g.selector)
	}

	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrElementNotFound, g.selector)
	}
	return text, nil
}

// fetchPage downloads and parses the quote page.
func (g *GoogleFinance) fetchPage(ctx context.Context) (*goquery.Document, error) {
	body, err := doGet(ctx, g.client, g.url, map[string]string{
		"Accept": "text/html",
	})
	if err != nil {
		return nil, fmt.Errorf("google finance: %w", err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse google finance HTML: %w", err)
	}
	return doc, nil
}

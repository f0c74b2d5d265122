package datasource

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"
)

// Browser implements Fetcher with a headless Chrome instance, for pages
// that only render the quote after scripts run. A fresh browser is started
// and torn down on every call.
type Browser struct {
	url       string
	selector  string
	allocOpts []chromedp.ExecAllocatorOption
}

// NewBrowser creates a headless-browser scraper. Extra allocator options are
// appended to chromedp's defaults (which already include headless mode).
func NewBrowser(url, selector string, opts ...chromedp.ExecAllocatorOption) *Browser {
	if url == "" {
		url = DefaultQuoteURL
	}
	if selector == "" {
		selector = DefaultSelector
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts, chromedp.UserAgent(DefaultUserAgent))
	allocOpts = append(allocOpts, opts...)

	return &Browser{url: url, selector: selector, allocOpts: allocOpts}
}

// Name returns the data source name.
func (b *Browser) Name() string { return "Google Finance (headless)" }

// FetchRate launches the browser, waits for the selector and returns its
// text content. Cancelling ctx kills the browser.
func (b *Browser) FetchRate(ctx context.Context) (string, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, b.allocOpts...)
	defer cancelAlloc()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var text string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(b.url),
		chromedp.WaitReady(b.selector, chromedp.ByQuery),
		chromedp.TextContent(b.selector, &text, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("headless browser %s: %w", b.url, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrElementNotFound, b.selector)
	}
	return text, nil
}

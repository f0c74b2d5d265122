package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

const quotePage = `<!DOCTYPE html>
<html><body>
  <main>
    <div class="zzDege">US Dollar to Vietnamese Dong</div>
    <div class="rPF6Lc"><div class="YMlKec fxKbKc">25,430.50</div></div>
    <div class="YMlKec">not the rate</div>
  </main>
</body></html>`

func newQuoteServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != DefaultUserAgent {
			t.Errorf("User-Agent: got %q, want %q", ua, DefaultUserAgent)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ── GoogleFinance ──

func TestGoogleFinanceFetchRate(t *testing.T) {
	srv := newQuoteServer(t, http.StatusOK, quotePage)
	g := NewGoogleFinance(srv.URL, "", srv.Client())

	got, err := g.FetchRate(context.Background())
	if err != nil {
		t.Fatalf("FetchRate() error: %v", err)
	}
	if got != "25,430.50" {
		t.Errorf("FetchRate() = %q, want %q", got, "25,430.50")
	}
}

func TestGoogleFinanceMissingElement(t *testing.T) {
	srv := newQuoteServer(t, http.StatusOK, `<html><body><p>consent required</p></body></html>`)
	g := NewGoogleFinance(srv.URL, "", srv.Client())

	_, err := g.FetchRate(context.Background())
	if !errors.Is(err, ErrElementNotFound) {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}
}

func TestGoogleFinanceEmptyElement(t *testing.T) {
	srv := newQuoteServer(t, http.StatusOK, `<div class="YMlKec fxKbKc">   </div>`)
	g := NewGoogleFinance(srv.URL, "", srv.Client())

	_, err := g.FetchRate(context.Background())
	if !errors.Is(err, ErrElementNotFound) {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}
}

func TestGoogleFinanceHTTPError(t *testing.T) {
	srv := newQuoteServer(t, http.StatusTooManyRequests, "slow down")
	g := NewGoogleFinance(srv.URL, "", srv.Client())

	_, err := g.FetchRate(context.Background())
	var httpErr *ErrHTTP
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *ErrHTTP, got %v", err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode: got %d, want %d", httpErr.StatusCode, http.StatusTooManyRequests)
	}
	if httpErr.Body != "slow down" {
		t.Errorf("Body: got %q", httpErr.Body)
	}
}

func TestGoogleFinanceCancelledContext(t *testing.T) {
	srv := newQuoteServer(t, http.StatusOK, quotePage)
	g := NewGoogleFinance(srv.URL, "", srv.Client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.FetchRate(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGoogleFinanceCustomSelector(t *testing.T) {
	srv := newQuoteServer(t, http.StatusOK, `<span id="rate">24,100</span>`)
	g := NewGoogleFinance(srv.URL, "#rate", srv.Client())

	got, err := g.FetchRate(context.Background())
	if err != nil {
		t.Fatalf("FetchRate() error: %v", err)
	}
	if got != "24,100" {
		t.Errorf("FetchRate() = %q, want %q", got, "24,100")
	}
}

func TestGoogleFinanceDefaults(t *testing.T) {
	g := NewGoogleFinance("", "", nil)
	if g.url != DefaultQuoteURL {
		t.Errorf("url: got %q, want %q", g.url, DefaultQuoteURL)
	}
	if g.selector != DefaultSelector {
		t.Errorf("selector: got %q, want %q", g.selector, DefaultSelector)
	}
	if g.client == nil || g.client.Timeout != 30*time.Second {
		t.Errorf("client: expected 30s default timeout")
	}
}

// ── ParseQuote ──

func TestParseQuote(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"25,430.50", 25430.50},
		{"25430.5", 25430.5},
		{" 26,001.00 ", 26001},
		{"1,234,567.89", 1234567.89},
		{"25 430.50", 25430.50},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuote(tt.input)
			if err != nil {
				t.Fatalf("ParseQuote(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseQuote(%q) = %f, want %f", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseQuoteRejects(t *testing.T) {
	for _, input := range []string{"", "   ", "N/A", "0", "-25,000", "Inf", "NaN", "1.2.3"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseQuote(input); !errors.Is(err, ErrBadQuote) {
				t.Errorf("ParseQuote(%q): expected ErrBadQuote, got %v", input, err)
			}
		})
	}
}

// ── Browser ──

// Requires a local Chrome; enabled with VNDRATE_BROWSER_TEST=1.
func TestBrowserFetchRate(t *testing.T) {
	if os.Getenv("VNDRATE_BROWSER_TEST") == "" {
		t.Skip("set VNDRATE_BROWSER_TEST=1 to run headless Chrome tests")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><div id="root"></div>
<script>document.getElementById('root').innerHTML = '<div class="YMlKec fxKbKc">25,430.50</div>';</script>
</body></html>`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	got, err := NewBrowser(srv.URL, "").FetchRate(ctx)
	if err != nil {
		t.Fatalf("FetchRate() error: %v", err)
	}
	if got != "25,430.50" {
		t.Errorf("FetchRate() = %q, want %q", got, "25,430.50")
	}
}

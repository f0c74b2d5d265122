// Package rate decides when the cached USD→VND rate can be reused and
// refreshes it from a datasource.Fetcher when it cannot.
package rate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/seenimoa/vndrate/internal/datasource"
	"github.com/seenimoa/vndrate/internal/store"
	"github.com/seenimoa/vndrate/pkg/models"
)

// ErrFetch wraps any failure to obtain or parse a fresh quote.
var ErrFetch = errors.New("fetch exchange rate")

// ErrCacheCorrupt wraps any failure to read the persisted record.
var ErrCacheCorrupt = errors.New("exchange rate cache is unreadable")

// Manager owns the cached record.
type Manager struct {
	store     store.Store
	fetcher   datasource.Fetcher
	now       func() time.Time
	threshold time.Duration
	logger    *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// NewManager creates a manager over st that refreshes from f.
func NewManager(st store.Store, f datasource.Fetcher, opts ...Option) *Manager {
	m := &Manager{
		store:     st,
		fetcher:   f,
		now:       time.Now,
		threshold: StalenessThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CurrentRate returns the cached rate if it is fresh, otherwise fetches,
// persists and returns a new one.
//
// A record that cannot be read yields ErrCacheCorrupt and no fetch is made.
func (m *Manager) CurrentRate(ctx context.Context) (float64, error) {
	rec, err := m.read(ctx)
	if err != nil {
		return 0, err
	}

	switch Decide(rec, m.now(), m.threshold) {
	case Fresh:
		m.logger.Debug("using cached exchange rate", "rate", rec.Rate, "last_update", rec.LastUpdate)
		return rec.Rate, nil
	case Stale:
		m.logger.Info("The data is too old and needs updating.", "last_update", rec.LastUpdate)
	default:
		m.logger.Info("This is the first launch.")
	}

	return m.refresh(ctx, rec)
}

// Refresh fetches and persists a new rate regardless of the cached one.
// An unreadable record is overwritten.
func (m *Manager) Refresh(ctx context.Context) (float64, error) {
	prev, err := m.store.Read(ctx)
	if err != nil {
		m.logger.Warn("overwriting unreadable exchange rate cache", "error", err)
		prev = nil
	}
	return m.refresh(ctx, prev)
}

// Status returns the cached record and how CurrentRate would treat it,
// without fetching.
func (m *Manager) Status(ctx context.Context) (*models.CachedRate, Decision, error) {
	rec, err := m.read(ctx)
	if err != nil {
		return nil, Miss, err
	}
	return rec, Decide(rec, m.now(), m.threshold), nil
}

func (m *Manager) read(ctx context.Context) (*models.CachedRate, error) {
	rec, err := m.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheCorrupt, err)
	}
	return rec, nil
}

// refresh fetches a quote and overwrites the record. last_update never
// moves backwards relative to prev.
func (m *Manager) refresh(ctx context.Context, prev *models.CachedRate) (float64, error) {
	text, err := m.fetcher.FetchRate(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w from %s: %w", ErrFetch, m.fetcher.Name(), err)
	}

	value, err := datasource.ParseQuote(text)
	if err != nil {
		return 0, fmt.Errorf("%w from %s: %w", ErrFetch, m.fetcher.Name(), err)
	}

	now := m.now()
	if prev != nil && now.Before(prev.LastUpdate) {
		now = prev.LastUpdate
	}

	rec := models.CachedRate{Rate: value, LastUpdate: now}
	if err := m.store.Write(ctx, rec); err != nil {
		return 0, fmt.Errorf("persist exchange rate: %w", err)
	}

	m.logger.Info("exchange rate updated", "source", m.fetcher.Name(), "rate", value)
	return value, nil
}

// Package store persists the single cached exchange rate record.
// Backends share one JSON document layout so a record written by one
// can be read by another.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/seenimoa/vndrate/pkg/models"
)

// Store reads and writes the cached rate record.
// Read returns (nil, nil) when no record has been written yet.
type Store interface {
	Read(ctx context.Context) (*models.CachedRate, error)
	Write(ctx context.Context, rec models.CachedRate) error
}

// ErrCorrupt is returned when a persisted record exists but cannot be decoded.
var ErrCorrupt = errors.New("cached rate record is corrupt")

// TimestampLayout is the on-disk format of last_update (microsecond precision, local time).
const TimestampLayout = "2006-01-02 15:04:05.000000"

// parseLayout accepts any number of fractional digits after the seconds.
const parseLayout = "2006-01-02 15:04:05"

type document struct {
	ExchangeRate *float64 `json:"exchange_rate"`
	LastUpdate   string   `json:"last_update"`
}

// encode renders rec as the pretty-printed JSON document.
func encode(rec models.CachedRate) ([]byte, error) {
	if rec.Rate <= 0 || math.IsInf(rec.Rate, 0) || math.IsNaN(rec.Rate) {
		return nil, fmt.Errorf("refusing to store non-positive rate %v", rec.Rate)
	}
	rate := rec.Rate
	data, err := json.MarshalIndent(document{
		ExchangeRate: &rate,
		LastUpdate:   rec.LastUpdate.In(time.Local).Format(TimestampLayout),
	}, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode cached rate: %w", err)
	}
	return append(data, '\n'), nil
}

// decode parses a JSON document. Every failure wraps ErrCorrupt.
func decode(data []byte) (*models.CachedRate, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.ExchangeRate == nil {
		return nil, fmt.Errorf("%w: missing exchange_rate", ErrCorrupt)
	}
	if *doc.ExchangeRate <= 0 {
		return nil, fmt.Errorf("%w: exchange_rate %v is not positive", ErrCorrupt, *doc.ExchangeRate)
	}
	if doc.LastUpdate == "" {
		return nil, fmt.Errorf("%w: missing last_update", ErrCorrupt)
	}
	ts, err := time.ParseInLocation(parseLayout, doc.LastUpdate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: last_update: %v", ErrCorrupt, err)
	}
	return &models.CachedRate{Rate: *doc.ExchangeRate, LastUpdate: ts}, nil
}

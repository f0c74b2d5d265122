package rate

import (
	"time"

	"github.com/seenimoa/vndrate/pkg/models"
)

// StalenessThreshold is how long a cached rate may be reused before it
// must be fetched again.
const StalenessThreshold = 5 * time.Hour

// Decision is the outcome of inspecting the cached record.
type Decision int

const (
	// Miss means no record exists yet.
	Miss Decision = iota
	// Fresh means the record can be returned as is.
	Fresh
	// Stale means the record is older than the threshold.
	Stale
)

func (d Decision) String() string {
	switch d {
	case Miss:
		return "miss"
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}

// Decide reports whether rec can be reused at now.
// A record exactly threshold old is still fresh.
func Decide(rec *models.CachedRate, now time.Time, threshold time.Duration) Decision {
	if rec == nil {
		return Miss
	}
	if rec.Age(now) <= threshold {
		return Fresh
	}
	return Stale
}

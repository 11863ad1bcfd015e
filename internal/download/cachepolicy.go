package download

import (
	"fmt"
	"time"

	"github.com/uniplaces/carbon"
)

// CachePolicy decides whether an existing local copy of a download can be reused.
type CachePolicy interface {
	// IsStale reports whether a cached file last modified at modTime must be fetched again.
	IsStale(modTime time.Time, now time.Time) bool
	String() string
}

type alwaysUse struct{}

// AlwaysUse reuses any existing file and never re-fetches it.
func AlwaysUse() CachePolicy {
	return alwaysUse{}
}

func (alwaysUse) IsStale(time.Time, time.Time) bool {
	return false
}

func (alwaysUse) String() string {
	return "always_use"
}

type ttlInDays struct {
	days int
}

// TTLInDays re-fetches a file once it is older than the given number of days.
func TTLInDays(days int) CachePolicy {
	return ttlInDays{days: days}
}

func (p ttlInDays) IsStale(modTime time.Time, now time.Time) bool {
	expiry := carbon.NewCarbon(modTime).AddDays(p.days)
	return carbon.NewCarbon(now).After(expiry.Time)
}

func (p ttlInDays) String() string {
	return fmt.Sprintf("ttl_in_days(%d)", p.days)
}

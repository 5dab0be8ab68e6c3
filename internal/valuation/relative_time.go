package valuation

import (
	"fmt"
	"time"
)

// timeUnavailable is rendered when a trade timestamp is unknown.
const timeUnavailable = "N/A"

// relativeUnits, largest first. The first unit with a non-zero count wins.
var relativeUnits = []struct {
	name    string
	seconds int64
}{
	{"year", 31536000},
	{"month", 2592000},
	{"week", 604800},
	{"day", 86400},
	{"hour", 3600},
	{"minute", 60},
}

// RelativeTime renders the elapsed time since t as a human-readable string
// like "3 hours ago" or "1 minute ago". A zero t renders as "N/A".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return timeUnavailable
	}

	seconds := int64(now.Sub(t).Seconds())
	if seconds < 0 {
		seconds = 0
	}

	for _, unit := range relativeUnits {
		if count := seconds / unit.seconds; count >= 1 {
			return formatAgo(count, unit.name)
		}
	}
	return formatAgo(seconds, "second")
}

func formatAgo(count int64, unit string) string {
	if count != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", count, unit)
}

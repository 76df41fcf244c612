package challengeview

import "fmt"

// Fallback labels rendered when a timestamp failed to normalize. Call sites
// fall back to these instead of crashing on malformed records.
const (
	InvalidDateLabel     = "Invalid date"
	NoDeadlineLabel      = "No deadline"
	InvalidDeadlineLabel = "Invalid deadline"
	ExpiredLabel         = "Expired"
)

// FormatElapsed renders how long ago instant was, relative to now, using a
// single largest unit: "Just now", "45 seconds ago", "5 minutes ago",
// "2 days ago". Elapsed time is casual display, so one unit is enough.
func FormatElapsed(instant, now Instant) string {
	diff := int64(now - instant)
	if diff < 0 {
		diff = 0
	}
	seconds := diff / 1000
	switch {
	case seconds < 30:
		return "Just now"
	case seconds < 60:
		return pluralAgo(seconds, "second")
	case seconds < 3600:
		return pluralAgo(seconds/60, "minute")
	case seconds < 86400:
		return pluralAgo(seconds/3600, "hour")
	default:
		return pluralAgo(seconds/86400, "day")
	}
}

// FormatRemaining renders the time left until deadline as a compound string:
// "2d 5h" when a day or more remains, "1h 30m" when an hour or more remains,
// "25m" below that, and "Expired" once the deadline passes. Remaining time is
// urgency display, so it is deliberately more precise than FormatElapsed.
func FormatRemaining(deadline, now Instant) string {
	diff := int64(deadline - now)
	if diff <= 0 {
		return ExpiredLabel
	}
	minutes := diff / 60000
	switch {
	case minutes >= 1440:
		return fmt.Sprintf("%dd %dh", minutes/1440, (minutes%1440)/60)
	case minutes >= 60:
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

func pluralAgo(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

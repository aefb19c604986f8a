package utils

import "time"

// FormatDuration formats a duration in a human-readable way, rounding to a
// precision appropriate for its magnitude instead of printing the full
// nanosecond-resolution string time.Duration.String() would otherwise give.
func FormatDuration(d time.Duration) string {
	if d < time.Microsecond {
		return d.String()
	}
	if d < time.Millisecond {
		return d.Round(time.Microsecond).String()
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	if d < time.Minute {
		return d.Round(10 * time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}

package domain

import "time"

// DatetimeNanoLayout is the wire format for stored timestamps
const DatetimeNanoLayout = time.RFC3339Nano

// FormatTimestamp renders t in UTC with nanosecond precision
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(DatetimeNanoLayout)
}

// ParseTimestamp parses a value produced by FormatTimestamp
func ParseTimestamp(value string) (time.Time, error) {
	return time.Parse(DatetimeNanoLayout, value)
}

// RetentionCutoff returns the instant before which sessions are considered expired.
// A non-positive retention falls back to DefaultRetention.
func RetentionCutoff(now time.Time, retention time.Duration) time.Time {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return now.Add(-retention)
}

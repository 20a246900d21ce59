package util

import "time"

// Clock is the time source behind NowUTC. Tests may replace it.
var Clock = time.Now

// NowUTC returns the current time in UTC, truncated to milliseconds so values
// survive JSON and database round trips unchanged.
func NowUTC() time.Time {
	return Clock().UTC().Truncate(time.Millisecond)
}

package assistant

import "time"

// DayWindow bounds "today" for event queries, in the server's local zone.
type DayWindow struct {
	Start time.Time
	End   time.Time
}

// DayWindowSoFar is [local midnight, now]. Backs "what have I logged so far".
func DayWindowSoFar(now time.Time) DayWindow {
	return DayWindow{Start: localMidnight(now), End: now}
}

// DayWindowFull is [local midnight, 23:59:59.999 local]. Backs deletion and
// post generation. Kept distinct from DayWindowSoFar on purpose: the two
// callers have different semantics and must not be unified silently.
func DayWindowFull(now time.Time) DayWindow {
	start := localMidnight(now)
	return DayWindow{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Millisecond)}
}

func localMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

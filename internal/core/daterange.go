package core

import "time"

const (
	RangeCurrent RangeToken = "current"
	RangeLast3   RangeToken = "last3"
	RangeLast6   RangeToken = "last6"
)

type (
	// RangeToken is a symbolic time range anchored at a reference date's month.
	RangeToken string

	// MonthBucket is one calendar-month window used for aggregation.
	// Start and End are inclusive.
	MonthBucket struct {
		Label string
		Start time.Time
		End   time.Time
	}
)

// Months returns how many month buckets the token spans. Unknown tokens
// behave like RangeCurrent.
func (t RangeToken) Months() int {
	switch t {
	case RangeLast3:
		return 3
	case RangeLast6:
		return 6
	default:
		return 1
	}
}

// ResolveRange maps a range token and a reference date to a concrete
// inclusive [start, end] interval. The end is always the last instant of
// now's month; the start is the first instant of the month Months()-1
// calendar months earlier.
func ResolveRange(token RangeToken, now time.Time) (start, end time.Time) {
	anchor := startOfMonth(now)
	start = anchor.AddDate(0, -(token.Months() - 1), 0)
	end = endOfMonth(now)
	return start, end
}

// MonthBuckets enumerates the token's consecutive month windows ending at
// now's month, oldest first, each labeled "Jan 2006".
func MonthBuckets(token RangeToken, now time.Time) []MonthBucket {
	n := token.Months()
	anchor := startOfMonth(now)
	buckets := make([]MonthBucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		s := anchor.AddDate(0, -i, 0)
		buckets = append(buckets, MonthBucket{
			Label: s.Format("Jan 2006"),
			Start: s,
			End:   endOfMonth(s),
		})
	}
	return buckets
}

// Contains reports whether an instant falls inside the bucket, bounds
// inclusive.
func (b MonthBucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

package domain

import (
	"fmt"
	"time"
)

// TimeRange is a half-open time interval [Start, End).
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeRange returns a TimeRange for [start, end). It fails with
// InvalidRangeError if start is not strictly before end.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, &InvalidRangeError{Start: start, End: end}
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps reports whether r intersects other after expanding other by buffer
// on both ends. With a zero buffer this is the strict interval-intersection
// test: ranges that merely touch at an endpoint do not overlap.
func (r TimeRange) Overlaps(other TimeRange, buffer time.Duration) bool {
	return r.Start.Before(other.End.Add(buffer)) && r.End.After(other.Start.Add(-buffer))
}

// Contains reports whether inner lies entirely within r (endpoints inclusive).
func (r TimeRange) Contains(inner TimeRange) bool {
	return !r.Start.After(inner.Start) && !inner.End.After(r.End)
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start.Format("2006-01-02 15:04"), r.End.Format("15:04"))
}

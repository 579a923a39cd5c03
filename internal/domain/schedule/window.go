package schedule

import (
	"errors"
	"fmt"
	"math/bits"
	"time"
)

var ErrInvalidWindow = errors.New("invalid time window: start must be before end")

// TimeWindow is a half-open interval [start, end) in UTC.
type TimeWindow struct {
	start time.Time
	end   time.Time
}

func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return TimeWindow{}, ErrInvalidWindow
	}
	return TimeWindow{start: start.UTC(), end: end.UTC()}, nil
}

// MustTimeWindow panics on invalid input. Tests and internal callers that
// have already validated the bounds use it.
func MustTimeWindow(start, end time.Time) TimeWindow {
	w, err := NewTimeWindow(start, end)
	if err != nil {
		panic(err)
	}
	return w
}

func (w TimeWindow) Start() time.Time { return w.start }
func (w TimeWindow) End() time.Time   { return w.end }

func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

func (w TimeWindow) DurationMinutes() int {
	return int(w.Duration() / time.Minute)
}

func (w TimeWindow) IsZero() bool {
	return w.start.IsZero() && w.end.IsZero()
}

// Touching endpoints do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

// Clip returns the intersection of w and bounds. ok is false when they do not overlap.
func (w TimeWindow) Clip(bounds TimeWindow) (TimeWindow, bool) {
	if !w.Overlaps(bounds) {
		return TimeWindow{}, false
	}
	start := w.start
	if bounds.start.After(start) {
		start = bounds.start
	}
	end := w.end
	if bounds.end.Before(end) {
		end = bounds.end
	}
	return TimeWindow{start: start, end: end}, true
}

// IsPast reports whether the whole window lies at or before now.
func (w TimeWindow) IsPast(now time.Time) bool {
	return !w.end.After(now)
}

func (w TimeWindow) Equal(other TimeWindow) bool {
	return w.start.Equal(other.start) && w.end.Equal(other.end)
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("[%s,%s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}

// CeilTo rounds t up to the next multiple of step counted from the Unix epoch.
// Values already on a boundary are returned unchanged.
func CeilTo(t time.Time, step time.Duration) time.Time {
	if step <= 0 {
		return t
	}
	rem := sinceEpochMod(t, uint64(step))
	if rem == 0 {
		return t
	}
	return t.Add(step - time.Duration(rem))
}

// sinceEpochMod returns (t - epoch) mod m without going through UnixNano, which
// overflows outside 1678..2262.
func sinceEpochMod(t time.Time, m uint64) uint64 {
	secs := t.Unix() % int64(m)
	if secs < 0 {
		secs += int64(m)
	}
	hi, lo := bits.Mul64(uint64(secs), uint64(time.Second))
	return (bits.Rem64(hi, lo, m) + uint64(t.Nanosecond())) % m
}

package schedule

import (
	"context"
	"errors"
	"math"
	"time"
)

var ErrNoSlotFound = errors.New("no free slot found within search bound")

const (
	DefaultMaxAttempts = 100
	DefaultRounding    = 15 * time.Minute
)

type SearchPolicy struct {
	MaxAttempts int
	Rounding    time.Duration
}

func DefaultSearchPolicy() SearchPolicy {
	return SearchPolicy{MaxAttempts: DefaultMaxAttempts, Rounding: DefaultRounding}
}

func (p SearchPolicy) normalize() SearchPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.Rounding <= 0 {
		p.Rounding = DefaultRounding
	}
	return p
}

// MaxDurationMinutes is the longest duration, in minutes, that fits in a
// time.Duration.
const MaxDurationMinutes int64 = math.MaxInt64 / int64(time.Minute)

// MinutesToDuration converts a requested length in minutes. Non-positive values
// and values that would overflow time.Duration are rejected with ErrInvalidWindow.
func MinutesToDuration(minutes int) (time.Duration, error) {
	if minutes <= 0 || int64(minutes) > MaxDurationMinutes {
		return 0, ErrInvalidWindow
	}
	return time.Duration(minutes) * time.Minute, nil
}

// ConflictLookup returns the live intervals that overlap a candidate window.
type ConflictLookup func(ctx context.Context, candidate TimeWindow) ([]Busy, error)

// FindNextSlot returns the earliest conflict-free window of the given duration
// starting at or after max(notBefore, now), aligned to policy.Rounding.
//
// When a candidate collides, the search jumps past the latest-ending conflict.
// Any start earlier than that end would still overlap that conflict, so no
// free window is skipped.
func FindNextSlot(
	ctx context.Context,
	lookup ConflictLookup,
	duration time.Duration,
	notBefore, now time.Time,
	policy SearchPolicy,
) (TimeWindow, error) {
	if duration <= 0 {
		return TimeWindow{}, ErrInvalidWindow
	}
	policy = policy.normalize()

	from := now
	if notBefore.After(from) {
		from = notBefore
	}
	candidateStart := CeilTo(from.UTC(), policy.Rounding)

	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return TimeWindow{}, err
		}

		candidate := TimeWindow{start: candidateStart, end: candidateStart.Add(duration)}
		busy, err := lookup(ctx, candidate)
		if err != nil {
			return TimeWindow{}, err
		}

		var latestEnd time.Time
		for _, b := range busy {
			if !b.Window.Overlaps(candidate) {
				continue
			}
			if b.Window.end.After(latestEnd) {
				latestEnd = b.Window.end
			}
		}
		if latestEnd.IsZero() {
			return candidate, nil
		}

		next := CeilTo(latestEnd, policy.Rounding)
		if !next.After(candidateStart) {
			next = candidateStart.Add(policy.Rounding)
		}
		candidateStart = next
	}

	return TimeWindow{}, ErrNoSlotFound
}

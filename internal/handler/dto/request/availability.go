package request

import (
	"time"

	"github.com/google/uuid"
)

// WindowQuery is a half-open [start,end) window in RFC3339.
type WindowQuery struct {
	Start time.Time `form:"start" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
	End   time.Time `form:"end" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
}

type ConflictsQuery struct {
	WindowQuery
	ExcludeID string `form:"excludeId" binding:"omitempty,uuid"`
}

func (q ConflictsQuery) ExcludeUUID() *uuid.UUID {
	if q.ExcludeID == "" {
		return nil
	}
	id, err := uuid.Parse(q.ExcludeID)
	if err != nil {
		return nil
	}
	return &id
}

type NextSlotQuery struct {
	DurationMinutes int        `form:"durationMinutes" binding:"required,min=1,max=525600"`
	NotBefore       *time.Time `form:"notBefore" time_format:"2006-01-02T15:04:05Z07:00"`
}

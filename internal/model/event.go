package model

import (
	"fmt"
	"time"
)

type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	MaxTeamSize int       `json:"maxTeamSize"`
	CreatorID   int64     `json:"creatorId"`
}

func (e *Event) IsUpcoming(now time.Time) bool {
	return e.StartDate.After(now)
}

// dateLayouts are tried in order; the last two are what an HTML date/datetime-local input submits.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

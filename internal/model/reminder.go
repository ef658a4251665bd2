package model

import "time"

// ReminderConfig is the per-user weekly reminder schedule
type ReminderConfig struct {
	UserID  int64 `json:"userId" bson:"_id"`
	Enabled bool  `json:"enabled" bson:"enabled"`

	// Days holds weekdays (time.Weekday) on which to remind
	Days []time.Weekday `json:"days" bson:"days"`

	// Hour and Minute are the local send time
	Hour   int `json:"hour" bson:"hour"`
	Minute int `json:"minute" bson:"minute"`

	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HasDay reports whether d is part of the schedule.
func (r *ReminderConfig) HasDay(d time.Weekday) bool {
	for _, day := range r.Days {
		if day == d {
			return true
		}
	}
	return false
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Reminder types
const (
	TypeHabit         = "habit"
	TypeMeditation    = "meditation"
	TypeExercise      = "exercise"
	TypeMindfulEating = "mindful_eating"
	TypeBreak         = "break"
	TypeCustom        = "custom"
)

// Reminder frequencies. An empty frequency or FrequencyOneTime means the
// reminder fires once and never repeats.
const (
	FrequencyOneTime = "one-time"
	FrequencyHourly  = "hourly"
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Reminder statuses. Completed, cancelled and failed are terminal:
// the scheduler only ever picks up pending reminders.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusFailed    = "failed"
)

type User struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	// FCMToken is nil when the user has no registered device,
	// meaning nothing can be delivered to them.
	FCMToken *string `json:"fcm_token,omitempty"`
	// UTCOffsetMinutes is the offset of the user's local clock from UTC.
	// Nil means reminder trigger times are treated as already UTC
	// (reminders created before offset tracking existed).
	UTCOffsetMinutes *int      `json:"utc_offset_minutes,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Reminder struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"uid"`
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	// TriggerTime is expressed in the owner's local clock, not UTC.
	TriggerTime time.Time `json:"trigger_time"`
	Frequency   string    `json:"frequency,omitempty"`
	Status      string    `json:"status"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Recurring reports whether the reminder repeats after delivery.
func (r *Reminder) Recurring() bool {
	return r.Frequency != "" && r.Frequency != FrequencyOneTime
}

// DueCandidate is a pending reminder joined with the delivery data of its
// owner, as returned by the coarse store query. The fine timezone-aware
// window check happens in the scheduler.
type DueCandidate struct {
	Reminder         Reminder
	FCMToken         *string
	UTCOffsetMinutes *int
}

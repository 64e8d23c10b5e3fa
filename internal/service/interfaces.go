package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/wellspring/pkg/entity"
)

type CreateReminderRequest struct {
	Type        string    `validate:"required,reminder_type"`
	Title       string    `validate:"required,max=255"`
	Message     string    `validate:"required"`
	TriggerTime time.Time `validate:"required"`
	Frequency   string    `validate:"omitempty,reminder_frequency"`
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

type RemindersServiceI interface {
	// Validates the request and creates a pending reminder owned by uid
	CreateReminder(ctx context.Context, uid uuid.UUID, req *CreateReminderRequest) (*entity.Reminder, error)
	// Returns reminder by id after checking ownership
	GetReminder(ctx context.Context, reminderID, userID uuid.UUID) (*entity.Reminder, error)
	// Lists reminders of uid. Requires pagination params provided
	GetUserReminders(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Reminder, error)
	// Marks reminder cancelled (user-driven, distinct from scheduler transitions)
	CancelReminder(ctx context.Context, reminderID, userID uuid.UUID) error
	// Pauses or resumes the reminder without touching its status
	SetReminderActive(ctx context.Context, reminderID, userID uuid.UUID, active bool) error
	// Removes the reminder entirely
	DeleteReminder(ctx context.Context, reminderID, userID uuid.UUID) error
}

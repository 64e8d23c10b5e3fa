package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/wellspring/internal/error_values"
	"github.com/limbo/wellspring/internal/service"
	"github.com/limbo/wellspring/pkg/entity"
	"github.com/stretchr/testify/assert"
)

type mockState int

const (
	stateSuccess = iota
	stateDBError
	stateReminderNotFoundError
	stateUserNotFoundError
	stateWrongOwner
	stateTerminal
)

type remindersRepoMock struct {
	state mockState
}

// Variables for tests
var (
	userID       = uuid.New()
	reminderID   = uuid.New()
	testReminder = entity.Reminder{
		ID:          reminderID,
		UserID:      userID,
		Type:        entity.TypeMeditation,
		Title:       "test_reminder",
		Message:     "test_message",
		TriggerTime: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		Frequency:   entity.FrequencyDaily,
		Status:      entity.StatusPending,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
)

func (rrmock *remindersRepoMock) Create(ctx context.Context, reminder *entity.Reminder) (uuid.UUID, error) {
	switch rrmock.state {
	case stateUserNotFoundError:
		return uuid.UUID{}, errorvalues.ErrOwnerNotFound
	case stateDBError:
		return uuid.UUID{}, errors.New("db error")
	default:
		return reminderID, nil
	}
}

func (rrmock *remindersRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Reminder, error) {
	switch rrmock.state {
	case stateReminderNotFoundError:
		return nil, errorvalues.ErrReminderNotFound
	case stateDBError:
		return nil, errors.New("db error")
	case stateWrongOwner:
		wrong := testReminder
		wrong.UserID = uuid.New()
		return &wrong, nil
	case stateTerminal:
		done := testReminder
		done.Status = entity.StatusCompleted
		return &done, nil
	default:
		r := testReminder
		return &r, nil
	}
}

func (rrmock *remindersRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Reminder, error) {
	switch rrmock.state {
	case stateDBError:
		return nil, errors.New("db error")
	default:
		r := testReminder
		return []*entity.Reminder{&r}, nil
	}
}

func (rrmock *remindersRepoMock) Update(ctx context.Context, reminder *entity.Reminder) error {
	switch rrmock.state {
	case stateDBError:
		return errors.New("db error")
	case stateReminderNotFoundError:
		return errorvalues.ErrReminderNotFound
	default:
		return nil
	}
}

func (rrmock *remindersRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	switch rrmock.state {
	case stateDBError:
		return errors.New("db error")
	case stateReminderNotFoundError:
		return errorvalues.ErrReminderNotFound
	default:
		return nil
	}
}

func (rrmock *remindersRepoMock) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	switch rrmock.state {
	case stateDBError:
		return errors.New("db error")
	default:
		return nil
	}
}

func (rrmock *remindersRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	switch rrmock.state {
	case stateDBError:
		return errors.New("db error")
	case stateReminderNotFoundError:
		return errorvalues.ErrReminderNotFound
	default:
		return nil
	}
}

func (rrmock *remindersRepoMock) FindDueCandidates(ctx context.Context) ([]*entity.DueCandidate, error) {
	return nil, nil
}

func (rrmock *remindersRepoMock) SaveStates(ctx context.Context, reminders []*entity.Reminder) error {
	return nil
}

func validRequest() *service.CreateReminderRequest {
	return &service.CreateReminderRequest{
		Type:        entity.TypeMeditation,
		Title:       "test_reminder",
		Message:     "test_message",
		TriggerTime: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		Frequency:   entity.FrequencyDaily,
	}
}

func TestCreateReminder(t *testing.T) {
	service.InitValidator()
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateSuccess})
		reminder, err := s.CreateReminder(ctx, userID, validRequest())
		assert.NoError(t, err)
		assert.Equal(t, testReminder, *reminder)
	})
	t.Run("unknown reminder type", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateSuccess})
		req := validRequest()
		req.Type = "procrastination"
		_, err := s.CreateReminder(ctx, userID, req)
		assert.Error(t, err)
	})
	t.Run("unknown frequency", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateSuccess})
		req := validRequest()
		req.Frequency = "biweekly"
		_, err := s.CreateReminder(ctx, userID, req)
		assert.Error(t, err)
	})
	t.Run("empty frequency means one-time", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateSuccess})
		req := validRequest()
		req.Frequency = ""
		_, err := s.CreateReminder(ctx, userID, req)
		assert.NoError(t, err)
	})
	t.Run("missing title", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateSuccess})
		req := validRequest()
		req.Title = ""
		_, err := s.CreateReminder(ctx, userID, req)
		assert.Error(t, err)
	})
	t.Run("owner not found", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateUserNotFoundError})
		_, err := s.CreateReminder(ctx, userID, validRequest())
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateDBError})
		_, err := s.CreateReminder(ctx, userID, validRequest())
		assert.Error(t, err)
	})
}

func TestGetReminder(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateSuccess})
		reminder, err := s.GetReminder(ctx, reminderID, userID)
		assert.NoError(t, err)
		assert.Equal(t, testReminder, *reminder)
	})
	t.Run("wrong owner", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateWrongOwner})
		_, err := s.GetReminder(ctx, reminderID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("not found", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateReminderNotFoundError})
		_, err := s.GetReminder(ctx, reminderID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrReminderNotFound)
	})
}

func TestGetUserReminders(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateSuccess})
		reminders, err := s.GetUserReminders(ctx, userID, service.PaginationOpts{Limit: 10, Offset: 0})
		assert.NoError(t, err)
		assert.Len(t, reminders, 1)
	})
	t.Run("db error", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateDBError})
		_, err := s.GetUserReminders(ctx, userID, service.PaginationOpts{Limit: 10, Offset: 0})
		assert.Error(t, err)
	})
}

func TestCancelReminder(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateSuccess})
		err := s.CancelReminder(ctx, reminderID, userID)
		assert.NoError(t, err)
	})
	t.Run("wrong owner", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateWrongOwner})
		err := s.CancelReminder(ctx, reminderID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("not found", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateReminderNotFoundError})
		err := s.CancelReminder(ctx, reminderID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrReminderNotFound)
	})
	t.Run("already terminal", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateTerminal})
		err := s.CancelReminder(ctx, reminderID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrReminderTerminal)
	})
}

func TestDeleteReminder(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateSuccess})
		err := s.DeleteReminder(ctx, reminderID, userID)
		assert.NoError(t, err)
	})
	t.Run("wrong owner", func(t *testing.T) {
		s := service.NewRemindersService(&remindersRepoMock{state: stateWrongOwner})
		err := s.DeleteReminder(ctx, reminderID, userID)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
}

package service

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/wellspring/internal/error_values"
	"github.com/limbo/wellspring/internal/repository"
	"github.com/limbo/wellspring/pkg/entity"
)

type RemindersService struct {
	repo repository.RemindersRepositoryI
}

func NewRemindersService(remindersRepo repository.RemindersRepositoryI) *RemindersService {
	if remindersRepo == nil {
		log.Fatal("provided nil remindersRepo")
	}
	return &RemindersService{
		repo: remindersRepo,
	}
}

func (rs *RemindersService) CreateReminder(ctx context.Context, uid uuid.UUID, req *CreateReminderRequest) (*entity.Reminder, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	r := entity.Reminder{
		UserID:      uid,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		TriggerTime: req.TriggerTime,
		Frequency:   req.Frequency,
	}
	id, err := rs.repo.Create(ctx, &r)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("reminders repository error: " + err.Error())
	}
	reminder, err := rs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrReminderNotFound) {
			return nil, err
		}
		return nil, errors.New("reminders repository error: " + err.Error())
	}
	return reminder, nil
}

func (rs *RemindersService) GetReminder(ctx context.Context, reminderID, userID uuid.UUID) (*entity.Reminder, error) {
	reminder, err := rs.repo.GetByID(ctx, reminderID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrReminderNotFound) {
			return nil, err
		}
		return nil, errors.New("reminders repository error: " + err.Error())
	}
	if reminder.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return reminder, nil
}

func (rs *RemindersService) GetUserReminders(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Reminder, error) {
	reminders, err := rs.repo.GetByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("reminders repository error: " + err.Error())
	}
	return reminders, nil
}

func (rs *RemindersService) CancelReminder(ctx context.Context, reminderID, userID uuid.UUID) error {
	reminder, err := rs.GetReminder(ctx, reminderID, userID)
	if err != nil {
		return err
	}
	if reminder.Status != entity.StatusPending {
		return errorvalues.ErrReminderTerminal
	}
	err = rs.repo.UpdateStatus(ctx, reminderID, entity.StatusCancelled)
	if err != nil {
		if errors.Is(err, errorvalues.ErrReminderNotFound) {
			return err
		}
		return errors.New("reminders repository error: " + err.Error())
	}
	return nil
}

func (rs *RemindersService) SetReminderActive(ctx context.Context, reminderID, userID uuid.UUID, active bool) error {
	_, err := rs.GetReminder(ctx, reminderID, userID)
	if err != nil {
		return err
	}
	err = rs.repo.SetActive(ctx, reminderID, active)
	if err != nil {
		if errors.Is(err, errorvalues.ErrReminderNotFound) {
			return err
		}
		return errors.New("reminders repository error: " + err.Error())
	}
	return nil
}

func (rs *RemindersService) DeleteReminder(ctx context.Context, reminderID, userID uuid.UUID) error {
	_, err := rs.GetReminder(ctx, reminderID, userID)
	if err != nil {
		return err
	}
	err = rs.repo.Delete(ctx, reminderID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrReminderNotFound) {
			return err
		}
		return errors.New("reminders repository error: " + err.Error())
	}
	return nil
}

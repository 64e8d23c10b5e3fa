package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/wellspring/pkg/entity"
)

type UsersRepositoryI interface {
	// Looks up user by uid
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Registers or replaces the user's device token. Nil token unregisters
	UpdateFCMToken(ctx context.Context, uid uuid.UUID, token *string) error
	// Stores the offset of the user's local clock from UTC, in minutes
	UpdateUTCOffset(ctx context.Context, uid uuid.UUID, offsetMinutes *int) error
}

type RemindersRepositoryI interface {
	// Creates new reminder in status pending. Only UserID, Type, Title,
	// Message, TriggerTime and Frequency are necessary
	Create(ctx context.Context, reminder *entity.Reminder) (uuid.UUID, error)
	// Searches reminder with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Reminder, error)
	// Lists reminders owned by user with uid. Requires pagination params provided
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Reminder, error)
	// Updates user-editable fields by ID (ID in reminder is necessary)
	Update(ctx context.Context, reminder *entity.Reminder) error
	// Sets the status field only
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// Flips the pause switch without touching status
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	// Deletes reminder with id (explicit user deletion)
	Delete(ctx context.Context, id uuid.UUID) error
	// Coarse due query: pending + active reminders of active users holding
	// a device token, joined with the owner's token and UTC offset
	FindDueCandidates(ctx context.Context) ([]*entity.DueCandidate, error)
	// Persists status/trigger_time transitions of a scheduler tick as a
	// single transaction. Either all reminders are saved or none are
	SaveStates(ctx context.Context, reminders []*entity.Reminder) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}

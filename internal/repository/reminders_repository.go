package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/wellspring/internal/error_values"
	"github.com/limbo/wellspring/pkg/cleanup"
	"github.com/limbo/wellspring/pkg/entity"
)

type RemindersRepository struct {
	conn PgConnection
}

func NewRemindersRepo(cfg DBConfig) *RemindersRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for remindersRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for remindersRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &RemindersRepository{
		conn: pool,
	}
}

func NewRemindersRepoWithConn(conn PgConnection) *RemindersRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for remindersRepo: " + err.Error())
	}
	return &RemindersRepository{
		conn: conn,
	}
}

func (rr *RemindersRepository) Create(ctx context.Context, reminder *entity.Reminder) (uuid.UUID, error) {
	var id uuid.UUID
	row := rr.conn.QueryRow(ctx, `INSERT INTO reminders (user_id, reminder_type, title, message, trigger_time, frequency)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
		reminder.UserID,
		reminder.Type,
		reminder.Title,
		reminder.Message,
		reminder.TriggerTime,
		reminder.Frequency,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating reminder db error: " + err.Error())
	}
	return id, nil
}

func (rr *RemindersRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Reminder, error) {
	var reminder entity.Reminder
	reminder.ID = id
	row := rr.conn.QueryRow(ctx, `SELECT user_id, reminder_type, title, message, trigger_time, frequency, status, is_active, created_at, updated_at
		FROM reminders WHERE id = $1;`, id)
	if err := row.Scan(&reminder.UserID, &reminder.Type, &reminder.Title, &reminder.Message, &reminder.TriggerTime,
		&reminder.Frequency, &reminder.Status, &reminder.IsActive, &reminder.CreatedAt, &reminder.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrReminderNotFound
		}
		return nil, errors.New("getting reminder by id error: " + err.Error())
	}
	return &reminder, nil
}

func (rr *RemindersRepository) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Reminder, error) {
	reminders := make([]*entity.Reminder, 0)
	rows, err := rr.conn.Query(ctx, `SELECT id, user_id, reminder_type, title, message, trigger_time, frequency, status, is_active, created_at, updated_at
		FROM reminders WHERE user_id = $1 ORDER BY trigger_time LIMIT $2 OFFSET $3;`, uid, limit, offset)
	if err != nil {
		return nil, errors.New("getting reminders by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		r := entity.Reminder{}
		err = rows.Scan(&r.ID, &r.UserID, &r.Type, &r.Title, &r.Message, &r.TriggerTime,
			&r.Frequency, &r.Status, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, errors.New("unmarhalling reminder error: " + err.Error())
		}
		reminders = append(reminders, &r)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return reminders, nil
}

func (rr *RemindersRepository) Update(ctx context.Context, reminder *entity.Reminder) error {
	ct, err := rr.conn.Exec(ctx, `UPDATE reminders SET reminder_type = $1, title = $2, message = $3, trigger_time = $4, frequency = $5, updated_at = NOW() WHERE id = $6;`,
		reminder.Type, reminder.Title, reminder.Message, reminder.TriggerTime, reminder.Frequency, reminder.ID,
	)
	if err != nil {
		return errors.New("error updating reminder: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrReminderNotFound
	}
	return nil
}

func (rr *RemindersRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	ct, err := rr.conn.Exec(ctx, `UPDATE reminders SET status = $1, updated_at = NOW() WHERE id = $2;`, status, id)
	if err != nil {
		return errors.New("error updating reminder status: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrReminderNotFound
	}
	return nil
}

func (rr *RemindersRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	ct, err := rr.conn.Exec(ctx, `UPDATE reminders SET is_active = $1, updated_at = NOW() WHERE id = $2;`, active, id)
	if err != nil {
		return errors.New("error switching reminder active flag: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrReminderNotFound
	}
	return nil
}

func (rr *RemindersRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := rr.conn.Exec(ctx, `DELETE FROM reminders WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting reminder: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrReminderNotFound
	}
	return nil
}

// FindDueCandidates performs the coarse selection only: pending, unpaused
// reminders of active users who hold a device token. Whether a candidate
// actually falls inside the delivery window is decided by the scheduler,
// which knows the owner's UTC offset returned here alongside the row.
func (rr *RemindersRepository) FindDueCandidates(ctx context.Context) ([]*entity.DueCandidate, error) {
	candidates := make([]*entity.DueCandidate, 0)
	rows, err := rr.conn.Query(ctx, `SELECT r.id, r.user_id, r.reminder_type, r.title, r.message, r.trigger_time, r.frequency, r.status, r.is_active, r.created_at, r.updated_at, u.fcm_token, u.utc_offset_minutes
		FROM reminders r JOIN users u ON u.id = r.user_id
		WHERE r.status = 'pending' AND r.is_active = TRUE AND u.is_active = TRUE AND u.fcm_token IS NOT NULL;`)
	if err != nil {
		return nil, errors.New("querying due candidates error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		c := entity.DueCandidate{}
		r := &c.Reminder
		err = rows.Scan(&r.ID, &r.UserID, &r.Type, &r.Title, &r.Message, &r.TriggerTime,
			&r.Frequency, &r.Status, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
			&c.FCMToken, &c.UTCOffsetMinutes)
		if err != nil {
			return nil, errors.New("unmarhalling due candidate error: " + err.Error())
		}
		candidates = append(candidates, &c)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return candidates, nil
}

// SaveStates commits the status and trigger_time transitions of one
// scheduler tick in a single transaction. A failure rolls everything back,
// leaving the reminders pending in storage for the next tick.
func (rr *RemindersRepository) SaveStates(ctx context.Context, reminders []*entity.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	tx, err := rr.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning tick transaction error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	for _, r := range reminders {
		_, err = tx.Exec(ctx, `UPDATE reminders SET status = $1, trigger_time = $2, updated_at = $3 WHERE id = $4;`,
			r.Status, r.TriggerTime, r.UpdatedAt, r.ID,
		)
		if err != nil {
			return errors.New("saving reminder state error: " + err.Error())
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing tick transaction error: " + err.Error())
	}
	return nil
}

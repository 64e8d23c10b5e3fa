package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/wellspring/internal/error_values"
	"github.com/limbo/wellspring/pkg/cleanup"
	"github.com/limbo/wellspring/pkg/entity"
)

type UsersRepository struct {
	conn PgConnection
}

func NewUsersRepo(cfg DBConfig) *UsersRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for usersRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for usersRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &UsersRepository{
		conn: pool,
	}
}

func NewUsersRepoWithConn(conn PgConnection) *UsersRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for usersRepo: " + err.Error())
	}
	return &UsersRepository{
		conn: conn,
	}
}

func (ur *UsersRepository) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	var user entity.User
	row := ur.conn.QueryRow(ctx, `SELECT id, name, fcm_token, utc_offset_minutes, is_active, created_at, updated_at FROM users WHERE id = $1;`, uid)
	if err := row.Scan(&user.ID, &user.Name, &user.FCMToken, &user.UTCOffsetMinutes, &user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by id error: " + err.Error())
	}
	return &user, nil
}

func (ur *UsersRepository) UpdateFCMToken(ctx context.Context, uid uuid.UUID, token *string) error {
	ct, err := ur.conn.Exec(ctx, `UPDATE users SET fcm_token = $1, updated_at = NOW() WHERE id = $2;`, token, uid)
	if err != nil {
		return errors.New("updating fcm token error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

func (ur *UsersRepository) UpdateUTCOffset(ctx context.Context, uid uuid.UUID, offsetMinutes *int) error {
	ct, err := ur.conn.Exec(ctx, `UPDATE users SET utc_offset_minutes = $1, updated_at = NOW() WHERE id = $2;`, offsetMinutes, uid)
	if err != nil {
		return errors.New("updating utc offset error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrUserNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickcourt/courtbooking/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	MarkEmailVerified(ctx context.Context, userID int64) error
	SaveOTP(ctx context.Context, otp *domain.EmailOTP) error
	GetOTP(ctx context.Context, userID int64) (*domain.EmailOTP, error)
	IncrementOTPAttempts(ctx context.Context, otpID int64) error
	DeleteOTP(ctx context.Context, userID int64) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, user_type, phone_number,
	is_email_verified, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.UserType,
		&u.PhoneNumber, &u.IsEmailVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.QueryRow(ctx, `INSERT INTO users
		(email, password_hash, first_name, last_name, user_type, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.UserType, user.PhoneNumber).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *PGUserRepository) MarkEmailVerified(ctx context.Context, userID int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET is_email_verified=true, updated_at=now() WHERE id=$1`, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveOTP replaces any previous code for the user: one live code at a time.
func (r *PGUserRepository) SaveOTP(ctx context.Context, otp *domain.EmailOTP) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM email_otps WHERE user_id=$1`, otp.UserID); err != nil {
		return err
	}
	if err := tx.QueryRow(ctx, `INSERT INTO email_otps (user_id, code, expires_at)
		VALUES ($1, $2, $3) RETURNING id, created_at`,
		otp.UserID, otp.Code, otp.ExpiresAt).Scan(&otp.ID, &otp.CreatedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGUserRepository) GetOTP(ctx context.Context, userID int64) (*domain.EmailOTP, error) {
	var o domain.EmailOTP
	err := r.db.QueryRow(ctx, `SELECT id, user_id, code, attempts, expires_at, created_at
		FROM email_otps WHERE user_id=$1`, userID).
		Scan(&o.ID, &o.UserID, &o.Code, &o.Attempts, &o.ExpiresAt, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGUserRepository) IncrementOTPAttempts(ctx context.Context, otpID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE email_otps SET attempts = attempts + 1 WHERE id=$1`, otpID)
	return err
}

func (r *PGUserRepository) DeleteOTP(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM email_otps WHERE user_id=$1`, userID)
	return err
}

var _ UserRepository = (*PGUserRepository)(nil)

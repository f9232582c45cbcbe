package user

import (
	c "authflow/internal/core/domain/common"
	"authflow/internal/core/domain/user"
	"authflow/internal/db"
	"context"
	"errors"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `id, name, email, password_hash, reset_token, reset_token_expires, is_active, role, created_at`

const createUser = `
INSERT INTO "user" (name, email, password_hash, is_active, role, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + userColumns

const getUserByID = `SELECT ` + userColumns + ` FROM "user" WHERE id = $1`

const getUserByEmail = `SELECT ` + userColumns + ` FROM "user" WHERE email = $1`

const setPasswordResetToken = `
UPDATE "user" SET reset_token = $2, reset_token_expires = $3
WHERE email = $1
RETURNING ` + userColumns

const resetPassword = `
UPDATE "user" SET password_hash = $1, reset_token = NULL, reset_token_expires = NULL
WHERE reset_token = $2 AND reset_token_expires > $3
RETURNING ` + userColumns

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		createUser,
		input.Name,
		string(input.Email),
		string(input.PasswordHash),
		input.IsActive,
		string(input.Role),
		input.CreatedAt,
	)
	u, err = scanUser(row)
	if db.IsUniqueViolation(err, EMAIL_CONSTRAINT_NAME) {
		return u, user.ErrEmailAlreadyExists
	}
	return u, err
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	u, err = scanUser(r.db.QueryRow(ctx, getUserByID, int64(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	u, err = scanUser(r.db.QueryRow(ctx, getUserByEmail, string(email)))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func (r *PgxUserRepository) SetPasswordResetToken(
	ctx context.Context,
	input user.SetPasswordResetTokenInput,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		setPasswordResetToken,
		string(input.Email),
		string(input.Token),
		input.ExpiresAt,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func (r *PgxUserRepository) ResetPassword(ctx context.Context, input user.ResetPasswordInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		resetPassword,
		string(input.PasswordHash),
		string(input.Token),
		input.At,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrInvalidPasswordResetToken
	}
	return u, err
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id                int64
		name              string
		email             string
		passwordHash      string
		resetToken        pgtype.Text
		resetTokenExpires pgtype.Timestamptz
		isActive          bool
		role              string
		createdAt         time.Time
	)
	err = row.Scan(
		&id,
		&name,
		&email,
		&passwordHash,
		&resetToken,
		&resetTokenExpires,
		&isActive,
		&role,
		&createdAt,
	)
	if err != nil {
		return u, err
	}

	u = user.User{
		ID:           user.ID(id),
		Name:         name,
		Email:        c.Email(email),
		PasswordHash: user.PasswordHash(passwordHash),
		IsActive:     isActive,
		Role:         user.Role(role),
		CreatedAt:    createdAt.UTC(),
		ResetToken: c.NewOptional(
			user.PasswordResetToken(resetToken.String),
			resetToken.Status == pgtype.Present,
		),
		ResetTokenExpires: c.NewOptional(
			resetTokenExpires.Time.UTC(),
			resetTokenExpires.Status == pgtype.Present,
		),
	}
	err = u.Validate()
	return u, err
}

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgUserRepo struct {
	pool *pgxpool.Pool
}

func NewPgUserRepo(pool *pgxpool.Pool) *PgUserRepo {
	return &PgUserRepo{pool: pool}
}

func (r *PgUserRepo) Save(ctx context.Context, row UserRow) error {
	query := `
		INSERT INTO users (
			uuid, username, email, bcrypt_pwd, firstname, lastname, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (uuid) DO UPDATE SET
			username = EXCLUDED.username,
			email = EXCLUDED.email,
			bcrypt_pwd = EXCLUDED.bcrypt_pwd,
			firstname = EXCLUDED.firstname,
			lastname = EXCLUDED.lastname
	`
	_, err := r.pool.Exec(ctx, query,
		row.UUID, row.Username, row.Email, row.BcryptPwd,
		row.Firstname, row.Lastname, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgUserRepo) List(ctx context.Context) ([]UserRow, error) {
	query := `
		SELECT uuid, username, email, bcrypt_pwd, firstname, lastname, created_at
		FROM users
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var res []UserRow
	for rows.Next() {
		var row UserRow
		err := rows.Scan(&row.UUID, &row.Username, &row.Email,
			&row.BcryptPwd, &row.Firstname, &row.Lastname, &row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

func (r *PgUserRepo) GetByUUID(ctx context.Context, userUUID uuid.UUID) (UserRow, error) {
	query := `
		SELECT uuid, username, email, bcrypt_pwd, firstname, lastname, created_at
		FROM users WHERE uuid = $1
	`
	return r.getOne(ctx, query, userUUID)
}

func (r *PgUserRepo) GetByUsername(ctx context.Context, username string) (UserRow, error) {
	query := `
		SELECT uuid, username, email, bcrypt_pwd, firstname, lastname, created_at
		FROM users WHERE username = $1
	`
	return r.getOne(ctx, query, username)
}

func (r *PgUserRepo) getOne(ctx context.Context, query string, arg any) (UserRow, error) {
	var row UserRow
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&row.UUID, &row.Username, &row.Email,
		&row.BcryptPwd, &row.Firstname, &row.Lastname, &row.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return UserRow{}, fmt.Errorf("user not found")
	}
	if err != nil {
		return UserRow{}, fmt.Errorf("failed to get user: %w", err)
	}
	return row, nil
}

func (r *PgUserRepo) AddSolved(ctx context.Context, userUUID uuid.UUID, problemShortID string) error {
	query := `
		INSERT INTO solved_problems (user_uuid, problem_short_id)
		VALUES ($1, $2)
		ON CONFLICT (user_uuid, problem_short_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, userUUID, problemShortID)
	if err != nil {
		return fmt.Errorf("failed to add solved problem: %w", err)
	}
	return nil
}

func (r *PgUserRepo) ListSolved(ctx context.Context, userUUID uuid.UUID) ([]string, error) {
	query := `
		SELECT problem_short_id FROM solved_problems
		WHERE user_uuid = $1 ORDER BY problem_short_id
	`
	rows, err := r.pool.Query(ctx, query, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list solved problems: %w", err)
	}
	defer rows.Close()

	var solved []string
	for rows.Next() {
		var shortID string
		if err := rows.Scan(&shortID); err != nil {
			return nil, fmt.Errorf("failed to scan solved problem: %w", err)
		}
		solved = append(solved, shortID)
	}
	return solved, rows.Err()
}

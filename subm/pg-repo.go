package subm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgSubmRepo struct {
	pool *pgxpool.Pool
}

func NewPgSubmRepo(pool *pgxpool.Pool) *PgSubmRepo {
	return &PgSubmRepo{pool: pool}
}

const submColumns = `
	uuid, user_uuid, problem_short_id, language, src_code, contest_id,
	status, label, tests_passed, total_tests, runtime_sec, memory_kb,
	error_msg, score, created_at, finished_at
`

func (r *PgSubmRepo) Store(ctx context.Context, subm Submission) error {
	insertQuery := `
		INSERT INTO submissions (
			uuid, user_uuid, problem_short_id, language, src_code,
			contest_id, status, total_tests, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, insertQuery,
		subm.UUID,
		subm.UserUUID,
		subm.ProblemShortID,
		subm.Language,
		subm.SrcCode,
		subm.ContestID,
		subm.Status,
		subm.TotalTests,
		subm.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

// Finalize writes the terminal snapshot. The status guard in the WHERE
// clause makes the pending -> terminal transition one-way even under
// concurrent finalization attempts.
func (r *PgSubmRepo) Finalize(ctx context.Context, submUUID uuid.UUID, p FinalizeParams) error {
	updateQuery := `
		UPDATE submissions
		SET status = $2,
			label = $3,
			tests_passed = $4,
			runtime_sec = $5,
			memory_kb = $6,
			error_msg = $7,
			score = $8,
			finished_at = now()
		WHERE uuid = $1 AND status = 'pending'
	`
	tag, err := r.pool.Exec(ctx, updateQuery,
		submUUID,
		p.Status,
		p.Label,
		p.TestsPassed,
		p.RuntimeSec,
		p.MemoryKB,
		p.ErrorMsg,
		p.Score,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("submission %s is not pending", submUUID)
	}
	return nil
}

func (r *PgSubmRepo) Get(ctx context.Context, submUUID uuid.UUID) (Submission, error) {
	query := `SELECT ` + submColumns + ` FROM submissions WHERE uuid = $1`
	subm, err := scanSubm(r.pool.QueryRow(ctx, query, submUUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Submission{}, fmt.Errorf("submission not found: %w", err)
		}
		return Submission{}, fmt.Errorf("failed to query submission: %w", err)
	}
	return subm, nil
}

func (r *PgSubmRepo) List(ctx context.Context, limit int, offset int) ([]Submission, error) {
	query := `
		SELECT ` + submColumns + `
		FROM submissions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()
	return scanSubms(rows)
}

func (r *PgSubmRepo) ListByUser(ctx context.Context, userUUID uuid.UUID) ([]Submission, error) {
	query := `
		SELECT ` + submColumns + `
		FROM submissions
		WHERE user_uuid = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user submissions: %w", err)
	}
	defer rows.Close()
	return scanSubms(rows)
}

func scanSubm(row pgx.Row) (Submission, error) {
	var subm Submission
	err := row.Scan(
		&subm.UUID,
		&subm.UserUUID,
		&subm.ProblemShortID,
		&subm.Language,
		&subm.SrcCode,
		&subm.ContestID,
		&subm.Status,
		&subm.Label,
		&subm.TestsPassed,
		&subm.TotalTests,
		&subm.RuntimeSec,
		&subm.MemoryKB,
		&subm.ErrorMsg,
		&subm.Score,
		&subm.CreatedAt,
		&subm.FinishedAt,
	)
	return subm, err
}

func scanSubms(rows pgx.Rows) ([]Submission, error) {
	var subms []Submission
	for rows.Next() {
		subm, err := scanSubm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		subms = append(subms, subm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read submissions: %w", err)
	}
	return subms, nil
}

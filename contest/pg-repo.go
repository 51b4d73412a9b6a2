package contest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgContestRepo struct {
	pool *pgxpool.Pool
}

func NewPgContestRepo(pool *pgxpool.Pool) *PgContestRepo {
	return &PgContestRepo{pool: pool}
}

func (r *PgContestRepo) SaveContest(ctx context.Context, c Contest) error {
	upsertQuery := `
		INSERT INTO contests (id, title, description, problem_short_ids, start_at, end_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			problem_short_ids = EXCLUDED.problem_short_ids,
			start_at = EXCLUDED.start_at,
			end_at = EXCLUDED.end_at
	`
	_, err := r.pool.Exec(ctx, upsertQuery,
		c.ID, c.Title, c.Description, c.ProblemShortIDs, c.StartAt, c.EndAt)
	if err != nil {
		return fmt.Errorf("failed to upsert contest: %w", err)
	}
	return nil
}

func (r *PgContestRepo) GetContest(ctx context.Context, contestID string) (Contest, error) {
	query := `
		SELECT id, title, description, problem_short_ids, start_at, end_at
		FROM contests
		WHERE id = $1
	`
	var c Contest
	err := r.pool.QueryRow(ctx, query, contestID).Scan(
		&c.ID, &c.Title, &c.Description, &c.ProblemShortIDs, &c.StartAt, &c.EndAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Contest{}, fmt.Errorf("contest not found: %w", err)
		}
		return Contest{}, fmt.Errorf("failed to query contest: %w", err)
	}
	return c, nil
}

func (r *PgContestRepo) ListContests(ctx context.Context) ([]Contest, error) {
	query := `
		SELECT id, title, description, problem_short_ids, start_at, end_at
		FROM contests
		ORDER BY start_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contests: %w", err)
	}
	defer rows.Close()

	var contests []Contest
	for rows.Next() {
		var c Contest
		err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.ProblemShortIDs, &c.StartAt, &c.EndAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contest: %w", err)
		}
		contests = append(contests, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contests: %w", err)
	}
	return contests, nil
}

// UpsertScore raises the stored best atomically. The conditional
// update runs inside the database, so concurrent attempts cannot lose
// a higher score to a lower one.
func (r *PgContestRepo) UpsertScore(ctx context.Context, row ScoreRow) error {
	upsertQuery := `
		INSERT INTO contest_scores (user_uuid, contest_id, problem_short_id, score)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_uuid, contest_id, problem_short_id) DO UPDATE
		SET score = EXCLUDED.score
		WHERE contest_scores.score < EXCLUDED.score
	`
	_, err := r.pool.Exec(ctx, upsertQuery,
		row.UserUUID, row.ContestID, row.ProblemShortID, row.Score)
	if err != nil {
		return fmt.Errorf("failed to upsert contest score: %w", err)
	}
	return nil
}

func (r *PgContestRepo) ListScores(ctx context.Context, contestID string, userUUID uuid.UUID) ([]ScoreRow, error) {
	query := `
		SELECT user_uuid, contest_id, problem_short_id, score
		FROM contest_scores
		WHERE contest_id = $1 AND user_uuid = $2
		ORDER BY problem_short_id
	`
	rows, err := r.pool.Query(ctx, query, contestID, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contest scores: %w", err)
	}
	defer rows.Close()

	var scores []ScoreRow
	for rows.Next() {
		var s ScoreRow
		if err := rows.Scan(&s.UserUUID, &s.ContestID, &s.ProblemShortID, &s.Score); err != nil {
			return nil, fmt.Errorf("failed to scan contest score: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contest scores: %w", err)
	}
	return scores, nil
}

func (r *PgContestRepo) Leaderboard(ctx context.Context, contestID string) ([]LeaderboardRow, error) {
	query := `
		SELECT user_uuid, SUM(score) AS total
		FROM contest_scores
		WHERE contest_id = $1
		GROUP BY user_uuid
		ORDER BY total DESC, user_uuid
	`
	rows, err := r.pool.Query(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var board []LeaderboardRow
	for rows.Next() {
		var row LeaderboardRow
		if err := rows.Scan(&row.UserUUID, &row.TotalScore); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		board = append(board, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	return board, nil
}

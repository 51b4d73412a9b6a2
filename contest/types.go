package contest

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Contest struct {
	ID              string
	Title           string
	Description     string
	ProblemShortIDs []string
	StartAt         time.Time
	EndAt           time.Time
}

// IsOpen reports whether submissions are accepted at the given moment.
func (c Contest) IsOpen(at time.Time) bool {
	return !at.Before(c.StartAt) && at.Before(c.EndAt)
}

func (c Contest) HasProblem(shortID string) bool {
	for _, id := range c.ProblemShortIDs {
		if id == shortID {
			return true
		}
	}
	return false
}

// ScoreRow is one participant's best score on one contest problem.
type ScoreRow struct {
	UserUUID       uuid.UUID
	ContestID      string
	ProblemShortID string
	Score          int
}

// Ledger is a participant's per-problem best scores for one contest.
// TotalScore is always the sum of ProblemScores values.
type Ledger struct {
	UserUUID      uuid.UUID
	ContestID     string
	ProblemScores map[string]int
	TotalScore    int
}

type LeaderboardRow struct {
	UserUUID   uuid.UUID
	TotalScore int
}

type ContestRepo interface {
	SaveContest(ctx context.Context, c Contest) error
	GetContest(ctx context.Context, contestID string) (Contest, error)
	ListContests(ctx context.Context) ([]Contest, error)

	// UpsertScore keeps the stored score monotonically non-decreasing:
	// a row is written only if no score exists for the key or the new
	// score is strictly greater.
	UpsertScore(ctx context.Context, row ScoreRow) error

	ListScores(ctx context.Context, contestID string, userUUID uuid.UUID) ([]ScoreRow, error)
	Leaderboard(ctx context.Context, contestID string) ([]LeaderboardRow, error)
}

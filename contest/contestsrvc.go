package contest

import (
	"context"
	"sort"
	"time"

	"github.com/algotide/backend/logger"
	"github.com/algotide/backend/subm"
	"github.com/google/uuid"
)

type ContestSrvc struct {
	repo  ContestRepo
	subms *subm.SubmSrvc

	now func() time.Time
}

func NewContestSrvc(repo ContestRepo, subms *subm.SubmSrvc) *ContestSrvc {
	return &ContestSrvc{
		repo:  repo,
		subms: subms,
		now:   time.Now,
	}
}

func (s *ContestSrvc) CreateContest(ctx context.Context, c Contest) error {
	if c.ID == "" {
		return newErrInvalidContest("contest id is required")
	}
	if c.Title == "" {
		return newErrInvalidContest("contest title is required")
	}
	if !c.EndAt.After(c.StartAt) {
		return newErrInvalidContest("contest must end after it starts")
	}
	if len(c.ProblemShortIDs) == 0 {
		return newErrInvalidContest("contest must contain at least one problem")
	}
	if err := s.repo.SaveContest(ctx, c); err != nil {
		return newErrInternalSE().SetDebug(err)
	}
	return nil
}

func (s *ContestSrvc) GetContest(ctx context.Context, contestID string) (*Contest, error) {
	c, err := s.repo.GetContest(ctx, contestID)
	if err != nil {
		return nil, newErrContestNotFound().SetDebug(err)
	}
	return &c, nil
}

func (s *ContestSrvc) ListContests(ctx context.Context) ([]Contest, error) {
	contests, err := s.repo.ListContests(ctx)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return contests, nil
}

type SubmitParams struct {
	UserUUID       uuid.UUID
	ProblemShortID string
	Language       string
	SrcCode        string
}

// Submit runs a contest attempt. The time-window and membership guards
// run before any submission record is created; a rejected attempt
// leaves no trace. An accepted attempt's score enters the ledger only
// if it beats the participant's stored best for that problem.
func (s *ContestSrvc) Submit(ctx context.Context, contestID string, p SubmitParams) (*subm.Submission, error) {
	log := logger.FromContext(ctx)

	c, err := s.repo.GetContest(ctx, contestID)
	if err != nil {
		return nil, newErrContestNotFound().SetDebug(err)
	}
	if !c.IsOpen(s.now()) {
		return nil, newErrContestWindowClosed()
	}
	if !c.HasProblem(p.ProblemShortID) {
		return nil, newErrProblemNotInContest()
	}

	submission, err := s.subms.Submit(ctx, subm.SubmitParams{
		UserUUID:       p.UserUUID,
		ProblemShortID: p.ProblemShortID,
		Language:       p.Language,
		SrcCode:        p.SrcCode,
		ContestID:      &contestID,
	})
	if err != nil {
		return nil, err
	}

	if submission.Score > 0 {
		err := s.repo.UpsertScore(ctx, ScoreRow{
			UserUUID:       p.UserUUID,
			ContestID:      contestID,
			ProblemShortID: p.ProblemShortID,
			Score:          submission.Score,
		})
		if err != nil {
			return nil, newErrInternalSE().SetDebug(err)
		}
		log.Info("contest score reconciled",
			"contest", contestID,
			"user", p.UserUUID,
			"problem", p.ProblemShortID,
			"score", submission.Score,
		)
	}

	return submission, nil
}

// GetLedger assembles the participant's ledger from their score rows.
// TotalScore is the sum of the rows, so it cannot drift from the
// per-problem scores.
func (s *ContestSrvc) GetLedger(ctx context.Context, contestID string, userUUID uuid.UUID) (*Ledger, error) {
	if _, err := s.repo.GetContest(ctx, contestID); err != nil {
		return nil, newErrContestNotFound().SetDebug(err)
	}

	rows, err := s.repo.ListScores(ctx, contestID, userUUID)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	ledger := &Ledger{
		UserUUID:      userUUID,
		ContestID:     contestID,
		ProblemScores: make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		ledger.ProblemScores[row.ProblemShortID] = row.Score
		ledger.TotalScore += row.Score
	}
	return ledger, nil
}

func (s *ContestSrvc) Leaderboard(ctx context.Context, contestID string) ([]LeaderboardRow, error) {
	if _, err := s.repo.GetContest(ctx, contestID); err != nil {
		return nil, newErrContestNotFound().SetDebug(err)
	}

	rows, err := s.repo.Leaderboard(ctx, contestID)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalScore > rows[j].TotalScore
	})
	return rows, nil
}

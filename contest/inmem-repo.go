package contest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type scoreKey struct {
	userUUID       uuid.UUID
	problemShortID string
}

type InMemContestRepo struct {
	mu       sync.RWMutex
	contests map[string]Contest
	scores   map[string]map[scoreKey]int // contestID -> scores
}

func NewInMemContestRepo() *InMemContestRepo {
	return &InMemContestRepo{
		contests: make(map[string]Contest),
		scores:   make(map[string]map[scoreKey]int),
	}
}

func (r *InMemContestRepo) SaveContest(ctx context.Context, c Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contests[c.ID] = c
	return nil
}

func (r *InMemContestRepo) GetContest(ctx context.Context, contestID string) (Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contests[contestID]
	if !ok {
		return Contest{}, fmt.Errorf("contest %s not found", contestID)
	}
	return c, nil
}

func (r *InMemContestRepo) ListContests(ctx context.Context) ([]Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]Contest, 0, len(r.contests))
	for _, c := range r.contests {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].StartAt.Before(res[j].StartAt)
	})
	return res, nil
}

func (r *InMemContestRepo) UpsertScore(ctx context.Context, row ScoreRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	scores, ok := r.scores[row.ContestID]
	if !ok {
		scores = make(map[scoreKey]int)
		r.scores[row.ContestID] = scores
	}
	key := scoreKey{userUUID: row.UserUUID, problemShortID: row.ProblemShortID}
	if row.Score > scores[key] {
		scores[key] = row.Score
	}
	return nil
}

func (r *InMemContestRepo) ListScores(ctx context.Context, contestID string, userUUID uuid.UUID) ([]ScoreRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []ScoreRow
	for key, score := range r.scores[contestID] {
		if key.userUUID != userUUID {
			continue
		}
		res = append(res, ScoreRow{
			UserUUID:       userUUID,
			ContestID:      contestID,
			ProblemShortID: key.problemShortID,
			Score:          score,
		})
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].ProblemShortID < res[j].ProblemShortID
	})
	return res, nil
}

func (r *InMemContestRepo) Leaderboard(ctx context.Context, contestID string) ([]LeaderboardRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	totals := make(map[uuid.UUID]int)
	for key, score := range r.scores[contestID] {
		totals[key.userUUID] += score
	}
	res := make([]LeaderboardRow, 0, len(totals))
	for userUUID, total := range totals {
		res = append(res, LeaderboardRow{UserUUID: userUUID, TotalScore: total})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].TotalScore != res[j].TotalScore {
			return res[i].TotalScore > res[j].TotalScore
		}
		return res[i].UserUUID.String() < res[j].UserUUID.String()
	})
	return res, nil
}

package http

import (
	"time"

	"github.com/algotide/backend/contest"
	"github.com/algotide/backend/eval"
	"github.com/algotide/backend/problem"
	"github.com/algotide/backend/subm"
	"github.com/algotide/backend/user"
)

type userResponse struct {
	UUID      string  `json:"uuid"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
}

func mapUser(u *user.User) userResponse {
	return userResponse{
		UUID:      u.UUID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
	}
}

type testCaseResponse struct {
	Input       string `json:"input"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// problemResponse deliberately omits hidden tests and reference
// solutions; only visible examples ever leave the server.
type problemResponse struct {
	ShortID      string             `json:"short_id"`
	Title        string             `json:"title"`
	Difficulty   string             `json:"difficulty"`
	Statement    string             `json:"statement"`
	Tags         []string           `json:"tags"`
	VisibleTests []testCaseResponse `json:"visible_tests"`
	HiddenCount  int                `json:"hidden_test_count"`
}

func mapProblem(p *problem.Problem) problemResponse {
	visible := make([]testCaseResponse, len(p.VisibleTests))
	for i, tc := range p.VisibleTests {
		visible[i] = testCaseResponse{
			Input:       tc.Input,
			Answer:      tc.Answer,
			Explanation: tc.Explanation,
		}
	}
	return problemResponse{
		ShortID:      p.ShortID,
		Title:        p.Title,
		Difficulty:   string(p.Difficulty),
		Statement:    p.Statement,
		Tags:         p.Tags,
		VisibleTests: visible,
		HiddenCount:  len(p.HiddenTests),
	}
}

type submResponse struct {
	UUID           string     `json:"uuid"`
	ProblemShortID string     `json:"problem_short_id"`
	Language       string     `json:"language"`
	ContestID      *string    `json:"contest_id,omitempty"`
	Status         string     `json:"status"`
	Label          string     `json:"label"`
	TestsPassed    int        `json:"tests_passed"`
	TotalTests     int        `json:"total_tests"`
	RuntimeSec     float64    `json:"runtime_sec"`
	MemoryKB       int        `json:"memory_kb"`
	ErrorMsg       *string    `json:"error_message,omitempty"`
	Score          int        `json:"score"`
	CreatedAt      time.Time  `json:"created_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}

func mapSubm(s *subm.Submission) submResponse {
	return submResponse{
		UUID:           s.UUID.String(),
		ProblemShortID: s.ProblemShortID,
		Language:       s.Language,
		ContestID:      s.ContestID,
		Status:         string(s.Status),
		Label:          s.Label,
		TestsPassed:    s.TestsPassed,
		TotalTests:     s.TotalTests,
		RuntimeSec:     s.RuntimeSec,
		MemoryKB:       s.MemoryKB,
		ErrorMsg:       s.ErrorMsg,
		Score:          s.Score,
		CreatedAt:      s.CreatedAt,
		FinishedAt:     s.FinishedAt,
	}
}

type verdictResponse struct {
	Status      string  `json:"status"`
	Label       string  `json:"label"`
	TestsPassed int     `json:"tests_passed"`
	TotalTests  int     `json:"total_tests"`
	RuntimeSec  float64 `json:"runtime_sec"`
	MemoryKB    int     `json:"memory_kb"`
	ErrorMsg    *string `json:"error_message,omitempty"`
}

func mapVerdict(v *eval.Verdict) verdictResponse {
	return verdictResponse{
		Status:      string(v.Status),
		Label:       v.Label,
		TestsPassed: v.TestsPassed,
		TotalTests:  v.TotalTests,
		RuntimeSec:  v.RuntimeSec,
		MemoryKB:    v.MemoryKB,
		ErrorMsg:    v.ErrorMsg,
	}
}

type contestResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ProblemShortIDs []string  `json:"problem_short_ids"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
}

func mapContest(c *contest.Contest) contestResponse {
	return contestResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		ProblemShortIDs: c.ProblemShortIDs,
		StartAt:         c.StartAt,
		EndAt:           c.EndAt,
	}
}

// normalizeLanguage resolves frontend editor aliases to judge language
// names. The editor calls its C++ mode "cpp".
func normalizeLanguage(name string) string {
	if name == "cpp" {
		return "c++"
	}
	return name
}

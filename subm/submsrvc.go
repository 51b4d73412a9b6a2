package subm

import (
	"context"
	"time"

	"github.com/algotide/backend/eval"
	"github.com/algotide/backend/judge"
	"github.com/algotide/backend/logger"
	"github.com/algotide/backend/problem"
	"github.com/google/uuid"
)

const maxSrcCodeBytes = 64 * 1024

// SolvedMarker records a fully accepted practice submission in the
// user's solved set.
type SolvedMarker interface {
	MarkProblemSolved(ctx context.Context, userUUID uuid.UUID, problemShortID string) error
}

type SubmSrvc struct {
	repo     SubmRepo
	problems problem.ProblemSrvcClient
	eval     *eval.Evaluator
	solved   SolvedMarker
}

func NewSubmSrvc(
	repo SubmRepo,
	problems problem.ProblemSrvcClient,
	evaluator *eval.Evaluator,
	solved SolvedMarker,
) *SubmSrvc {
	return &SubmSrvc{
		repo:     repo,
		problems: problems,
		eval:     evaluator,
		solved:   solved,
	}
}

type SubmitParams struct {
	UserUUID       uuid.UUID
	ProblemShortID string
	// Language is a judge language name ("c++", "java", "javascript");
	// frontend aliases are resolved before the params reach this service.
	Language string
	SrcCode  string
	// ContestID marks a contest attempt; nil means practice.
	ContestID *string
}

func validateSubmitParams(p SubmitParams) error {
	if len(p.SrcCode) == 0 {
		return newErrEmptySubmission()
	}
	if len(p.SrcCode) > maxSrcCodeBytes {
		return newErrSubmissionTooLong(maxSrcCodeBytes)
	}
	// reject unsupported languages before any record is created
	if _, err := judge.LanguageID(p.Language); err != nil {
		return err
	}
	return nil
}

// Submit evaluates the source against the problem's hidden tests and
// returns the terminal submission record. The pending record is stored
// before the judge is contacted, so a judge outage never loses the
// attempt; judge failures finalize the record as an error verdict
// instead of propagating.
func (s *SubmSrvc) Submit(ctx context.Context, p SubmitParams) (*Submission, error) {
	log := logger.FromContext(ctx)

	if err := validateSubmitParams(p); err != nil {
		return nil, err
	}

	prob, err := s.problems.GetProblem(ctx, p.ProblemShortID)
	if err != nil {
		return nil, err
	}

	tests := make([]eval.Test, len(prob.HiddenTests))
	for i, tc := range prob.HiddenTests {
		tests[i] = eval.Test{Input: tc.Input, Answer: tc.Answer}
	}

	entity := Submission{
		UUID:           uuid.New(),
		UserUUID:       p.UserUUID,
		ProblemShortID: p.ProblemShortID,
		Language:       p.Language,
		SrcCode:        p.SrcCode,
		ContestID:      p.ContestID,
		Status:         StatusPending,
		TotalTests:     len(tests),
		CreatedAt:      time.Now(),
	}
	if err := s.repo.Store(ctx, entity); err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	verdict, err := s.eval.Evaluate(ctx, eval.Candidate{
		SrcCode:  p.SrcCode,
		Language: p.Language,
		Tests:    tests,
	})
	if err != nil {
		// evaluation errors past validation are unexpected; the record
		// must still reach a terminal state
		msg := err.Error()
		verdict = eval.Verdict{
			Status:     eval.StatusError,
			Label:      judge.StatusInternalError.String(),
			TotalTests: len(tests),
			ErrorMsg:   &msg,
		}
	}

	final := FinalizeParams{
		Status:      verdictStatus(verdict.Status),
		Label:       verdict.Label,
		TestsPassed: verdict.TestsPassed,
		RuntimeSec:  verdict.RuntimeSec,
		MemoryKB:    verdict.MemoryKB,
		ErrorMsg:    verdict.ErrorMsg,
		Score:       s.contestScore(p, prob, verdict),
	}
	if err := s.repo.Finalize(ctx, entity.UUID, final); err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	if p.ContestID == nil && final.Status == StatusAccepted {
		if err := s.solved.MarkProblemSolved(ctx, p.UserUUID, p.ProblemShortID); err != nil {
			log.Error("failed to mark problem solved",
				"user", p.UserUUID, "problem", p.ProblemShortID, "error", err)
		}
	}

	stored, err := s.repo.Get(ctx, entity.UUID)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	log.Info("submission finalized",
		"subm", stored.UUID,
		"problem", stored.ProblemShortID,
		"status", stored.Status,
		"passed", stored.TestsPassed,
		"total", stored.TotalTests,
	)

	return &stored, nil
}

// contestScore is all-or-nothing by problem difficulty; practice
// submissions always carry zero.
func (s *SubmSrvc) contestScore(p SubmitParams, prob problem.Problem, v eval.Verdict) int {
	if p.ContestID == nil {
		return 0
	}
	if v.Status != eval.StatusAccepted {
		return 0
	}
	return prob.Difficulty.ContestScore()
}

func verdictStatus(s eval.Status) Status {
	switch s {
	case eval.StatusAccepted:
		return StatusAccepted
	case eval.StatusWrong:
		return StatusWrong
	default:
		return StatusError
	}
}

// RunVisible evaluates the source against the problem's visible tests
// without persisting anything. Used for the editor's "Run" button.
func (s *SubmSrvc) RunVisible(ctx context.Context, problemShortID string, language string, srcCode string) (*eval.Verdict, error) {
	if len(srcCode) == 0 {
		return nil, newErrEmptySubmission()
	}
	if len(srcCode) > maxSrcCodeBytes {
		return nil, newErrSubmissionTooLong(maxSrcCodeBytes)
	}
	if _, err := judge.LanguageID(language); err != nil {
		return nil, err
	}

	prob, err := s.problems.GetProblem(ctx, problemShortID)
	if err != nil {
		return nil, err
	}

	tests := make([]eval.Test, len(prob.VisibleTests))
	for i, tc := range prob.VisibleTests {
		tests[i] = eval.Test{Input: tc.Input, Answer: tc.Answer}
	}

	verdict, err := s.eval.Evaluate(ctx, eval.Candidate{
		SrcCode:  srcCode,
		Language: language,
		Tests:    tests,
	})
	if err != nil {
		return nil, err
	}
	return &verdict, nil
}

func (s *SubmSrvc) GetSubm(ctx context.Context, submUUID uuid.UUID) (*Submission, error) {
	stored, err := s.repo.Get(ctx, submUUID)
	if err != nil {
		return nil, newErrSubmissionNotFound().SetDebug(err)
	}
	return &stored, nil
}

func (s *SubmSrvc) ListSubms(ctx context.Context, limit int, offset int) ([]Submission, error) {
	if limit <= 0 || limit > 200 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}
	subms, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return subms, nil
}

func (s *SubmSrvc) ListUserSubms(ctx context.Context, userUUID uuid.UUID) ([]Submission, error) {
	subms, err := s.repo.ListByUser(ctx, userUUID)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return subms, nil
}

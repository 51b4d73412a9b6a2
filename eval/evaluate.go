package eval

import (
	"context"
	"log/slog"
	"time"

	"github.com/algotide/backend/judge"
	"github.com/algotide/backend/logger"
)

// JudgeClient is the slice of the judge API the orchestrator drives.
type JudgeClient interface {
	SubmitBatch(ctx context.Context, items []judge.BatchItem) ([]string, error)
	PollBatch(ctx context.Context, tokens []string) ([]judge.Result, error)
}

// Evaluator drives a candidate through the external judge and reduces
// the per-test results into one verdict.
type Evaluator struct {
	logger *slog.Logger
	judge  JudgeClient

	pollInterval time.Duration
	maxPolls     int
}

const (
	defaultPollInterval = 1 * time.Second
	defaultMaxPolls     = 60
)

func NewEvaluator(logger *slog.Logger, judgeClient JudgeClient) *Evaluator {
	return NewCustomEvaluator(logger, judgeClient, defaultPollInterval, defaultMaxPolls)
}

func NewCustomEvaluator(
	logger *slog.Logger,
	judgeClient JudgeClient,
	pollInterval time.Duration,
	maxPolls int,
) *Evaluator {
	return &Evaluator{
		logger:       logger.With("module", "eval"),
		judge:        judgeClient,
		pollInterval: pollInterval,
		maxPolls:     maxPolls,
	}
}

// Evaluate submits the candidate against all of its tests, polls the
// judge until every result is terminal and reduces them into a
// verdict.
//
// Judge transport failures and poll timeouts are not returned as
// errors; they come back as a terminal "error" verdict so the caller
// can finalize its submission record and never leave it pending. The
// error return is reserved for invalid candidates (unsupported
// language), which callers reject before any record exists.
func (e *Evaluator) Evaluate(ctx context.Context, c Candidate) (Verdict, error) {
	log := logger.FromContext(ctx)

	langID, err := judge.LanguageID(c.Language)
	if err != nil {
		return Verdict{}, err
	}

	items := make([]judge.BatchItem, 0, len(c.Tests))
	for _, test := range c.Tests {
		items = append(items, judge.BatchItem{
			SourceCode:     c.SrcCode,
			LanguageID:     langID,
			Stdin:          test.Input,
			ExpectedOutput: test.Answer,
		})
	}

	tokens, err := e.judge.SubmitBatch(ctx, items)
	if err != nil || len(tokens) == 0 {
		log.Warn("judge batch submit failed", "error", err)
		return errorVerdict(len(c.Tests), judge.ErrJudgeUnavailable().Error()), nil
	}

	results, err := e.pollUntilTerminal(ctx, tokens)
	if err != nil {
		log.Warn("judge poll did not finish", "error", err)
		return errorVerdict(len(c.Tests), err.Error()), nil
	}

	verdict := reduce(results)
	log.Debug("evaluation finished",
		"status", verdict.Status,
		"tests_passed", verdict.TestsPassed,
		"total_tests", verdict.TotalTests)
	return verdict, nil
}

// pollUntilTerminal repeatedly fetches the batch status until every
// result is terminal. The wait between polls is a yielding timer, and
// the number of polls is bounded so a judge that never terminates a
// case cannot hold the request forever.
func (e *Evaluator) pollUntilTerminal(ctx context.Context, tokens []string) ([]judge.Result, error) {
	for attempt := 1; ; attempt++ {
		results, err := e.judge.PollBatch(ctx, tokens)
		if err == nil && allTerminal(results) {
			return results, nil
		}
		if err != nil {
			// transient poll failures count against the same bound
			e.logger.Warn("judge poll attempt failed", "attempt", attempt, "error", err)
		}

		if attempt >= e.maxPolls {
			return nil, judge.ErrJudgeTimeout()
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.pollInterval):
		}
	}
}

func allTerminal(results []judge.Result) bool {
	for _, r := range results {
		if !r.StatusID.IsTerminal() {
			return false
		}
	}
	return true
}

// reduce folds terminal per-test results, in test order, into one
// verdict. Accepted cases accumulate runtime (sum) and memory (max).
// When several cases fail, the last failing case decides the label and
// error message.
func reduce(results []judge.Result) Verdict {
	verdict := Verdict{
		Status:     StatusAccepted,
		Label:      judge.StatusAccepted.String(),
		TotalTests: len(results),
	}

	for _, r := range results {
		if r.StatusID == judge.StatusAccepted {
			verdict.TestsPassed++
			verdict.RuntimeSec += float64(r.Time)
			if r.Memory > verdict.MemoryKB {
				verdict.MemoryKB = r.Memory
			}
			continue
		}

		if r.StatusID == judge.StatusWrongAnswer {
			verdict.Status = StatusWrong
		} else {
			verdict.Status = StatusError
		}
		verdict.Label = r.StatusID.String()
		verdict.ErrorMsg = r.Stderr
	}

	return verdict
}

func errorVerdict(totalTests int, msg string) Verdict {
	return Verdict{
		Status:     StatusError,
		Label:      judge.StatusInternalError.String(),
		TotalTests: totalTests,
		ErrorMsg:   &msg,
	}
}

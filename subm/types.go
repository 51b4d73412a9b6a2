package subm

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusWrong    Status = "wrong"
	StatusError    Status = "error"
)

func (s Status) IsTerminal() bool {
	return s != StatusPending
}

// Submission is one evaluation attempt by a user on a problem. Multiple
// records may coexist for the same (user, problem) pair; each attempt
// gets its own UUID.
type Submission struct {
	UUID           uuid.UUID
	UserUUID       uuid.UUID
	ProblemShortID string
	Language       string
	SrcCode        string
	ContestID      *string

	Status Status
	// Label is the judge's human-readable name for the deciding test
	// result, e.g. "Accepted" or "Time Limit Exceeded".
	Label       string
	TestsPassed int
	TotalTests  int
	RuntimeSec  float64
	MemoryKB    int
	ErrorMsg    *string
	Score       int

	CreatedAt  time.Time
	FinishedAt *time.Time
}

// FinalizeParams is the terminal snapshot written exactly once when an
// evaluation finishes.
type FinalizeParams struct {
	Status      Status
	Label       string
	TestsPassed int
	RuntimeSec  float64
	MemoryKB    int
	ErrorMsg    *string
	Score       int
}

type SubmRepo interface {
	Store(ctx context.Context, subm Submission) error

	// Finalize applies the terminal snapshot only if the submission is
	// still pending. Finalizing an already terminal record is an error.
	Finalize(ctx context.Context, submUUID uuid.UUID, p FinalizeParams) error

	Get(ctx context.Context, submUUID uuid.UUID) (Submission, error)
	List(ctx context.Context, limit int, offset int) ([]Submission, error)
	ListByUser(ctx context.Context, userUUID uuid.UUID) ([]Submission, error)
}

package eval

// Test is one input / expected-answer pair the candidate runs against.
type Test struct {
	Input  string
	Answer string
}

// Candidate is the ephemeral input to one evaluation. It is built per
// request and never persisted.
type Candidate struct {
	SrcCode  string
	Language string // canonical name, e.g. "c++"
	Tests    []Test
}

// Status is the coarse outcome category of an evaluation. It matches
// the submission record's terminal states.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusWrong    Status = "wrong"
	StatusError    Status = "error"
)

// Verdict is the reduced, single-valued outcome of evaluating every
// test for one candidate.
type Verdict struct {
	Status      Status
	Label       string // judge's human-readable label of the deciding case
	TestsPassed int
	TotalTests  int
	RuntimeSec  float64 // sum of accepted cases' run times
	MemoryKB    int     // max memory over accepted cases
	ErrorMsg    *string
}

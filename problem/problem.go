package problem

import "time"

// Difficulty is the problem's tier. It decides the contest score of a
// fully accepted attempt.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ContestScore returns the all-or-nothing contest score of the tier.
func (d Difficulty) ContestScore() int {
	switch d {
	case DifficultyHard:
		return 100
	case DifficultyMedium:
		return 50
	case DifficultyEasy:
		return 20
	}
	return 0
}

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// TestCase is one immutable input / expected-output pair owned by a
// problem.
type TestCase struct {
	Input       string `json:"input"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// Solution is a reference solution in one language, shown to users
// after they solve the problem.
type Solution struct {
	Language string `json:"language"`
	SrcCode  string `json:"src_code"`
}

// Problem is a single practice/contest problem. Hidden tests are used
// for scored runs; visible tests back the user-facing "Run" trials.
type Problem struct {
	ShortID    string     `json:"short_id"`
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
	Statement  string     `json:"statement"` // markdown
	Tags       []string   `json:"tags,omitempty"`

	VisibleTests []TestCase `json:"visible_tests"`
	HiddenTests  []TestCase `json:"hidden_tests"`

	Solutions []Solution `json:"solutions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

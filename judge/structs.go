package judge

import (
	"bytes"
	"strconv"
)

// BatchItem is one test-case run sent to the judge: the candidate
// source paired with a single stdin / expected-output combination.
type BatchItem struct {
	SourceCode     string `json:"source_code"`
	LanguageID     int    `json:"language_id"`
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output"`
}

// Result is the judge's current view of one submitted test-case run.
// Tokens are polled until every result's status is terminal.
type Result struct {
	StatusID Status  `json:"status_id"`
	Time     Seconds `json:"time"`
	Memory   int     `json:"memory"`
	Stdout   *string `json:"stdout"`
	Stderr   *string `json:"stderr"`
}

// Seconds is a run duration in seconds. The judge serializes it
// inconsistently as a JSON number, a quoted decimal string, or null.
type Seconds float64

func (s *Seconds) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = 0
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	if len(data) == 0 {
		*s = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*s = Seconds(f)
	return nil
}

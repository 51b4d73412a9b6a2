package judge_test

import (
	"encoding/json"
	"testing"

	"github.com/algotide/backend/judge"
	"github.com/algotide/backend/srvcerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageIDMapping(t *testing.T) {
	cases := []struct {
		name string
		id   int
	}{
		{"c++", 54},
		{"java", 62},
		{"javascript", 63},
	}
	for _, c := range cases {
		id, err := judge.LanguageID(c.name)
		require.NoError(t, err, "language %s", c.name)
		assert.Equal(t, c.id, id, "language %s", c.name)
	}
}

func TestLanguageIDUnsupported(t *testing.T) {
	_, err := judge.LanguageID("python")
	require.Error(t, err)

	srvcErr := &srvcerror.Error{}
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, judge.ErrCodeUnsupportedLanguage, srvcErr.ErrorCode())
}

// "cpp" is a frontend alias, not a judge language; the API edge
// translates it before this package is reached.
func TestLanguageIDRejectsFrontendAlias(t *testing.T) {
	_, err := judge.LanguageID("cpp")
	require.Error(t, err)
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Accepted", judge.StatusAccepted.String())
	assert.Equal(t, "Wrong Answer", judge.StatusWrongAnswer.String())
	assert.Equal(t, "Time Limit Exceeded", judge.StatusTimeLimitExceeded.String())
	assert.Equal(t, "Runtime Error (SIGSEGV)", judge.StatusRuntimeErrSIGSEGV.String())
	assert.Equal(t, "Exec Format Error", judge.StatusExecFormatError.String())
}

func TestStatusTerminality(t *testing.T) {
	assert.False(t, judge.StatusInQueue.IsTerminal())
	assert.False(t, judge.StatusProcessing.IsTerminal())
	for s := judge.StatusAccepted; s <= judge.StatusExecFormatError; s++ {
		assert.True(t, s.IsTerminal(), "status %d", s)
	}
}

func TestSecondsUnmarshal(t *testing.T) {
	var r judge.Result

	err := json.Unmarshal([]byte(`{"status_id":3,"time":"0.002"}`), &r)
	require.NoError(t, err)
	assert.InDelta(t, 0.002, float64(r.Time), 1e-9)

	err = json.Unmarshal([]byte(`{"status_id":3,"time":0.5}`), &r)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, float64(r.Time), 1e-9)

	err = json.Unmarshal([]byte(`{"status_id":2,"time":null}`), &r)
	require.NoError(t, err)
	assert.Zero(t, float64(r.Time))
}

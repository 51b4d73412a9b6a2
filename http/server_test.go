package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/algotide/backend/contest"
	"github.com/algotide/backend/eval"
	"github.com/algotide/backend/judge"
	"github.com/algotide/backend/problem"
	"github.com/algotide/backend/subm"
	"github.com/algotide/backend/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwtKey = []byte("test-signing-key")

// capturingJudge accepts every batch and remembers what was submitted.
type capturingJudge struct {
	batches [][]judge.BatchItem
}

func (j *capturingJudge) SubmitBatch(ctx context.Context, items []judge.BatchItem) ([]string, error) {
	j.batches = append(j.batches, items)
	tokens := make([]string, len(items))
	for i := range items {
		tokens[i] = fmt.Sprintf("tok-%d-%d", len(j.batches), i)
	}
	return tokens, nil
}

func (j *capturingJudge) PollBatch(ctx context.Context, tokens []string) ([]judge.Result, error) {
	results := make([]judge.Result, len(tokens))
	for i := range tokens {
		results[i] = judge.Result{StatusID: judge.StatusAccepted, Time: judge.Seconds(0.01), Memory: 800}
	}
	return results, nil
}

func newTestServer(t *testing.T) (*HttpServer, *capturingJudge) {
	t.Helper()

	userSrvc := user.NewUserSrvc(user.NewInMemUserRepo())
	problemSrvc := problem.NewInMemProblemSrvc([]problem.Problem{
		{
			ShortID:    "add-two",
			Title:      "Add Two Numbers",
			Difficulty: problem.DifficultyMedium,
			Statement:  "Read two integers and print their sum.",
			VisibleTests: []problem.TestCase{
				{Input: "1\n1", Answer: "2", Explanation: "1+1=2"},
			},
			HiddenTests: []problem.TestCase{
				{Input: "1\n2", Answer: "3"},
				{Input: "2\n3", Answer: "5"},
			},
		},
	})

	j := &capturingJudge{}
	evaluator := eval.NewCustomEvaluator(slog.Default(), j, time.Millisecond, 5)
	submSrvc := subm.NewSubmSrvc(subm.NewInMemSubmRepo(), problemSrvc, evaluator, userSrvc)

	contestSrvc := contest.NewContestSrvc(contest.NewInMemContestRepo(), submSrvc)
	err := contestSrvc.CreateContest(context.Background(), contest.Contest{
		ID:              "summer-open",
		Title:           "Summer Open",
		ProblemShortIDs: []string{"add-two"},
		StartAt:         time.Now().Add(-time.Hour),
		EndAt:           time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	return NewHttpServer(userSrvc, problemSrvc, submSrvc, contestSrvc, testJwtKey), j
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	ErrCode string          `json:"code"`
	ErrMsg  string          `json:"message"`
}

func doRequest(t *testing.T, server *HttpServer, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	var env envelope
	if strings.Contains(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func registerAndLogin(t *testing.T, server *HttpServer, username string) string {
	t.Helper()
	rec, _ := doRequest(t, server, http.MethodPost, "/users", "", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := doRequest(t, server, http.MethodPost, "/auth/login", "", map[string]any{
		"username": username,
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var token string
	require.NoError(t, json.Unmarshal(env.Data, &token))
	require.NotEmpty(t, token)
	return token
}

func TestSubmitWithCppAlias(t *testing.T) {
	server, j := newTestServer(t)
	token := registerAndLogin(t, server, "alice")

	rec, env := doRequest(t, server, http.MethodPost, "/submissions", token, map[string]any{
		"problem_short_id": "add-two",
		"language":         "cpp",
		"src_code":         "int main() { return 0; }",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp submResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "accepted", resp.Status)
	assert.Equal(t, 2, resp.TestsPassed)
	assert.Equal(t, "c++", resp.Language)

	// the editor alias resolves to the judge's C++ language id
	require.Len(t, j.batches, 1)
	for _, item := range j.batches[0] {
		assert.Equal(t, 54, item.LanguageID)
	}
}

func TestSubmitRequiresAuth(t *testing.T) {
	server, _ := newTestServer(t)

	rec, env := doRequest(t, server, http.MethodPost, "/submissions", "", map[string]any{
		"problem_short_id": "add-two",
		"language":         "c++",
		"src_code":         "int main() {}",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "error", env.Status)
}

func TestUnsupportedLanguageRejected(t *testing.T) {
	server, j := newTestServer(t)
	token := registerAndLogin(t, server, "bob")

	rec, env := doRequest(t, server, http.MethodPost, "/submissions", token, map[string]any{
		"problem_short_id": "add-two",
		"language":         "python",
		"src_code":         "print(1)",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, judge.ErrCodeUnsupportedLanguage, env.ErrCode)
	assert.Empty(t, j.batches)
}

func TestProblemResponseOmitsHiddenTests(t *testing.T) {
	server, _ := newTestServer(t)

	rec, env := doRequest(t, server, http.MethodGet, "/problems/add-two", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, float64(2), resp["hidden_test_count"])
	// hidden inputs never leave the server (JSON-escaped form)
	assert.NotContains(t, rec.Body.String(), `1\n2`)

	visible, ok := resp["visible_tests"].([]any)
	require.True(t, ok)
	assert.Len(t, visible, 1)
}

func TestRunVisibleEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	rec, env := doRequest(t, server, http.MethodPost, "/submissions/run", "", map[string]any{
		"problem_short_id": "add-two",
		"language":         "javascript",
		"src_code":         "code",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp verdictResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "accepted", resp.Status)
	assert.Equal(t, 1, resp.TotalTests)
}

func TestContestSubmissionAndLeaderboard(t *testing.T) {
	server, _ := newTestServer(t)
	token := registerAndLogin(t, server, "carol")

	rec, env := doRequest(t, server, http.MethodPost, "/contests/summer-open/submissions", token, map[string]any{
		"problem_short_id": "add-two",
		"language":         "cpp",
		"src_code":         "int main() {}",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp submResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, 50, resp.Score)

	rec, env = doRequest(t, server, http.MethodGet, "/contests/summer-open/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var board []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &board))
	require.Len(t, board, 1)
	assert.Equal(t, "carol", board[0]["username"])
	assert.Equal(t, float64(50), board[0]["total_score"])
}

func TestSolvedProblemsEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	token := registerAndLogin(t, server, "dave")

	rec, _ := doRequest(t, server, http.MethodPost, "/submissions", token, map[string]any{
		"problem_short_id": "add-two",
		"language":         "c++",
		"src_code":         "int main() {}",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := doRequest(t, server, http.MethodGet, "/users/dave/solved", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var solved []string
	require.NoError(t, json.Unmarshal(env.Data, &solved))
	assert.Equal(t, []string{"add-two"}, solved)
}

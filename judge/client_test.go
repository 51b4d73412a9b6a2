package judge_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/algotide/backend/judge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitBatchReturnsTokensInOrder(t *testing.T) {
	var gotBody struct {
		Submissions []judge.BatchItem `json:"submissions"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/submissions/batch", r.URL.Path)
		require.Equal(t, "false", r.URL.Query().Get("base64_encoded"))

		err := json.NewDecoder(r.Body).Decode(&gotBody)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"token":"tok-1"},{"token":"tok-2"}]`))
	}))
	defer srv.Close()

	client := judge.NewClient(slog.Default(), srv.URL, "")
	tokens, err := client.SubmitBatch(context.Background(), []judge.BatchItem{
		{SourceCode: "code", LanguageID: 63, Stdin: "1\n2", ExpectedOutput: "3"},
		{SourceCode: "code", LanguageID: 63, Stdin: "2\n3", ExpectedOutput: "5"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"tok-1", "tok-2"}, tokens)
	require.Len(t, gotBody.Submissions, 2)
	assert.Equal(t, "1\n2", gotBody.Submissions[0].Stdin)
	assert.Equal(t, "3", gotBody.Submissions[0].ExpectedOutput)
	assert.Equal(t, 63, gotBody.Submissions[0].LanguageID)
}

func TestSubmitBatchAuthHeaderForwarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret", r.Header.Get("X-Auth-Token"))
		w.Write([]byte(`[{"token":"tok-1"}]`))
	}))
	defer srv.Close()

	client := judge.NewClient(slog.Default(), srv.URL, "secret")
	_, err := client.SubmitBatch(context.Background(), []judge.BatchItem{{LanguageID: 54}})
	require.NoError(t, err)
}

func TestSubmitBatchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := judge.NewClient(slog.Default(), srv.URL, "")
	tokens, err := client.SubmitBatch(context.Background(), []judge.BatchItem{{LanguageID: 54}})
	require.Error(t, err)
	assert.Empty(t, tokens)
}

func TestSubmitBatchTokenCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"token":"tok-1"}]`))
	}))
	defer srv.Close()

	client := judge.NewClient(slog.Default(), srv.URL, "")
	_, err := client.SubmitBatch(context.Background(), []judge.BatchItem{
		{LanguageID: 54}, {LanguageID: 54},
	})
	require.Error(t, err)
}

func TestPollBatchParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "tok-1,tok-2", r.URL.Query().Get("tokens"))
		require.Equal(t, "*", r.URL.Query().Get("fields"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"submissions":[
			{"status_id":3,"time":"0.021","memory":1024,"stdout":"3\n"},
			{"status_id":2,"time":null,"memory":0}
		]}`))
	}))
	defer srv.Close()

	client := judge.NewClient(slog.Default(), srv.URL, "")
	results, err := client.PollBatch(context.Background(), []string{"tok-1", "tok-2"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, judge.StatusAccepted, results[0].StatusID)
	assert.InDelta(t, 0.021, float64(results[0].Time), 1e-9)
	assert.Equal(t, 1024, results[0].Memory)
	assert.True(t, results[0].StatusID.IsTerminal())

	assert.Equal(t, judge.StatusProcessing, results[1].StatusID)
	assert.False(t, results[1].StatusID.IsTerminal())
}

func TestPollBatchResultCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"submissions":[{"status_id":3}]}`))
	}))
	defer srv.Close()

	client := judge.NewClient(slog.Default(), srv.URL, "")
	_, err := client.PollBatch(context.Background(), []string{"tok-1", "tok-2"})
	require.Error(t, err)
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/algotide/backend/contest"
	"github.com/algotide/backend/httpjson"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
)

func (httpserver *HttpServer) listContests(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	contests, err := httpserver.contestSrvc.ListContests(r.Context())
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response := make([]contestResponse, len(contests))
	for i := range contests {
		response[i] = mapContest(&contests[i])
	}
	httpjson.WriteSuccessJson(w, response)
}

func (httpserver *HttpServer) getContest(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	contestID := chi.URLParam(r, "contestId")

	found, err := httpserver.contestSrvc.GetContest(r.Context(), contestID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapContest(found))
}

func (httpserver *HttpServer) createContestSubmission(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	contestID := chi.URLParam(r, "contestId")

	userUUID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var request submitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	submission, err := httpserver.contestSrvc.Submit(r.Context(), contestID, contest.SubmitParams{
		UserUUID:       userUUID,
		ProblemShortID: request.ProblemShortID,
		Language:       normalizeLanguage(request.Language),
		SrcCode:        request.SrcCode,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapSubm(submission))
}

func (httpserver *HttpServer) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	contestID := chi.URLParam(r, "contestId")

	board, err := httpserver.contestSrvc.Leaderboard(r.Context(), contestID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	type leaderboardEntry struct {
		UserUUID   string `json:"user_uuid"`
		Username   string `json:"username,omitempty"`
		TotalScore int    `json:"total_score"`
	}

	response := make([]leaderboardEntry, len(board))
	for i, row := range board {
		entry := leaderboardEntry{
			UserUUID:   row.UserUUID.String(),
			TotalScore: row.TotalScore,
		}
		if u, err := httpserver.userSrvc.GetUserByUUID(r.Context(), row.UserUUID); err == nil {
			entry.Username = u.Username
		}
		response[i] = entry
	}
	httpjson.WriteSuccessJson(w, response)
}

func (httpserver *HttpServer) getMyScores(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	contestID := chi.URLParam(r, "contestId")

	userUUID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	ledger, err := httpserver.contestSrvc.GetLedger(r.Context(), contestID, userUUID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	type ledgerResponse struct {
		ContestID     string         `json:"contest_id"`
		ProblemScores map[string]int `json:"problem_scores"`
		TotalScore    int            `json:"total_score"`
	}
	httpjson.WriteSuccessJson(w, ledgerResponse{
		ContestID:     ledger.ContestID,
		ProblemScores: ledger.ProblemScores,
		TotalScore:    ledger.TotalScore,
	})
}

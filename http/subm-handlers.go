package http

import (
	"encoding/json"
	"net/http"

	"github.com/algotide/backend/httpjson"
	"github.com/algotide/backend/subm"
	"github.com/algotide/backend/user/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/google/uuid"
)

// requireAuth resolves the authenticated user's UUID from the JWT
// claims the middleware attached. Writes a 401 and returns false for
// anonymous or malformed tokens.
func requireAuth(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		httpjson.WriteErrorJson(w, "authentication required", http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	userUUID, err := uuid.Parse(claims.UUID)
	if err != nil {
		httpjson.WriteErrorJson(w, "authentication required", http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userUUID, true
}

type submitRequest struct {
	ProblemShortID string `json:"problem_short_id"`
	Language       string `json:"language"`
	SrcCode        string `json:"src_code"`
}

func (httpserver *HttpServer) createSubmission(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	userUUID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var request submitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	submission, err := httpserver.submSrvc.Submit(r.Context(), subm.SubmitParams{
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

func (httpserver *HttpServer) runVisibleTests(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	var request submitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	verdict, err := httpserver.submSrvc.RunVisible(
		r.Context(),
		request.ProblemShortID,
		normalizeLanguage(request.Language),
		request.SrcCode,
	)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapVerdict(verdict))
}

func (httpserver *HttpServer) listSubmissions(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	userUUID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	subms, err := httpserver.submSrvc.ListUserSubms(r.Context(), userUUID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response := make([]submResponse, len(subms))
	for i := range subms {
		response[i] = mapSubm(&subms[i])
	}
	httpjson.WriteSuccessJson(w, response)
}

func (httpserver *HttpServer) getSubmission(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	submUUID, err := uuid.Parse(chi.URLParam(r, "submUuid"))
	if err != nil {
		httpjson.WriteErrorJson(w, "invalid submission uuid", http.StatusBadRequest, "invalid_uuid")
		return
	}

	submission, err := httpserver.submSrvc.GetSubm(r.Context(), submUUID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapSubm(submission))
}

func (httpserver *HttpServer) listSolvedProblems(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	username := chi.URLParam(r, "username")

	found, err := httpserver.userSrvc.GetUserByUsername(r.Context(), username)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	solved, err := httpserver.userSrvc.ListSolvedProblems(r.Context(), found.UUID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	if solved == nil {
		solved = []string{}
	}
	httpjson.WriteSuccessJson(w, solved)
}

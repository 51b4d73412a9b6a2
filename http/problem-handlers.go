package http

import (
	"net/http"

	"github.com/algotide/backend/httpjson"
	"github.com/algotide/backend/judge"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
)

func (httpserver *HttpServer) listProblems(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	problems, err := httpserver.problemSrvc.ListProblems(r.Context())
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response := make([]problemResponse, len(problems))
	for i := range problems {
		response[i] = mapProblem(&problems[i])
	}
	httpjson.WriteSuccessJson(w, response)
}

func (httpserver *HttpServer) getProblem(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	shortID := chi.URLParam(r, "problemShortId")

	prob, err := httpserver.problemSrvc.GetProblem(r.Context(), shortID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapProblem(&prob))
}

func (httpserver *HttpServer) listLanguages(w http.ResponseWriter, r *http.Request) {
	type languageResponse struct {
		Name    string `json:"name"`
		Display string `json:"display"`
	}

	languages := judge.Languages()
	response := make([]languageResponse, len(languages))
	for i, lang := range languages {
		response[i] = languageResponse{Name: lang.Name, Display: lang.Display}
	}
	httpjson.WriteSuccessJson(w, response)
}

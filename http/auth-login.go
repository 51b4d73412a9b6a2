package http

import (
	"encoding/json"
	"net/http"

	"github.com/algotide/backend/httpjson"
	"github.com/algotide/backend/user/auth"
	"github.com/go-chi/httplog/v2"
)

func (httpserver *HttpServer) authLogin(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	logger.Info("received login request", "username", request.Username)

	loggedIn, err := httpserver.userSrvc.Login(r.Context(), request.Username, request.Password)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	token, err := auth.GenerateJWT(
		loggedIn.Username,
		loggedIn.Email,
		loggedIn.UUID,
		loggedIn.Firstname,
		loggedIn.Lastname,
		httpserver.jwtKey,
	)
	if err != nil {
		logger.Error("failed to generate JWT", "error", err)
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, token)
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/algotide/backend/contest"
	"github.com/algotide/backend/problem"
	"github.com/algotide/backend/subm"
	"github.com/algotide/backend/user"
	"github.com/algotide/backend/user/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
)

type HttpServer struct {
	userSrvc    *user.UserSrvc
	problemSrvc problem.ProblemSrvcClient
	submSrvc    *subm.SubmSrvc
	contestSrvc *contest.ContestSrvc
	jwtKey      []byte
	router      *chi.Mux
}

func NewHttpServer(
	userSrvc *user.UserSrvc,
	problemSrvc problem.ProblemSrvcClient,
	submSrvc *subm.SubmSrvc,
	contestSrvc *contest.ContestSrvc,
	jwtKey []byte,
) *HttpServer {
	router := chi.NewRouter()

	logger := httplog.NewLogger("algotide", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://algotide.dev", "https://www.algotide.dev"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	router.Use(auth.GetJwtAuthMiddleware(jwtKey))

	server := &HttpServer{
		userSrvc:    userSrvc,
		problemSrvc: problemSrvc,
		submSrvc:    submSrvc,
		contestSrvc: contestSrvc,
		jwtKey:      jwtKey,
		router:      router,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

func (httpserver *HttpServer) Handler() http.Handler {
	return httpserver.router
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router

	r.Post("/users", httpserver.authRegister)
	r.Post("/auth/login", httpserver.authLogin)
	r.Get("/users/{username}/solved", httpserver.listSolvedProblems)

	r.Get("/languages", httpserver.listLanguages)

	r.Get("/problems", httpserver.listProblems)
	r.Get("/problems/{problemShortId}", httpserver.getProblem)

	r.Post("/submissions", httpserver.createSubmission)
	r.Post("/submissions/run", httpserver.runVisibleTests)
	r.Get("/submissions", httpserver.listSubmissions)
	r.Get("/submissions/{submUuid}", httpserver.getSubmission)

	r.Get("/contests", httpserver.listContests)
	r.Get("/contests/{contestId}", httpserver.getContest)
	r.Post("/contests/{contestId}/submissions", httpserver.createContestSubmission)
	r.Get("/contests/{contestId}/leaderboard", httpserver.getLeaderboard)
	r.Get("/contests/{contestId}/scores", httpserver.getMyScores)
}

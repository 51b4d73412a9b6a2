package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/algotide/backend/conf"
	"github.com/algotide/backend/contest"
	"github.com/algotide/backend/eval"
	"github.com/algotide/backend/http"
	"github.com/algotide/backend/judge"
	"github.com/algotide/backend/problem"
	"github.com/algotide/backend/subm"
	"github.com/algotide/backend/user"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	jwtKey := os.Getenv("JWT_KEY")
	if jwtKey == "" {
		slog.Error("JWT_KEY is not set")
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, conf.GetPgConnStrFromEnv())
	if err != nil {
		slog.Error("failed to create pg connection pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	userSrvc := user.NewUserSrvc(user.NewPgUserRepo(pool))

	problemSrvc, err := problem.NewProblemSrvc()
	if err != nil {
		slog.Error("failed to initialize problem service", "error", err)
		os.Exit(1)
	}

	judgeClient := judge.NewClientFromEnv()
	evaluator := eval.NewEvaluator(slog.Default(), judgeClient)

	submSrvc := subm.NewSubmSrvc(subm.NewPgSubmRepo(pool), problemSrvc, evaluator, userSrvc)
	contestSrvc := contest.NewContestSrvc(contest.NewPgContestRepo(pool), submSrvc)

	httpServer := http.NewHttpServer(userSrvc, problemSrvc, submSrvc, contestSrvc, []byte(jwtKey))

	address := os.Getenv("HTTP_ADDRESS")
	if address == "" {
		address = ":8080"
	}
	log.Printf("Starting server on %s", address)
	err = httpServer.Start(address)
	log.Printf("Server stopped with error: %v", err)
}

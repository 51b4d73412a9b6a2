// problem-cli uploads problem directories to the configured problem
// store. Usage:
//
//	problem-cli <problem-dir> [<problem-dir> ...]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/algotide/backend/problem"
	"github.com/algotide/backend/problemfs"
	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <problem-dir> [<problem-dir> ...]\n", os.Args[0])
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	srvc, err := problem.NewProblemSrvc()
	if err != nil {
		slog.Error("failed to initialize problem service", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	for _, dir := range os.Args[1:] {
		p, err := problemfs.Read(dir)
		if err != nil {
			slog.Error("failed to read problem directory", "dir", dir, "error", err)
			os.Exit(1)
		}
		if err := srvc.PutProblem(ctx, p); err != nil {
			slog.Error("failed to upload problem", "shortId", p.ShortID, "error", err)
			os.Exit(1)
		}
		slog.Info("uploaded problem",
			"shortId", p.ShortID,
			"difficulty", p.Difficulty,
			"hiddenTests", len(p.HiddenTests),
		)
	}
}

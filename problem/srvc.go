package problem

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/algotide/backend/s3bucket"
)

// ProblemSrvcClient is what the rest of the backend consumes.
type ProblemSrvcClient interface {
	GetProblem(ctx context.Context, shortID string) (Problem, error)
	ListProblems(ctx context.Context) ([]Problem, error)
	PutProblem(ctx context.Context, p *Problem) error
}

// ProblemSrvc keeps all problems in memory. The source of truth is an
// S3 bucket of JSON documents, one per problem, loaded at startup;
// PutProblem writes through to the bucket.
type ProblemSrvc struct {
	mu       sync.RWMutex
	problems []Problem

	s3ProblemBucket *s3bucket.S3Bucket // nil in the in-memory variant
}

// NewProblemSrvc loads every problem document from the configured
// bucket into memory.
func NewProblemSrvc() (*ProblemSrvc, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "eu-central-1"
	}
	bucketName := os.Getenv("PROBLEM_S3_BUCKET")
	if bucketName == "" {
		return nil, fmt.Errorf("PROBLEM_S3_BUCKET is not set")
	}

	bucket, err := s3bucket.NewS3Bucket(region, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 bucket: %w", err)
	}

	start := time.Now()
	slog.Info("downloading problems from S3", "bucket", bucket.Bucket())
	files, err := bucket.ListAndGetAllFiles("")
	if err != nil {
		return nil, fmt.Errorf("failed to list problem files: %w", err)
	}
	slog.Info("downloaded problems from S3",
		"bucket", bucket.Bucket(),
		"count", len(files),
		"time_ms", time.Since(start).Milliseconds())

	problems := make([]Problem, 0, len(files))
	for _, file := range files {
		p := Problem{}
		if err := json.Unmarshal(file.Content, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal problem %s: %w", file.Key, err)
		}
		problems = append(problems, p)
	}

	return &ProblemSrvc{
		problems:        problems,
		s3ProblemBucket: bucket,
	}, nil
}

// NewInMemProblemSrvc returns a service backed only by memory, for
// tests and local development without object storage.
func NewInMemProblemSrvc(problems []Problem) *ProblemSrvc {
	return &ProblemSrvc{problems: problems}
}

func (s *ProblemSrvc) GetProblem(ctx context.Context, shortID string) (Problem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.problems {
		if p.ShortID == shortID {
			return p, nil
		}
	}
	return Problem{}, ErrProblemNotFound(shortID)
}

func (s *ProblemSrvc) ListProblems(ctx context.Context) ([]Problem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]Problem, len(s.problems))
	copy(res, s.problems)
	sort.Slice(res, func(i, j int) bool {
		return res[i].ShortID < res[j].ShortID
	})
	return res, nil
}

// PutProblem validates, uploads and caches a problem. An existing
// problem with the same short id is replaced.
func (s *ProblemSrvc) PutProblem(ctx context.Context, p *Problem) error {
	if err := validate(p); err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	if s.s3ProblemBucket != nil {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal problem: %w", err)
		}
		key := fmt.Sprintf("%s.json", p.ShortID)
		if _, err := s.s3ProblemBucket.Upload(data, key, "application/json"); err != nil {
			return fmt.Errorf("failed to upload problem: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.problems {
		if s.problems[i].ShortID == p.ShortID {
			s.problems[i] = *p
			return nil
		}
	}
	s.problems = append(s.problems, *p)
	return nil
}

func validate(p *Problem) error {
	if p.ShortID == "" {
		return ErrInvalidProblem("short id is required")
	}
	if p.Title == "" {
		return ErrInvalidProblem("title is required")
	}
	if !p.Difficulty.IsValid() {
		return ErrInvalidProblem(fmt.Sprintf("unknown difficulty %q", p.Difficulty))
	}
	if len(p.HiddenTests) == 0 {
		return ErrInvalidProblem("at least one hidden test is required")
	}
	return nil
}

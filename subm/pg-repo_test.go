package subm

import (
	"context"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/peterldowns/pgtestdb"
	"github.com/peterldowns/pgtestdb/migrators/golangmigrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewDB returns a connection pool to a unique and isolated test
// database, fully migrated and ready for testing
func NewDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()
	conf := pgtestdb.Config{
		DriverName: "pgx",
		User:       "algotide", // local dev pg user
		Password:   "algotide", // local dev pg password
		Host:       "localhost",
		Port:       "5433",
		Options:    "sslmode=disable",
	}
	gm := golangmigrator.New("../migrate")
	config := pgtestdb.Custom(t, conf, gm)

	pool, err := pgxpool.New(ctx, config.URL())
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

var existingUserUuid = uuid.New() // user pre-existing in the db

// NewSampleDB adds a sample user to result of NewDB
func NewSampleDB(t *testing.T) *pgxpool.Pool {
	db := NewDB(t)
	_, err := db.Exec(context.Background(), `
		INSERT INTO users (
			uuid, username, email, bcrypt_pwd
		) VALUES (
			$1, 'testuser', 'test@example.com', '$2a$10$XXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX'
		)
	`, existingUserUuid)
	if err != nil {
		t.Fatalf("Failed to create sample user: %v", err)
	}
	return db
}

func pendingSubm() Submission {
	return Submission{
		UUID:           uuid.New(),
		UserUUID:       existingUserUuid,
		ProblemShortID: "add-two",
		Language:       "c++",
		SrcCode:        "int main() { return 0; }",
		Status:         StatusPending,
		TotalTests:     2,
		CreatedAt:      time.Now(),
	}
}

func TestPgSubmRepoStoreAndGet(t *testing.T) {
	t.Parallel()
	repo := NewPgSubmRepo(NewSampleDB(t))
	ctx := context.Background()

	entity := pendingSubm()
	require.NoError(t, repo.Store(ctx, entity))

	got, err := repo.Get(ctx, entity.UUID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
	assert.Equal(t, "add-two", got.ProblemShortID)
	assert.Nil(t, got.FinishedAt)
}

func TestPgSubmRepoFinalizeOnce(t *testing.T) {
	t.Parallel()
	repo := NewPgSubmRepo(NewSampleDB(t))
	ctx := context.Background()

	entity := pendingSubm()
	require.NoError(t, repo.Store(ctx, entity))

	errMsg := "wrong output on case 2"
	err := repo.Finalize(ctx, entity.UUID, FinalizeParams{
		Status:      StatusWrong,
		Label:       "Wrong Answer",
		TestsPassed: 1,
		RuntimeSec:  0.02,
		MemoryKB:    1024,
		ErrorMsg:    &errMsg,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, entity.UUID)
	require.NoError(t, err)
	assert.Equal(t, StatusWrong, got.Status)
	assert.Equal(t, "Wrong Answer", got.Label)
	assert.Equal(t, 1, got.TestsPassed)
	require.NotNil(t, got.ErrorMsg)
	assert.Equal(t, errMsg, *got.ErrorMsg)
	assert.NotNil(t, got.FinishedAt)

	// the terminal state cannot be overwritten
	err = repo.Finalize(ctx, entity.UUID, FinalizeParams{Status: StatusAccepted, TestsPassed: 2})
	require.Error(t, err)

	got, err = repo.Get(ctx, entity.UUID)
	require.NoError(t, err)
	assert.Equal(t, StatusWrong, got.Status)
}

func TestPgSubmRepoListByUser(t *testing.T) {
	t.Parallel()
	repo := NewPgSubmRepo(NewSampleDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		entity := pendingSubm()
		entity.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Store(ctx, entity))
	}

	subms, err := repo.ListByUser(ctx, existingUserUuid)
	require.NoError(t, err)
	require.Len(t, subms, 3)
	// newest first
	assert.True(t, subms[0].CreatedAt.After(subms[2].CreatedAt))

	page, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	UUID      uuid.UUID
	Username  string
	Email     string
	Firstname *string
	Lastname  *string
}

type CreateUserParams struct {
	Username  string
	Email     string
	Firstname *string
	Lastname  *string
	Password  string
}

// UserRow is the stored shape of a user.
type UserRow struct {
	UUID      uuid.UUID
	Username  string
	Email     string
	BcryptPwd []byte
	Firstname *string
	Lastname  *string
	CreatedAt time.Time
}

// UserRepo persists users and their solved-problem sets.
type UserRepo interface {
	Save(ctx context.Context, row UserRow) error
	List(ctx context.Context) ([]UserRow, error)
	GetByUUID(ctx context.Context, userUUID uuid.UUID) (UserRow, error)
	GetByUsername(ctx context.Context, username string) (UserRow, error)

	// AddSolved has set semantics: adding an already-present problem
	// is a no-op, not an error.
	AddSolved(ctx context.Context, userUUID uuid.UUID, problemShortID string) error
	ListSolved(ctx context.Context, userUUID uuid.UUID) ([]string, error)
}

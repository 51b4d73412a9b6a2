package user

import (
	"context"
	"errors"
	"testing"

	"github.com/algotide/backend/srvcerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() CreateUserParams {
	return CreateUserParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	var srvcErr *srvcerror.Error
	require.True(t, errors.As(err, &srvcErr))
	return srvcErr.ErrorCode()
}

func TestCreateUserAndLogin(t *testing.T) {
	srvc := NewUserSrvc(NewInMemUserRepo())
	ctx := context.Background()

	created, err := srvc.CreateUser(ctx, validParams())
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "alice@example.com", created.Email)

	loggedIn, err := srvc.Login(ctx, "alice", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, created.UUID, loggedIn.UUID)
}

func TestLoginIncorrectCredentials(t *testing.T) {
	srvc := NewUserSrvc(NewInMemUserRepo())
	ctx := context.Background()

	_, err := srvc.CreateUser(ctx, validParams())
	require.NoError(t, err)

	_, err = srvc.Login(ctx, "alice", "wrongpassword")
	assert.Equal(t, ErrCodeUsernameOrPasswordIncorrect, errCode(t, err))

	// unknown users produce the same error as wrong passwords
	_, err = srvc.Login(ctx, "mallory", "supersecret")
	assert.Equal(t, ErrCodeUsernameOrPasswordIncorrect, errCode(t, err))
}

func TestCreateUserValidation(t *testing.T) {
	srvc := NewUserSrvc(NewInMemUserRepo())
	ctx := context.Background()

	tests := []struct {
		name     string
		mutate   func(*CreateUserParams)
		wantCode string
	}{
		{"short username", func(p *CreateUserParams) { p.Username = "a" }, ErrCodeUsernameTooShort},
		{"long username", func(p *CreateUserParams) { p.Username = string(make([]byte, 33)) }, ErrCodeUsernameTooLong},
		{"empty email", func(p *CreateUserParams) { p.Email = "" }, ErrCodeEmailInvalid},
		{"malformed email", func(p *CreateUserParams) { p.Email = "not-an-email" }, ErrCodeEmailInvalid},
		{"short password", func(p *CreateUserParams) { p.Password = "short" }, ErrCodePasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := srvc.CreateUser(ctx, p)
			assert.Equal(t, tt.wantCode, errCode(t, err))
		})
	}
}

func TestCreateUserDuplicates(t *testing.T) {
	srvc := NewUserSrvc(NewInMemUserRepo())
	ctx := context.Background()

	_, err := srvc.CreateUser(ctx, validParams())
	require.NoError(t, err)

	dupUsername := validParams()
	dupUsername.Email = "other@example.com"
	_, err = srvc.CreateUser(ctx, dupUsername)
	assert.Equal(t, ErrCodeUsernameAlreadyExists, errCode(t, err))

	dupEmail := validParams()
	dupEmail.Username = "bob"
	_, err = srvc.CreateUser(ctx, dupEmail)
	assert.Equal(t, ErrCodeEmailAlreadyExists, errCode(t, err))
}

func TestSolvedProblemsSetSemantics(t *testing.T) {
	srvc := NewUserSrvc(NewInMemUserRepo())
	ctx := context.Background()

	created, err := srvc.CreateUser(ctx, validParams())
	require.NoError(t, err)

	require.NoError(t, srvc.MarkProblemSolved(ctx, created.UUID, "two-sum"))
	require.NoError(t, srvc.MarkProblemSolved(ctx, created.UUID, "two-sum"))
	require.NoError(t, srvc.MarkProblemSolved(ctx, created.UUID, "edit-distance"))

	solved, err := srvc.ListSolvedProblems(ctx, created.UUID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"two-sum", "edit-distance"}, solved)
}

func TestGetUserByUsernameNotFound(t *testing.T) {
	srvc := NewUserSrvc(NewInMemUserRepo())

	_, err := srvc.GetUserByUsername(context.Background(), "nobody")
	assert.Equal(t, ErrCodeUserNotFound, errCode(t, err))
}

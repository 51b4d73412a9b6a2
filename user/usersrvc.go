package user

import (
	"context"
	"net/mail"
	"time"

	"github.com/algotide/backend/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserSrvc struct {
	repo UserRepo
}

func NewUserSrvc(repo UserRepo) *UserSrvc {
	return &UserSrvc{repo: repo}
}

const (
	minUsernameLength = 2
	maxUsernameLength = 32
	minPasswordLength = 8
	maxPasswordLength = 1024
	maxEmailLength    = 320
)

func validateCreateUserParams(p CreateUserParams) error {
	if len(p.Username) < minUsernameLength {
		return newErrUsernameTooShort(minUsernameLength)
	}
	if len(p.Username) > maxUsernameLength {
		return newErrUsernameTooLong()
	}
	if len(p.Email) == 0 || len(p.Email) > maxEmailLength {
		return newErrEmailInvalid()
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return newErrEmailInvalid()
	}
	if len(p.Password) < minPasswordLength {
		return newErrPasswordTooShort(minPasswordLength)
	}
	if len(p.Password) > maxPasswordLength {
		return newErrPasswordTooLong()
	}
	return nil
}

func (s *UserSrvc) CreateUser(ctx context.Context, p CreateUserParams) (*User, error) {
	log := logger.FromContext(ctx)

	if err := validateCreateUserParams(p); err != nil {
		return nil, err
	}

	allUsers, err := s.repo.List(ctx)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	for _, u := range allUsers {
		if u.Username == p.Username {
			return nil, newErrUsernameExists()
		}
		if u.Email == p.Email {
			return nil, newErrEmailExists()
		}
	}

	bcryptPwd, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	row := UserRow{
		UUID:      uuid.New(),
		Username:  p.Username,
		Email:     p.Email,
		BcryptPwd: bcryptPwd,
		Firstname: p.Firstname,
		Lastname:  p.Lastname,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	log.Info("user created", "username", row.Username, "uuid", row.UUID)

	return rowToUser(row), nil
}

func (s *UserSrvc) Login(ctx context.Context, username string, password string) (*User, error) {
	row, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		// constant-shape response: wrong username and wrong password
		// are indistinguishable to the caller
		return nil, newErrUsernameOrPasswordIncorrect()
	}
	if err := bcrypt.CompareHashAndPassword(row.BcryptPwd, []byte(password)); err != nil {
		return nil, newErrUsernameOrPasswordIncorrect()
	}
	return rowToUser(row), nil
}

func (s *UserSrvc) GetUserByUUID(ctx context.Context, userUUID uuid.UUID) (*User, error) {
	row, err := s.repo.GetByUUID(ctx, userUUID)
	if err != nil {
		return nil, newErrUserNotFound().SetDebug(err)
	}
	return rowToUser(row), nil
}

func (s *UserSrvc) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	row, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, newErrUserNotFound().SetDebug(err)
	}
	return rowToUser(row), nil
}

// MarkProblemSolved records that the user has fully solved the
// problem at least once. Repeated calls do not double-count.
func (s *UserSrvc) MarkProblemSolved(ctx context.Context, userUUID uuid.UUID, problemShortID string) error {
	if err := s.repo.AddSolved(ctx, userUUID, problemShortID); err != nil {
		return newErrInternalSE().SetDebug(err)
	}
	return nil
}

func (s *UserSrvc) ListSolvedProblems(ctx context.Context, userUUID uuid.UUID) ([]string, error) {
	solved, err := s.repo.ListSolved(ctx, userUUID)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return solved, nil
}

func rowToUser(row UserRow) *User {
	return &User{
		UUID:      row.UUID,
		Username:  row.Username,
		Email:     row.Email,
		Firstname: row.Firstname,
		Lastname:  row.Lastname,
	}
}

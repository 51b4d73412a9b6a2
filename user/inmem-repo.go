package user

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type InMemUserRepo struct {
	lock   sync.Mutex
	users  map[uuid.UUID]UserRow
	solved map[uuid.UUID]map[string]bool
}

func NewInMemUserRepo() *InMemUserRepo {
	return &InMemUserRepo{
		users:  make(map[uuid.UUID]UserRow),
		solved: make(map[uuid.UUID]map[string]bool),
	}
}

func (m *InMemUserRepo) Save(ctx context.Context, row UserRow) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.users[row.UUID] = row
	return nil
}

func (m *InMemUserRepo) List(ctx context.Context) ([]UserRow, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	rows := make([]UserRow, 0, len(m.users))
	for _, row := range m.users {
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *InMemUserRepo) GetByUUID(ctx context.Context, userUUID uuid.UUID) (UserRow, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	row, ok := m.users[userUUID]
	if !ok {
		return UserRow{}, fmt.Errorf("user %s not found", userUUID)
	}
	return row, nil
}

func (m *InMemUserRepo) GetByUsername(ctx context.Context, username string) (UserRow, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	for _, row := range m.users {
		if row.Username == username {
			return row, nil
		}
	}
	return UserRow{}, fmt.Errorf("user %s not found", username)
}

func (m *InMemUserRepo) AddSolved(ctx context.Context, userUUID uuid.UUID, problemShortID string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.solved[userUUID] == nil {
		m.solved[userUUID] = make(map[string]bool)
	}
	m.solved[userUUID][problemShortID] = true
	return nil
}

func (m *InMemUserRepo) ListSolved(ctx context.Context, userUUID uuid.UUID) ([]string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	solved := make([]string, 0, len(m.solved[userUUID]))
	for shortID := range m.solved[userUUID] {
		solved = append(solved, shortID)
	}
	return solved, nil
}

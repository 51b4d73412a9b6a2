package subm

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemSubmRepo struct {
	mu    sync.RWMutex
	subms map[uuid.UUID]Submission
}

func NewInMemSubmRepo() *InMemSubmRepo {
	return &InMemSubmRepo{
		subms: make(map[uuid.UUID]Submission),
	}
}

func (r *InMemSubmRepo) Store(ctx context.Context, subm Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subms[subm.UUID]; ok {
		return fmt.Errorf("submission %s already exists", subm.UUID)
	}
	r.subms[subm.UUID] = subm
	return nil
}

func (r *InMemSubmRepo) Finalize(ctx context.Context, submUUID uuid.UUID, p FinalizeParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	subm, ok := r.subms[submUUID]
	if !ok {
		return fmt.Errorf("submission %s not found", submUUID)
	}
	if subm.Status != StatusPending {
		return fmt.Errorf("submission %s is already %s", submUUID, subm.Status)
	}
	now := time.Now()
	subm.Status = p.Status
	subm.Label = p.Label
	subm.TestsPassed = p.TestsPassed
	subm.RuntimeSec = p.RuntimeSec
	subm.MemoryKB = p.MemoryKB
	subm.ErrorMsg = p.ErrorMsg
	subm.Score = p.Score
	subm.FinishedAt = &now
	r.subms[submUUID] = subm
	return nil
}

func (r *InMemSubmRepo) Get(ctx context.Context, submUUID uuid.UUID) (Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subm, ok := r.subms[submUUID]
	if !ok {
		return Submission{}, fmt.Errorf("submission %s not found", submUUID)
	}
	return subm, nil
}

func (r *InMemSubmRepo) List(ctx context.Context, limit int, offset int) ([]Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]Submission, 0, len(r.subms))
	for _, subm := range r.subms {
		all = append(all, subm)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *InMemSubmRepo) ListByUser(ctx context.Context, userUUID uuid.UUID) ([]Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []Submission
	for _, subm := range r.subms {
		if subm.UserUUID == userUUID {
			res = append(res, subm)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

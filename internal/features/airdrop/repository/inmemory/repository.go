package inmemory

import (
	"context"
	"sort"
	"sync"

	"airdrop-tracker-backend/internal/features/airdrop/models"
	"airdrop-tracker-backend/internal/features/airdrop/repository"
)

// AirdropStorage is the in-memory repository. It is the default backend and
// the fake the service tests run against; all records are lost on restart.
type AirdropStorage struct {
	mtx     sync.RWMutex
	storage map[string]*models.Airdrop
	seq     int64
}

func NewAirdropStorage() *AirdropStorage {
	return &AirdropStorage{
		storage: make(map[string]*models.Airdrop),
	}
}

func (s *AirdropStorage) NextSeq(ctx context.Context, n int64) (int64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.seq += n
	return s.seq, nil
}

func (s *AirdropStorage) Create(ctx context.Context, airdrop *models.Airdrop) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.storage[airdrop.ID] = clone(airdrop)
	return nil
}

func (s *AirdropStorage) GetByID(ctx context.Context, id string) (*models.Airdrop, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	airdrop, ok := s.storage[id]
	if !ok {
		return nil, repository.ErrAirdropNotFound
	}
	return clone(airdrop), nil
}

func (s *AirdropStorage) Update(ctx context.Context, airdrop *models.Airdrop) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[airdrop.ID]; !ok {
		return repository.ErrAirdropNotFound
	}
	s.storage[airdrop.ID] = clone(airdrop)
	return nil
}

func (s *AirdropStorage) Delete(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repository.ErrAirdropNotFound
	}
	delete(s.storage, id)
	return nil
}

func (s *AirdropStorage) ListByOwner(ctx context.Context, ownerID string) ([]*models.Airdrop, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.Airdrop{}
	for _, airdrop := range s.storage {
		if airdrop.OwnerID == ownerID {
			res = append(res, clone(airdrop))
		}
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Seq > res[j].Seq
	})

	return res, nil
}

// clone copies a record so callers never alias stored state.
func clone(a *models.Airdrop) *models.Airdrop {
	cp := *a
	if a.Tasks != nil {
		cp.Tasks = make([]models.Task, len(a.Tasks))
		copy(cp.Tasks, a.Tasks)
	}
	return &cp
}

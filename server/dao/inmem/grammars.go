package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ashware/chomsky/server/dao"
	"github.com/google/uuid"
)

// GrammarsRepo is an in-memory implementation of dao.GrammarRepository. It is
// safe for concurrent use.
type GrammarsRepo struct {
	mtx      sync.RWMutex
	grammars map[uuid.UUID]dao.Grammar
}

// NewGrammarsRepository creates an empty GrammarsRepo.
func NewGrammarsRepository() *GrammarsRepo {
	return &GrammarsRepo{
		grammars: map[uuid.UUID]dao.Grammar{},
	}
}

func (repo *GrammarsRepo) Create(ctx context.Context, g dao.Grammar) (dao.Grammar, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Grammar{}, fmt.Errorf("could not generate ID: %w", err)
	}

	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	now := time.Now()
	g.ID = newUUID
	g.Created = now
	g.Modified = now
	repo.grammars[g.ID] = g

	return g, nil
}

func (repo *GrammarsRepo) GetByID(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	repo.mtx.RLock()
	defer repo.mtx.RUnlock()

	g, ok := repo.grammars[id]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}
	return g, nil
}

func (repo *GrammarsRepo) GetAll(ctx context.Context) ([]dao.Grammar, error) {
	repo.mtx.RLock()
	defer repo.mtx.RUnlock()

	all := make([]dao.Grammar, 0, len(repo.grammars))
	for _, g := range repo.grammars {
		all = append(all, g)
	}
	return all, nil
}

func (repo *GrammarsRepo) Update(ctx context.Context, id uuid.UUID, g dao.Grammar) (dao.Grammar, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	existing, ok := repo.grammars[id]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}

	g.ID = existing.ID
	g.Created = existing.Created
	g.Modified = time.Now()
	repo.grammars[id] = g

	return g, nil
}

func (repo *GrammarsRepo) Delete(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	g, ok := repo.grammars[id]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}
	delete(repo.grammars, id)
	return g, nil
}

func (repo *GrammarsRepo) Close() error {
	return nil
}

package inmem

import (
	"context"
	"testing"

	"github.com/ashware/chomsky/server/dao"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_GrammarsRepo_CreateAndGet(t *testing.T) {
	assert := assert.New(t)

	repo := NewGrammarsRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, dao.Grammar{
		Name:   "expr",
		Format: "short",
		Text:   "S -> a",
	})
	if !assert.NoError(err) {
		return
	}

	assert.NotEqual(uuid.UUID{}, created.ID)
	assert.False(created.Created.IsZero())
	assert.False(created.Modified.IsZero())

	fetched, err := repo.GetByID(ctx, created.ID)
	if assert.NoError(err) {
		assert.Equal(created, fetched)
	}

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_GrammarsRepo_Update(t *testing.T) {
	assert := assert.New(t)

	repo := NewGrammarsRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, dao.Grammar{Name: "expr", Format: "short", Text: "S -> a"})
	if !assert.NoError(err) {
		return
	}

	updated, err := repo.Update(ctx, created.ID, dao.Grammar{Name: "expr2", Format: "short", Text: "S -> b"})
	if assert.NoError(err) {
		assert.Equal(created.ID, updated.ID)
		assert.Equal("expr2", updated.Name)
		assert.Equal(created.Created, updated.Created)
	}

	_, err = repo.Update(ctx, uuid.New(), dao.Grammar{})
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_GrammarsRepo_Delete(t *testing.T) {
	assert := assert.New(t)

	repo := NewGrammarsRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, dao.Grammar{Name: "expr", Format: "short", Text: "S -> a"})
	if !assert.NoError(err) {
		return
	}

	deleted, err := repo.Delete(ctx, created.ID)
	if assert.NoError(err) {
		assert.Equal(created, deleted)
	}

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(err, dao.ErrNotFound)

	all, err := repo.GetAll(ctx)
	if assert.NoError(err) {
		assert.Empty(all)
	}
}

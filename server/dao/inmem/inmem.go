// Package inmem provides an in-memory implementation of the server's
// persistence layer, suitable for tests and ephemeral deployments.
package inmem

import (
	"github.com/ashware/chomsky/server/dao"
)

type store struct {
	grammars *GrammarsRepo
}

// NewDatastore creates an empty in-memory store.
func NewDatastore() dao.Store {
	return &store{
		grammars: NewGrammarsRepository(),
	}
}

func (s *store) Grammars() dao.GrammarRepository {
	return s.grammars
}

func (s *store) Close() error {
	return s.grammars.Close()
}

// Package dao defines the persistence interfaces of the grammar analysis
// server and the records they store.
package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Grammar is a stored grammar: its source text, the surface form the text is
// in, and bookkeeping fields.
type Grammar struct {
	// ID uniquely identifies the stored grammar.
	ID uuid.UUID

	// Name is a human-readable label for the grammar.
	Name string

	// Format is the reader format of Text: "short", "ext", or "toml".
	Format string

	// Text is the grammar's source text.
	Text string

	// Created is when the grammar was first stored.
	Created time.Time

	// Modified is when the grammar was last updated.
	Modified time.Time
}

// GrammarRepository provides CRUD operations on stored grammars.
type GrammarRepository interface {

	// Create stores a new grammar and assigns its ID. The stored record is
	// returned.
	Create(ctx context.Context, g Grammar) (Grammar, error)

	// GetByID retrieves the grammar with the given ID. ErrNotFound is
	// returned if no grammar has that ID.
	GetByID(ctx context.Context, id uuid.UUID) (Grammar, error)

	// GetAll retrieves every stored grammar.
	GetAll(ctx context.Context) ([]Grammar, error)

	// Update replaces the grammar with the given ID. The updated record is
	// returned. ErrNotFound is returned if no grammar has that ID.
	Update(ctx context.Context, id uuid.UUID, g Grammar) (Grammar, error)

	// Delete removes the grammar with the given ID and returns the value it
	// had. ErrNotFound is returned if no grammar has that ID.
	Delete(ctx context.Context, id uuid.UUID) (Grammar, error)

	// Close releases any resources held by the repository.
	Close() error
}

// Store is a complete persistence layer for the server.
type Store interface {

	// Grammars returns the repository of stored grammars.
	Grammars() GrammarRepository

	// Close releases all resources held by the store.
	Close() error
}

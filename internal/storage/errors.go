package storage

import "errors"

var (
	// ErrConstraint is returned by Put when a unique index value is already
	// owned by a different primary key.
	ErrConstraint = errors.New("storage: unique constraint violation")
	// ErrUnknownIndex is returned when a lookup names an index the collection
	// never declared.
	ErrUnknownIndex = errors.New("storage: unknown index")
	// ErrNotDeclared is returned by a backend asked to operate on a collection
	// that was never declared on it.
	ErrNotDeclared = errors.New("storage: collection not declared")
)

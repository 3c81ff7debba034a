package repositories

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned by Create when an entity with the same id
	// is already stored. Nothing is mutated in that case.
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrVersionConflict is returned by Update when the stored version token
	// no longer matches the one carried by the item. Callers are expected to
	// re-read and retry; Mutate does exactly that.
	ErrVersionConflict = errors.New("version conflict")
)

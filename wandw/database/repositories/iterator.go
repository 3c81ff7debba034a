package repositories

import "context"

// Iterator is a lazy, page-friendly scan over a collection. The usual loop:
//
//	for it.Next(ctx) {
//		item := it.Item()
//		...
//	}
//	err := it.Err()
//	it.Close(ctx)
type Iterator[T any] interface {
	Next(ctx context.Context) bool
	Item() T
	Err() error
	Close(ctx context.Context) error
}

type sliceIterator[T any] struct {
	items []T
	pos   int
}

// NewSliceIterator wraps an already materialized result set in the Iterator
// contract. Used by the in-memory store and by tests.
func NewSliceIterator[T any](items []T) Iterator[T] {
	return &sliceIterator[T]{items: items}
}

func (it *sliceIterator[T]) Next(context.Context) bool {
	if it.pos >= len(it.items) {
		return false
	}
	it.pos++
	return true
}

func (it *sliceIterator[T]) Item() T {
	return it.items[it.pos-1]
}

func (it *sliceIterator[T]) Err() error { return nil }

func (it *sliceIterator[T]) Close(context.Context) error { return nil }

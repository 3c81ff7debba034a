package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wandwbot/wandw/wandw/database/models"
)

// mongoStore implements the versioned get/create/update/delete/scan contract
// over one collection. The version token is a plain counter bumped on every
// successful write; conditional updates filter on {_id, version} so a stale
// writer matches nothing.
type mongoStore[T models.Entity] struct {
	coll *mongo.Collection
	name string
	new  func() T
}

func newMongoStore[T models.Entity](coll *mongo.Collection, name string, newFn func() T) mongoStore[T] {
	return mongoStore[T]{coll: coll, name: name, new: newFn}
}

func (s *mongoStore[T]) get(ctx context.Context, id string) (T, error) {
	item := s.new()
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", s.name, id, ErrNotFound)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get %s %q: %w", s.name, id, err)
	}
	return item, nil
}

func (s *mongoStore[T]) create(ctx context.Context, item T) error {
	item.SetEntityVersion(1)
	if _, err := s.coll.InsertOne(ctx, item); err != nil {
		item.SetEntityVersion(0)
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s %q: %w", s.name, item.EntityID(), ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create %s %q: %w", s.name, item.EntityID(), err)
	}
	return nil
}

func (s *mongoStore[T]) update(ctx context.Context, item T) error {
	prev := item.EntityVersion()
	item.SetEntityVersion(prev + 1)
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": item.EntityID(), "version": prev}, item)
	if err != nil {
		item.SetEntityVersion(prev)
		return fmt.Errorf("failed to update %s %q: %w", s.name, item.EntityID(), err)
	}
	if res.MatchedCount == 0 {
		item.SetEntityVersion(prev)
		return fmt.Errorf("%s %q: %w", s.name, item.EntityID(), ErrVersionConflict)
	}
	return nil
}

func (s *mongoStore[T]) delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s %q: %w", s.name, id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s %q: %w", s.name, id, ErrNotFound)
	}
	return nil
}

func (s *mongoStore[T]) scan(ctx context.Context, filter bson.M, sort bson.D) (Iterator[T], error) {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", s.name, err)
	}
	return &cursorIterator[T]{cursor: cursor, new: s.new}, nil
}

type cursorIterator[T any] struct {
	cursor *mongo.Cursor
	new    func() T
	item   T
	err    error
}

func (it *cursorIterator[T]) Next(ctx context.Context) bool {
	if !it.cursor.Next(ctx) {
		return false
	}
	item := it.new()
	if err := it.cursor.Decode(item); err != nil {
		it.err = err
		return false
	}
	it.item = item
	return true
}

func (it *cursorIterator[T]) Item() T { return it.item }

func (it *cursorIterator[T]) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.cursor.Err()
}

func (it *cursorIterator[T]) Close(ctx context.Context) error {
	return it.cursor.Close(ctx)
}

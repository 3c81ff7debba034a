// Package memstore provides in-memory implementations of the repository
// interfaces with the same compare-and-swap semantics as the document store.
// Used by tests and for running the bot without a database.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wandwbot/wandw/wandw/database/models"
	"github.com/wandwbot/wandw/wandw/database/repositories"
)

// collection is one versioned key-value space. Items are deep-cloned on the
// way in and out so callers never share memory with the store.
type collection[T models.Entity] struct {
	mu    sync.RWMutex
	items map[string]T
	clone func(T) T
	name  string
}

func newCollection[T models.Entity](name string, clone func(T) T) collection[T] {
	return collection[T]{
		items: make(map[string]T),
		clone: clone,
		name:  name,
	}
}

func (c *collection[T]) get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", c.name, id, repositories.ErrNotFound)
	}
	return c.clone(item), nil
}

func (c *collection[T]) create(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[item.EntityID()]; ok {
		return fmt.Errorf("%s %q: %w", c.name, item.EntityID(), repositories.ErrAlreadyExists)
	}
	item.SetEntityVersion(1)
	c.items[item.EntityID()] = c.clone(item)
	return nil
}

func (c *collection[T]) update(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored, ok := c.items[item.EntityID()]
	if !ok {
		return fmt.Errorf("%s %q: %w", c.name, item.EntityID(), repositories.ErrVersionConflict)
	}
	if stored.EntityVersion() != item.EntityVersion() {
		return fmt.Errorf("%s %q: %w", c.name, item.EntityID(), repositories.ErrVersionConflict)
	}
	item.SetEntityVersion(item.EntityVersion() + 1)
	c.items[item.EntityID()] = c.clone(item)
	return nil
}

func (c *collection[T]) delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return fmt.Errorf("%s %q: %w", c.name, id, repositories.ErrNotFound)
	}
	delete(c.items, id)
	return nil
}

func (c *collection[T]) scan(filter func(T) bool, less func(a, b T) bool) []T {
	c.mu.RLock()
	var out []T
	for _, item := range c.items {
		if filter == nil || filter(item) {
			out = append(out, c.clone(item))
		}
	}
	c.mu.RUnlock()
	if less != nil {
		sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

// PlayerStore implements repositories.PlayerRepository in memory.
type PlayerStore struct {
	c collection[*models.Player]
}

var _ repositories.PlayerRepository = (*PlayerStore)(nil)

func NewPlayerStore() *PlayerStore {
	return &PlayerStore{c: newCollection("player", clonePlayer)}
}

func clonePlayer(p *models.Player) *models.Player {
	cp := *p
	if p.JoinedAt != nil {
		t := *p.JoinedAt
		cp.JoinedAt = &t
	}
	return &cp
}

func (s *PlayerStore) Get(_ context.Context, id string) (*models.Player, error) {
	return s.c.get(id)
}

func (s *PlayerStore) Create(_ context.Context, player *models.Player) error {
	return s.c.create(player)
}

func (s *PlayerStore) Update(_ context.Context, player *models.Player) error {
	return s.c.update(player)
}

func (s *PlayerStore) GetAll(context.Context) (repositories.Iterator[*models.Player], error) {
	return repositories.NewSliceIterator(s.c.scan(nil, byID)), nil
}

func (s *PlayerStore) GetAdventuring(context.Context) (repositories.Iterator[*models.Player], error) {
	return repositories.NewSliceIterator(s.c.scan(func(p *models.Player) bool {
		return p.OnAdventure()
	}, byID)), nil
}

func (s *PlayerStore) GetByAdventure(_ context.Context, adventureID string) (repositories.Iterator[*models.Player], error) {
	return repositories.NewSliceIterator(s.c.scan(func(p *models.Player) bool {
		return p.AdventureID == adventureID
	}, byJoinTime)), nil
}

func byID(a, b *models.Player) bool { return a.ID < b.ID }

func byJoinTime(a, b *models.Player) bool {
	if a.JoinedAt == nil || b.JoinedAt == nil {
		return a.JoinedAt == nil && b.JoinedAt != nil
	}
	return a.JoinedAt.Before(*b.JoinedAt)
}

// AdventureStore implements repositories.AdventureRepository in memory.
type AdventureStore struct {
	c collection[*models.Adventure]
}

var _ repositories.AdventureRepository = (*AdventureStore)(nil)

func NewAdventureStore() *AdventureStore {
	return &AdventureStore{c: newCollection("adventure", cloneAdventure)}
}

func cloneAdventure(a *models.Adventure) *models.Adventure {
	ca := *a
	ca.Log = append([]string(nil), a.Log...)
	return &ca
}

func (s *AdventureStore) Get(_ context.Context, id string) (*models.Adventure, error) {
	return s.c.get(id)
}

func (s *AdventureStore) Create(_ context.Context, adventure *models.Adventure) error {
	return s.c.create(adventure)
}

func (s *AdventureStore) Update(_ context.Context, adventure *models.Adventure) error {
	return s.c.update(adventure)
}

func (s *AdventureStore) Delete(_ context.Context, id string) error {
	return s.c.delete(id)
}

func (s *AdventureStore) GetAll(context.Context) (repositories.Iterator[*models.Adventure], error) {
	return repositories.NewSliceIterator(s.c.scan(nil, func(a, b *models.Adventure) bool {
		return a.ID < b.ID
	})), nil
}

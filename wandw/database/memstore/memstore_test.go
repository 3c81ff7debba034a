package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandwbot/wandw/wandw/database/models"
	"github.com/wandwbot/wandw/wandw/database/repositories"
)

func TestPlayerStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewPlayerStore()

	_, err := store.Get(ctx, "123")
	require.ErrorIs(t, err, repositories.ErrNotFound)

	p := models.NewPlayer("123")
	require.NoError(t, store.Create(ctx, p))
	assert.EqualValues(t, 1, p.Version)

	err = store.Create(ctx, models.NewPlayer("123"))
	require.ErrorIs(t, err, repositories.ErrAlreadyExists)

	got, err := store.Get(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "123", got.ID)
	assert.Equal(t, models.StartingHealth, got.Health)
}

func TestPlayerStore_StaleUpdateConflicts(t *testing.T) {
	ctx := context.Background()
	store := NewPlayerStore()
	require.NoError(t, store.Create(ctx, models.NewPlayer("123")))

	first, err := store.Get(ctx, "123")
	require.NoError(t, err)
	second, err := store.Get(ctx, "123")
	require.NoError(t, err)

	first.Class = "Wizard"
	require.NoError(t, store.Update(ctx, first))

	second.Class = "Bard"
	err = store.Update(ctx, second)
	require.ErrorIs(t, err, repositories.ErrVersionConflict)

	got, err := store.Get(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "Wizard", got.Class, "losing write must not land")
}

func TestPlayerStore_ReturnsClones(t *testing.T) {
	ctx := context.Background()
	store := NewPlayerStore()
	require.NoError(t, store.Create(ctx, models.NewPlayer("123")))

	got, err := store.Get(ctx, "123")
	require.NoError(t, err)
	got.Class = "Rogue"

	again, err := store.Get(ctx, "123")
	require.NoError(t, err)
	assert.Empty(t, again.Class, "mutating a returned copy must not touch the store")
}

func TestPlayerStore_GetByAdventureOrderedByJoinTime(t *testing.T) {
	ctx := context.Background()
	store := NewPlayerStore()

	base := time.Now()
	for i, id := range []string{"3", "1", "2"} {
		p := models.NewPlayer(id)
		// Join times deliberately not in id order.
		p.JoinAdventure("chan-1", models.RankFrontline, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, store.Create(ctx, p))
	}
	outsider := models.NewPlayer("9")
	outsider.JoinAdventure("chan-2", models.RankBackline, base)
	require.NoError(t, store.Create(ctx, outsider))

	it, err := store.GetByAdventure(ctx, "chan-1")
	require.NoError(t, err)
	var ids []string
	for it.Next(ctx) {
		ids = append(ids, it.Item().ID)
	}
	require.NoError(t, it.Err())
	require.NoError(t, it.Close(ctx))

	assert.Equal(t, []string{"3", "1", "2"}, ids)
}

func TestAdventureStore_DeleteAndScan(t *testing.T) {
	ctx := context.Background()
	store := NewAdventureStore()

	err := store.Delete(ctx, "42")
	require.ErrorIs(t, err, repositories.ErrNotFound)

	adv := models.NewAdventure(snowflake.ID(42), snowflake.ID(7), time.Now())
	require.NoError(t, store.Create(ctx, adv))

	it, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.True(t, it.Next(ctx))
	assert.Equal(t, "42", it.Item().ID)
	require.False(t, it.Next(ctx))

	require.NoError(t, store.Delete(ctx, "42"))
	err = store.Delete(ctx, "42")
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

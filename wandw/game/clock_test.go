package game

import (
	"context"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandwbot/wandw/wandw/database/memstore"
	"github.com/wandwbot/wandw/wandw/database/models"
)

func TestTick_RegeneratesOnlyAdventurers(t *testing.T) {
	ctx := context.Background()
	players := memstore.NewPlayerStore()

	adventurer := models.NewPlayer("1")
	adventurer.JoinAdventure("chan-1", models.RankFrontline, time.Now())
	require.NoError(t, players.Create(ctx, adventurer))

	idle := models.NewPlayer("2")
	require.NoError(t, players.Create(ctx, idle))

	clock := NewClock(players, time.Second, 100)
	clock.Tick(ctx)
	clock.Tick(ctx)

	got, err := players.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 200, got.Mana)

	got, err = players.Get(ctx, "2")
	require.NoError(t, err)
	assert.Zero(t, got.Mana)
}

func TestTick_ManaCapsAtMax(t *testing.T) {
	ctx := context.Background()
	players := memstore.NewPlayerStore()

	p := models.NewPlayer("1")
	p.JoinAdventure("chan-1", models.RankFrontline, time.Now())
	p.Mana = models.MaxMana - 1
	require.NoError(t, players.Create(ctx, p))

	clock := NewClock(players, time.Second, 100)
	clock.Tick(ctx)
	clock.Tick(ctx)

	got, err := players.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, models.MaxMana, got.Mana)
}

// leaveOnUpdate races the tick by pulling the player off the adventure right
// before the first write, forcing the conflict-then-abandon path.
func TestTick_AbandonsPlayerRemovedMidTick(t *testing.T) {
	ctx := context.Background()
	players := memstore.NewPlayerStore()
	adventures := memstore.NewAdventureStore()

	m := NewManager(players, adventures)
	registerWithClass(t, m, "1", "wizard")
	require.NoError(t, m.Start(ctx, snowflake.ID(42), snowflake.ID(7), "1", models.RankFrontline))

	racing := &removeOnUpdate{PlayerRepository: players}
	clock := NewClock(racing, time.Second, 100)
	clock.Tick(ctx)

	got, err := players.Get(ctx, "1")
	require.NoError(t, err)
	assert.False(t, got.OnAdventure())
	assert.Zero(t, got.Mana, "mana write for a removed player must be abandoned")
}

func TestNewClock_DefaultManaPerTick(t *testing.T) {
	clock := NewClock(memstore.NewPlayerStore(), time.Second, 0)
	assert.Equal(t, DefaultManaPerTick, clock.manaPerTick)
}

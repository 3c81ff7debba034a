package game

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wandwbot/wandw/wandw/database/models"
	"github.com/wandwbot/wandw/wandw/database/repositories"
)

const DefaultManaPerTick = 100

// Clock regenerates mana for every adventuring player on a fixed period.
// Each player is its own unit of work; a player leaving mid-tick or failing
// to update never affects the rest of the batch.
type Clock struct {
	players     repositories.PlayerRepository
	period      time.Duration
	manaPerTick int
}

func NewClock(players repositories.PlayerRepository, period time.Duration, manaPerTick int) *Clock {
	if manaPerTick <= 0 {
		manaPerTick = DefaultManaPerTick
	}
	return &Clock{
		players:     players,
		period:      period,
		manaPerTick: manaPerTick,
	}
}

// Run ticks until the context is cancelled. Ticks fire on the wall-clock
// period; a tick whose work outlasts the period causes later ticks to be
// dropped, not queued.
func (c *Clock) Run(ctx context.Context) {
	slog.Info("Game clock started",
		slog.String("type", "sys"),
		slog.Duration("period", c.period))

	ticker := time.NewTicker(c.period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Tick(ctx)
		case <-ctx.Done():
			slog.Info("Game clock stopped", slog.String("type", "sys"))
			return
		}
	}
}

// Tick fans out over all adventuring players and waits for every per-player
// mutation to finish or be abandoned.
func (c *Clock) Tick(ctx context.Context) {
	it, err := c.players.GetAdventuring(ctx)
	if err != nil {
		slog.Error("Failed to scan adventuring players",
			slog.String("type", "db"),
			slog.Any("error", err))
		return
	}
	defer it.Close(ctx)

	var g errgroup.Group
	for it.Next(ctx) {
		player := it.Item()
		g.Go(func() error {
			c.tickPlayer(ctx, player)
			return nil
		})
	}
	if err := it.Err(); err != nil {
		slog.Error("Adventuring player scan aborted",
			slog.String("type", "db"),
			slog.Any("error", err))
	}
	_ = g.Wait()
}

// tickPlayer regenerates one player's mana, abandoning silently when a fresh
// read shows the player has left the adventure.
func (c *Clock) tickPlayer(ctx context.Context, player *models.Player) {
	_, err := repositories.MutateFrom(ctx, c.players, player,
		func(p *models.Player) bool { return !p.OnAdventure() },
		func(p *models.Player) { p.RegenerateMana(c.manaPerTick) })
	if err != nil {
		slog.Error("Failed to tick player",
			slog.String("type", "db"),
			slog.String("player_id", player.ID),
			slog.Any("error", err))
	}
}

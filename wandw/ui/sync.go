package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"

	"github.com/wandwbot/wandw/wandw/config"
	"github.com/wandwbot/wandw/wandw/database/models"
	"github.com/wandwbot/wandw/wandw/database/repositories"
)

// Syncer keeps one up-to-date external message per player and per adventure.
// Whether a message must be created or can be edited in place is re-derived
// from store state on every pass, so overlapping passes stay idempotent in
// effect.
type Syncer struct {
	channels   Channels
	players    repositories.PlayerRepository
	adventures repositories.AdventureRepository
	period     time.Duration

	// rendered remembers the last content written per message so unchanged
	// sheets skip the fetch-and-edit round trip entirely.
	rendered *lru.Cache

	now func() time.Time
}

func NewSyncer(channels Channels, players repositories.PlayerRepository, adventures repositories.AdventureRepository, period time.Duration) *Syncer {
	cache, _ := lru.New(config.RenderCacheSize)
	return &Syncer{
		channels:   channels,
		players:    players,
		adventures: adventures,
		period:     period,
		rendered:   cache,
		now:        time.Now,
	}
}

// Run syncs until the context is cancelled.
func (s *Syncer) Run(ctx context.Context) {
	slog.Info("Presentation sync started",
		slog.String("type", "sys"),
		slog.Duration("period", s.period))

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sync(ctx)
		case <-ctx.Done():
			slog.Info("Presentation sync stopped", slog.String("type", "sys"))
			return
		}
	}
}

// Sync runs one full pass over every player and every adventure. Entities
// are processed concurrently and in isolation: one entity's failure is
// logged and never touches the rest of the pass.
func (s *Syncer) Sync(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		s.syncPlayers(ctx)
		return nil
	})
	g.Go(func() error {
		s.syncAdventures(ctx)
		return nil
	})
	_ = g.Wait()
}

func (s *Syncer) syncPlayers(ctx context.Context) {
	it, err := s.players.GetAll(ctx)
	if err != nil {
		slog.Error("Failed to scan players for sync",
			slog.String("type", "db"),
			slog.Any("error", err))
		return
	}
	defer it.Close(ctx)

	var g errgroup.Group
	for it.Next(ctx) {
		player := it.Item()
		g.Go(func() error {
			if err := s.syncPlayer(ctx, player); err != nil {
				slog.Error("Failed to sync player sheet",
					slog.String("type", "ui"),
					slog.String("player_id", player.ID),
					slog.Any("error", err))
			}
			return nil
		})
	}
	if err := it.Err(); err != nil {
		slog.Error("Player scan aborted during sync",
			slog.String("type", "db"),
			slog.Any("error", err))
	}
	_ = g.Wait()
}

func (s *Syncer) syncPlayer(ctx context.Context, player *models.Player) error {
	userID, err := snowflake.Parse(player.ID)
	if err != nil {
		return fmt.Errorf("bad player id: %w", err)
	}
	channelID, err := s.channels.PlayerChannel(userID)
	if err != nil {
		return err
	}

	embed := RenderPlayerSheet(player, s.now())

	if player.RegenerateMessage || player.SheetMessageID == 0 {
		return s.recreate(ctx, channelID, player.SheetMessageID, embed, "player/"+player.ID,
			func(messageID snowflake.ID) (bool, error) {
				return repositories.Mutate(ctx, s.players, player.ID, nil, func(p *models.Player) {
					p.SheetMessageID = messageID
					p.RegenerateMessage = false
				})
			})
	}
	return s.editInPlace(channelID, player.SheetMessageID, embed, "player/"+player.ID)
}

func (s *Syncer) syncAdventures(ctx context.Context) {
	it, err := s.adventures.GetAll(ctx)
	if err != nil {
		slog.Error("Failed to scan adventures for sync",
			slog.String("type", "db"),
			slog.Any("error", err))
		return
	}
	defer it.Close(ctx)

	var g errgroup.Group
	for it.Next(ctx) {
		adventure := it.Item()
		g.Go(func() error {
			if err := s.syncAdventure(ctx, adventure); err != nil {
				slog.Error("Failed to sync adventure board",
					slog.String("type", "ui"),
					slog.String("adventure_id", adventure.ID),
					slog.Any("error", err))
			}
			return nil
		})
	}
	if err := it.Err(); err != nil {
		slog.Error("Adventure scan aborted during sync",
			slog.String("type", "db"),
			slog.Any("error", err))
	}
	_ = g.Wait()
}

func (s *Syncer) syncAdventure(ctx context.Context, adventure *models.Adventure) error {
	members, err := s.adventureMembers(ctx, adventure.ID)
	if err != nil {
		return err
	}

	embed := RenderAdventureBoard(adventure, members, s.now())

	if adventure.RegenerateMessage || adventure.BoardMessageID == 0 {
		return s.recreate(ctx, adventure.ChannelID, adventure.BoardMessageID, embed, "adventure/"+adventure.ID,
			func(messageID snowflake.ID) (bool, error) {
				return repositories.Mutate(ctx, s.adventures, adventure.ID, nil, func(a *models.Adventure) {
					a.BoardMessageID = messageID
					a.RegenerateMessage = false
				})
			})
	}
	return s.editInPlace(adventure.ChannelID, adventure.BoardMessageID, embed, "adventure/"+adventure.ID)
}

func (s *Syncer) adventureMembers(ctx context.Context, adventureID string) ([]*models.Player, error) {
	it, err := s.players.GetByAdventure(ctx, adventureID)
	if err != nil {
		return nil, err
	}
	defer it.Close(ctx)

	var members []*models.Player
	for it.Next(ctx) {
		members = append(members, it.Item())
	}
	return members, it.Err()
}

// recreate posts a fresh message, best-effort deletes the superseded one and
// persists the new id while clearing the regenerate flag in one mutation.
// The entity disappearing before the id lands is benign: its message will be
// orphaned, not resurrected.
func (s *Syncer) recreate(ctx context.Context, channelID, oldMessageID snowflake.ID, embed discord.Embed, cacheKey string, persist func(snowflake.ID) (bool, error)) error {
	messageID, err := s.channels.Send(channelID, embed)
	if err != nil {
		return err
	}

	if oldMessageID != 0 {
		if err := s.channels.Delete(channelID, oldMessageID); err != nil {
			slog.Debug("Failed to delete superseded message",
				slog.String("type", "ui"),
				slog.Any("error", err))
		}
	}

	if _, err := persist(messageID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	s.rendered.Add(messageCacheKey(cacheKey, messageID), fingerprint(embed))
	return nil
}

// editInPlace overwrites the existing message. The fetch happens on every
// pass so a message deleted out of band surfaces immediately; only the edit
// is skipped when the rendered content has not changed since the last pass.
func (s *Syncer) editInPlace(channelID, messageID snowflake.ID, embed discord.Embed, cacheKey string) error {
	if err := s.channels.Fetch(channelID, messageID); err != nil {
		return err
	}

	key := messageCacheKey(cacheKey, messageID)
	fp := fingerprint(embed)
	if cached, ok := s.rendered.Get(key); ok && cached == fp {
		return nil
	}

	if err := s.channels.Edit(channelID, messageID, embed); err != nil {
		return err
	}
	s.rendered.Add(key, fp)
	return nil
}

func messageCacheKey(entityKey string, messageID snowflake.ID) string {
	return fmt.Sprintf("%s/%d", entityKey, messageID)
}

func fingerprint(embed discord.Embed) string {
	return fmt.Sprintf("%s|%v", embed.Title, embed.Fields)
}

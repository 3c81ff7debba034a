package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/sync/errgroup"

	"github.com/wandwbot/wandw/wandw/database/models"
	"github.com/wandwbot/wandw/wandw/database/repositories"
)

var (
	ErrNotRegistered      = errors.New("player is not registered")
	ErrAlreadyRegistered  = errors.New("player is already registered")
	ErrNoClass            = errors.New("player has no class selected")
	ErrAlreadyOnAdventure = errors.New("player is already on an adventure")
	ErrNotOnAdventure     = errors.New("player is not on an adventure")
	ErrNoAdventure        = errors.New("no adventure in this channel")
	ErrUnknownClass       = errors.New("unknown class")
)

// Manager composes the retry protocol into the adventure lifecycle
// operations. Cross-entity effects are sequences of independent per-entity
// CAS writes; membership is always derived by scanning players, never stored
// on the adventure.
type Manager struct {
	players    repositories.PlayerRepository
	adventures repositories.AdventureRepository
	now        func() time.Time
}

func NewManager(players repositories.PlayerRepository, adventures repositories.AdventureRepository) *Manager {
	return &Manager{
		players:    players,
		adventures: adventures,
		now:        time.Now,
	}
}

// Register creates the player entity. Registering twice reports
// ErrAlreadyRegistered and leaves the existing player untouched.
func (m *Manager) Register(ctx context.Context, userID string) error {
	err := m.players.Create(ctx, models.NewPlayer(userID))
	if errors.Is(err, repositories.ErrAlreadyExists) {
		return ErrAlreadyRegistered
	}
	return err
}

// Class returns the player's current class selection, "" when unset.
func (m *Manager) Class(ctx context.Context, userID string) (string, error) {
	player, err := m.players.Get(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", ErrNotRegistered
	}
	if err != nil {
		return "", err
	}
	return player.Class, nil
}

// SetClass validates the class name against the closed set and writes it.
func (m *Manager) SetClass(ctx context.Context, userID, class string) (string, error) {
	name, ok := NormalizeClass(class)
	if !ok {
		return "", fmt.Errorf("%q: %w", class, ErrUnknownClass)
	}
	_, err := repositories.Mutate(ctx, m.players, userID, nil, func(p *models.Player) {
		p.Class = name
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return "", ErrNotRegistered
	}
	return name, err
}

// Start creates the channel's adventure if it does not exist yet (an existing
// one is not an error), puts the player on it and logs the join.
func (m *Manager) Start(ctx context.Context, channelID, guildID snowflake.ID, userID string, rank models.Rank) error {
	player, err := m.players.Get(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotRegistered
	}
	if err != nil {
		return err
	}
	if player.Class == "" {
		return ErrNoClass
	}
	if player.OnAdventure() {
		return ErrAlreadyOnAdventure
	}

	adventure := models.NewAdventure(channelID, guildID, m.now())
	if err := m.adventures.Create(ctx, adventure); err != nil && !errors.Is(err, repositories.ErrAlreadyExists) {
		return err
	}

	now := m.now()
	if _, err := repositories.MutateFrom(ctx, m.players, player, nil, func(p *models.Player) {
		p.JoinAdventure(adventure.ID, rank, now)
	}); err != nil {
		return err
	}

	m.appendLog(ctx, adventure.ID, fmt.Sprintf("<@%s> joined the Adventure at the %s!", userID, rank))
	return nil
}

// Stop clears the adventure reference from every member, deletes the
// adventure, then sweeps the membership once more to catch players who
// joined between the first sweep and the delete. The second sweep makes the
// clear at-least-once, not exactly-once.
func (m *Manager) Stop(ctx context.Context, channelID snowflake.ID) error {
	id := channelID.String()

	m.clearMembers(ctx, id)

	err := m.adventures.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNoAdventure
	}
	if err != nil {
		return err
	}

	m.clearMembers(ctx, id)
	return nil
}

// clearMembers removes every player currently pointing at the adventure,
// each through its own retry loop. A player seen to have already left is
// skipped; one player's failure does not stop the sweep.
func (m *Manager) clearMembers(ctx context.Context, adventureID string) {
	it, err := m.players.GetByAdventure(ctx, adventureID)
	if err != nil {
		slog.Error("Failed to scan adventure members",
			slog.String("type", "db"),
			slog.String("adventure_id", adventureID),
			slog.Any("error", err))
		return
	}
	defer it.Close(ctx)

	var g errgroup.Group
	for it.Next(ctx) {
		player := it.Item()
		g.Go(func() error {
			_, err := repositories.MutateFrom(ctx, m.players, player,
				func(p *models.Player) bool { return p.AdventureID != adventureID },
				func(p *models.Player) { p.LeaveAdventure() })
			if err != nil {
				slog.Error("Failed to remove player from adventure",
					slog.String("type", "db"),
					slog.String("player_id", player.ID),
					slog.String("adventure_id", adventureID),
					slog.Any("error", err))
			}
			return nil
		})
	}
	if err := it.Err(); err != nil {
		slog.Error("Member scan aborted",
			slog.String("type", "db"),
			slog.String("adventure_id", adventureID),
			slog.Any("error", err))
	}
	_ = g.Wait()
}

// Move changes the player's rank within their current adventure. It reports
// applied=false without error when the player is removed from the adventure
// before the write lands; the stale rank write is abandoned rather than
// resurrecting the membership.
func (m *Manager) Move(ctx context.Context, userID string, rank models.Rank) (applied bool, err error) {
	player, err := m.players.Get(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, ErrNotRegistered
	}
	if err != nil {
		return false, err
	}
	if !player.OnAdventure() {
		return false, ErrNotOnAdventure
	}

	from, adventureID := player.Rank, player.AdventureID

	applied, err = repositories.MutateFrom(ctx, m.players, player,
		func(p *models.Player) bool { return !p.OnAdventure() },
		func(p *models.Player) { p.Rank = rank })
	if err != nil || !applied {
		return applied, err
	}

	// Log text uses the rank captured before the mutation; it is allowed to
	// trail the rank write.
	m.appendLog(ctx, adventureID, fmt.Sprintf("<@%s> moved from the %s to the %s!", userID, from, rank))
	return true, nil
}

// Refresh flags the channel's adventure board for recreation on the next
// sync pass.
func (m *Manager) Refresh(ctx context.Context, channelID snowflake.ID) error {
	_, err := repositories.Mutate(ctx, m.adventures, channelID.String(), nil, func(a *models.Adventure) {
		a.RegenerateMessage = true
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNoAdventure
	}
	return err
}

// appendLog adds an entry to the adventure log. The log is best-effort: an
// adventure that ended mid-append is not an error.
func (m *Manager) appendLog(ctx context.Context, adventureID, entry string) {
	_, err := repositories.Mutate(ctx, m.adventures, adventureID, nil, func(a *models.Adventure) {
		a.AppendLog(entry)
	})
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		slog.Error("Failed to append adventure log",
			slog.String("type", "db"),
			slog.String("adventure_id", adventureID),
			slog.Any("error", err))
	}
}

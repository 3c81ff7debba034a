package models

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

type GameStatus string

const (
	GameStatusIdle      GameStatus = "idle"
	GameStatusAdventure GameStatus = "adventure"
)

const (
	MaxMana        = 6000
	StartingHealth = 1000
)

// Player is keyed by the Discord user id. The adventure-linked fields
// (AdventureID, JoinedAt, Rank, GameStatus) are only ever changed together,
// through JoinAdventure and LeaveAdventure.
type Player struct {
	ID      string `bson:"_id"`
	Version int64  `bson:"version"`

	GameStatus  GameStatus `bson:"game_status"`
	Class       string     `bson:"class,omitempty"`
	AdventureID string     `bson:"adventure_id,omitempty"`
	JoinedAt    *time.Time `bson:"joined_at,omitempty"`
	Rank        Rank       `bson:"rank,omitempty"`

	Health    int `bson:"health"`
	MaxHealth int `bson:"max_health"`
	Mana      int `bson:"mana"`

	// SheetMessageID is the player-sheet message in the player's DM channel,
	// 0 when none has been posted yet.
	SheetMessageID    snowflake.ID `bson:"sheet_message_id"`
	RegenerateMessage bool         `bson:"regenerate_message"`
}

// NewPlayer returns a freshly registered, idle player at full health.
func NewPlayer(id string) *Player {
	return &Player{
		ID:         id,
		GameStatus: GameStatusIdle,
		Health:     StartingHealth,
		MaxHealth:  StartingHealth,
	}
}

func (p *Player) EntityID() string               { return p.ID }
func (p *Player) EntityVersion() int64           { return p.Version }
func (p *Player) SetEntityVersion(version int64) { p.Version = version }

func (p *Player) OnAdventure() bool {
	return p.AdventureID != ""
}

// JoinAdventure moves the player onto an adventure, resetting mana and
// restoring health for the run.
func (p *Player) JoinAdventure(adventureID string, rank Rank, now time.Time) {
	p.GameStatus = GameStatusAdventure
	p.AdventureID = adventureID
	p.JoinedAt = &now
	p.Rank = rank
	p.Mana = 0
	p.Health = p.MaxHealth
}

// LeaveAdventure clears every adventure-linked field and returns the player
// to idle.
func (p *Player) LeaveAdventure() {
	p.GameStatus = GameStatusIdle
	p.AdventureID = ""
	p.JoinedAt = nil
	p.Rank = ""
	p.Mana = 0
}

// RegenerateMana adds amount, never exceeding MaxMana.
func (p *Player) RegenerateMana(amount int) {
	if p.Mana >= MaxMana {
		return
	}
	p.Mana += amount
	if p.Mana > MaxMana {
		p.Mana = MaxMana
	}
}

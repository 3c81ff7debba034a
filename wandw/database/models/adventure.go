package models

import (
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Rank is a player's combat position within an adventure.
type Rank string

const (
	RankFrontline Rank = "Frontline"
	RankMidline   Rank = "Midline"
	RankBackline  Rank = "Backline"
)

// ParseRank accepts the shorthand the game has always accepted: any input
// starting with f, m or b, case-insensitive.
func ParseRank(input string) (Rank, bool) {
	switch input = strings.ToLower(strings.TrimSpace(input)); {
	case strings.HasPrefix(input, "f"):
		return RankFrontline, true
	case strings.HasPrefix(input, "m"):
		return RankMidline, true
	case strings.HasPrefix(input, "b"):
		return RankBackline, true
	}
	return "", false
}

// LogCapacity bounds the adventure log; the oldest entries are evicted first.
const LogCapacity = 10

// Adventure is keyed by the channel it runs in: one adventure per channel at
// a time. Membership is not stored here; it is derived by querying players
// whose AdventureID matches.
type Adventure struct {
	ID      string `bson:"_id"`
	Version int64  `bson:"version"`

	ChannelID snowflake.ID `bson:"channel_id"`
	GuildID   snowflake.ID `bson:"guild_id"`
	StartedAt time.Time    `bson:"started_at"`

	Log []string `bson:"log,omitempty"`

	// BoardMessageID is the adventure-board message in the channel, 0 when
	// none has been posted yet.
	BoardMessageID    snowflake.ID `bson:"board_message_id"`
	RegenerateMessage bool         `bson:"regenerate_message"`
}

// NewAdventure creates the adventure for a channel. RegenerateMessage starts
// set so the first sync pass posts the board.
func NewAdventure(channelID, guildID snowflake.ID, now time.Time) *Adventure {
	return &Adventure{
		ID:                channelID.String(),
		ChannelID:         channelID,
		GuildID:           guildID,
		StartedAt:         now,
		RegenerateMessage: true,
	}
}

func (a *Adventure) EntityID() string               { return a.ID }
func (a *Adventure) EntityVersion() int64           { return a.Version }
func (a *Adventure) SetEntityVersion(version int64) { a.Version = version }

// AppendLog appends entry, evicting the oldest entries beyond LogCapacity.
func (a *Adventure) AppendLog(entry string) {
	a.Log = append(a.Log, entry)
	if n := len(a.Log); n > LogCapacity {
		a.Log = a.Log[n-LogCapacity:]
	}
}

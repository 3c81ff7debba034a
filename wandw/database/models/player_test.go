package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayer(t *testing.T) {
	p := NewPlayer("123")

	assert.Equal(t, "123", p.ID)
	assert.Equal(t, GameStatusIdle, p.GameStatus)
	assert.Equal(t, StartingHealth, p.Health)
	assert.Equal(t, StartingHealth, p.MaxHealth)
	assert.Zero(t, p.Mana)
	assert.False(t, p.OnAdventure())
}

func TestJoinAndLeaveAdventure_LinkedFieldsMoveTogether(t *testing.T) {
	p := NewPlayer("123")
	p.Mana = 500
	p.Health = 400

	now := time.Now()
	p.JoinAdventure("chan-1", RankFrontline, now)

	require.True(t, p.OnAdventure())
	assert.Equal(t, GameStatusAdventure, p.GameStatus)
	assert.Equal(t, "chan-1", p.AdventureID)
	require.NotNil(t, p.JoinedAt)
	assert.Equal(t, now, *p.JoinedAt)
	assert.Equal(t, RankFrontline, p.Rank)
	assert.Zero(t, p.Mana)
	assert.Equal(t, p.MaxHealth, p.Health)

	p.LeaveAdventure()

	assert.False(t, p.OnAdventure())
	assert.Equal(t, GameStatusIdle, p.GameStatus)
	assert.Empty(t, p.AdventureID)
	assert.Nil(t, p.JoinedAt)
	assert.Empty(t, p.Rank)
	assert.Zero(t, p.Mana)
}

func TestRegenerateMana_Cap(t *testing.T) {
	p := NewPlayer("123")
	p.Mana = MaxMana - 50

	p.RegenerateMana(100)
	assert.Equal(t, MaxMana, p.Mana)

	p.RegenerateMana(100)
	assert.Equal(t, MaxMana, p.Mana)
}

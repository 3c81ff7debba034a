package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandwbot/wandw/wandw/database/memstore"
	"github.com/wandwbot/wandw/wandw/database/models"
)

// fakeChannels maps each user to a DM channel with the same id and records
// every call, keeping live messages so Fetch/Edit/Delete behave like the
// real surface.
type fakeChannels struct {
	mu       sync.Mutex
	nextID   snowflake.ID
	messages map[string]discord.Embed

	sends, edits, fetches, deletes int

	sendErr error
	dmErr   error
}

func newFakeChannels() *fakeChannels {
	return &fakeChannels{
		nextID:   1000,
		messages: make(map[string]discord.Embed),
	}
}

func messageKey(channelID, messageID snowflake.ID) string {
	return fmt.Sprintf("%d/%d", channelID, messageID)
}

func (f *fakeChannels) PlayerChannel(userID snowflake.ID) (snowflake.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dmErr != nil {
		return 0, f.dmErr
	}
	return userID, nil
}

func (f *fakeChannels) Send(channelID snowflake.ID, embed discord.Embed) (snowflake.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.sends++
	f.nextID++
	f.messages[messageKey(channelID, f.nextID)] = embed
	return f.nextID, nil
}

func (f *fakeChannels) Edit(channelID, messageID snowflake.ID, embed discord.Embed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := messageKey(channelID, messageID)
	if _, ok := f.messages[key]; !ok {
		return errors.New("unknown message")
	}
	f.edits++
	f.messages[key] = embed
	return nil
}

func (f *fakeChannels) Fetch(channelID, messageID snowflake.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if _, ok := f.messages[messageKey(channelID, messageID)]; !ok {
		return errors.New("unknown message")
	}
	return nil
}

func (f *fakeChannels) Delete(channelID, messageID snowflake.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := messageKey(channelID, messageID)
	if _, ok := f.messages[key]; !ok {
		return errors.New("unknown message")
	}
	f.deletes++
	delete(f.messages, key)
	return nil
}

func (f *fakeChannels) counts() (sends, edits, fetches, deletes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sends, f.edits, f.fetches, f.deletes
}

func newTestSyncer(channels Channels, players *memstore.PlayerStore, adventures *memstore.AdventureStore) *Syncer {
	s := NewSyncer(channels, players, adventures, time.Second)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func TestSync_CreatesFirstSheet(t *testing.T) {
	ctx := context.Background()
	channels := newFakeChannels()
	players := memstore.NewPlayerStore()
	adventures := memstore.NewAdventureStore()
	require.NoError(t, players.Create(ctx, models.NewPlayer("123")))

	s := newTestSyncer(channels, players, adventures)
	s.Sync(ctx)

	sends, edits, _, deletes := channels.counts()
	assert.Equal(t, 1, sends)
	assert.Zero(t, edits)
	assert.Zero(t, deletes)

	got, err := players.Get(ctx, "123")
	require.NoError(t, err)
	assert.NotZero(t, got.SheetMessageID, "new message id must be persisted")
	assert.False(t, got.RegenerateMessage)
}

func TestSync_EditsInPlaceWhenContentChanges(t *testing.T) {
	ctx := context.Background()
	channels := newFakeChannels()
	players := memstore.NewPlayerStore()
	adventures := memstore.NewAdventureStore()

	p := models.NewPlayer("123")
	p.JoinAdventure("chan-1", models.RankFrontline, time.Unix(1699999000, 0))
	require.NoError(t, players.Create(ctx, p))

	s := newTestSyncer(channels, players, adventures)
	s.Sync(ctx)

	// Mana changed: the next pass must edit the existing message, not post
	// a new one.
	p, err := players.Get(ctx, "123")
	require.NoError(t, err)
	p.RegenerateMana(100)
	require.NoError(t, players.Update(ctx, p))

	s.Sync(ctx)

	sends, edits, fetches, _ := channels.counts()
	assert.Equal(t, 1, sends)
	assert.Equal(t, 1, edits)
	assert.Equal(t, 1, fetches)
}

func TestSync_UnchangedContentStillFetchesEveryPass(t *testing.T) {
	ctx := context.Background()
	channels := newFakeChannels()
	players := memstore.NewPlayerStore()
	adventures := memstore.NewAdventureStore()
	require.NoError(t, players.Create(ctx, models.NewPlayer("123")))

	s := newTestSyncer(channels, players, adventures)
	s.Sync(ctx)
	s.Sync(ctx)
	s.Sync(ctx)

	sends, edits, fetches, _ := channels.counts()
	assert.Equal(t, 1, sends)
	assert.Zero(t, edits, "idle sheet never changes, no edit needed")
	assert.Equal(t, 2, fetches, "every edit-path pass verifies the message still exists")
}

func TestSync_DetectsMessageDeletedOutOfBand(t *testing.T) {
	ctx := context.Background()
	channels := newFakeChannels()
	players := memstore.NewPlayerStore()
	adventures := memstore.NewAdventureStore()
	require.NoError(t, players.Create(ctx, models.NewPlayer("123")))

	s := newTestSyncer(channels, players, adventures)
	s.Sync(ctx)

	got, err := players.Get(ctx, "123")
	require.NoError(t, err)
	channels.mu.Lock()
	delete(channels.messages, messageKey(123, got.SheetMessageID))
	channels.mu.Unlock()

	// Content is unchanged, but the pass must still notice the message is
	// gone instead of silently serving the cache.
	s.Sync(ctx)

	sends, edits, fetches, _ := channels.counts()
	assert.Equal(t, 1, sends)
	assert.Zero(t, edits)
	assert.Equal(t, 1, fetches)
}

func TestSync_RegenerateRecreatesAndDeletesOld(t *testing.T) {
	ctx := context.Background()
	channels := newFakeChannels()
	players := memstore.NewPlayerStore()
	adventures := memstore.NewAdventureStore()
	require.NoError(t, players.Create(ctx, models.NewPlayer("123")))

	s := newTestSyncer(channels, players, adventures)
	s.Sync(ctx)

	first, err := players.Get(ctx, "123")
	require.NoError(t, err)
	firstID := first.SheetMessageID

	first.RegenerateMessage = true
	require.NoError(t, players.Update(ctx, first))

	s.Sync(ctx)

	sends, _, _, deletes := channels.counts()
	assert.Equal(t, 2, sends)
	assert.Equal(t, 1, deletes)

	got, err := players.Get(ctx, "123")
	require.NoError(t, err)
	assert.NotEqual(t, firstID, got.SheetMessageID)
	assert.False(t, got.RegenerateMessage)
}

func TestSync_AdventureBoard(t *testing.T) {
	ctx := context.Background()
	channels := newFakeChannels()
	players := memstore.NewPlayerStore()
	adventures := memstore.NewAdventureStore()

	adv := models.NewAdventure(42, 7, time.Unix(1699999000, 0))
	require.NoError(t, adventures.Create(ctx, adv))

	member := models.NewPlayer("1")
	member.Class = "Fighter"
	member.JoinAdventure(adv.ID, models.RankFrontline, time.Unix(1699999000, 0))
	require.NoError(t, players.Create(ctx, member))

	s := newTestSyncer(channels, players, adventures)
	s.Sync(ctx)

	got, err := adventures.Get(ctx, adv.ID)
	require.NoError(t, err)
	assert.NotZero(t, got.BoardMessageID)
	assert.False(t, got.RegenerateMessage)

	board, ok := channels.messages[messageKey(adv.ChannelID, got.BoardMessageID)]
	require.True(t, ok)
	assert.Contains(t, board.Fields[0].Value, "<@1> (Fighter)")
}

func TestSync_OneFailureDoesNotStopThePass(t *testing.T) {
	ctx := context.Background()
	channels := newFakeChannels()
	channels.dmErr = errors.New("dm blocked")
	players := memstore.NewPlayerStore()
	adventures := memstore.NewAdventureStore()

	require.NoError(t, players.Create(ctx, models.NewPlayer("123")))
	adv := models.NewAdventure(42, 7, time.Unix(1699999000, 0))
	require.NoError(t, adventures.Create(ctx, adv))

	s := newTestSyncer(channels, players, adventures)
	s.Sync(ctx)

	// Player sheets all failed, the adventure board still went out.
	got, err := adventures.Get(ctx, adv.ID)
	require.NoError(t, err)
	assert.NotZero(t, got.BoardMessageID)

	p, err := players.Get(ctx, "123")
	require.NoError(t, err)
	assert.Zero(t, p.SheetMessageID)
}

package ui

import (
	"fmt"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// Channels is the notification surface the sync loop writes rendered
// messages to. Destinations are either a player's DM channel or an
// adventure's originating channel.
type Channels interface {
	// PlayerChannel resolves the DM channel for a user.
	PlayerChannel(userID snowflake.ID) (snowflake.ID, error)
	// Send posts a new message and returns its id.
	Send(channelID snowflake.ID, embed discord.Embed) (snowflake.ID, error)
	// Edit overwrites an existing message's content.
	Edit(channelID, messageID snowflake.ID, embed discord.Embed) error
	// Fetch verifies the message still exists.
	Fetch(channelID, messageID snowflake.ID) error
	// Delete removes a message.
	Delete(channelID, messageID snowflake.ID) error
}

type restChannels struct {
	client bot.Client
}

// NewChannels wraps the Discord REST client in the Channels contract.
func NewChannels(client bot.Client) Channels {
	return &restChannels{client: client}
}

func (c *restChannels) PlayerChannel(userID snowflake.ID) (snowflake.ID, error) {
	dm, err := c.client.Rest().CreateDMChannel(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to open DM channel for %s: %w", userID, err)
	}
	return dm.ID(), nil
}

func (c *restChannels) Send(channelID snowflake.ID, embed discord.Embed) (snowflake.ID, error) {
	msg, err := c.client.Rest().CreateMessage(channelID, discord.MessageCreate{
		Embeds: []discord.Embed{embed},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to send message to %s: %w", channelID, err)
	}
	return msg.ID, nil
}

func (c *restChannels) Edit(channelID, messageID snowflake.ID, embed discord.Embed) error {
	_, err := c.client.Rest().UpdateMessage(channelID, messageID, discord.MessageUpdate{
		Embeds: &[]discord.Embed{embed},
	})
	if err != nil {
		return fmt.Errorf("failed to edit message %s in %s: %w", messageID, channelID, err)
	}
	return nil
}

func (c *restChannels) Fetch(channelID, messageID snowflake.ID) error {
	if _, err := c.client.Rest().GetMessage(channelID, messageID); err != nil {
		return fmt.Errorf("failed to fetch message %s in %s: %w", messageID, channelID, err)
	}
	return nil
}

func (c *restChannels) Delete(channelID, messageID snowflake.ID) error {
	if err := c.client.Rest().DeleteMessage(channelID, messageID); err != nil {
		return fmt.Errorf("failed to delete message %s in %s: %w", messageID, channelID, err)
	}
	return nil
}

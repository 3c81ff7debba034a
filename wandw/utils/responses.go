package utils

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/wandwbot/wandw/wandw/config"
)

// ReplyError sends an ephemeral error embed. Validation failures and
// not-found conditions are always private to the invoking user.
func ReplyError(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Flags: discord.MessageFlagEphemeral,
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.ErrorColor,
		}},
	})
}

// ReplySuccess sends an ephemeral success embed.
func ReplySuccess(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Flags: discord.MessageFlagEphemeral,
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.SuccessColor,
		}},
	})
}

// Reply sends a public embed to the channel the command was used in.
func Reply(event *handler.CommandEvent, embed discord.Embed) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{embed},
	})
}

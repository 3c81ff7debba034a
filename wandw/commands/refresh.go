package commands

import (
	"context"
	"errors"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/wandwbot/wandw/wandw"
	"github.com/wandwbot/wandw/wandw/game"
	"github.com/wandwbot/wandw/wandw/utils"
)

var RefreshCommand = discord.SlashCommandCreate{
	Name:        "refresh",
	Description: "Repost this channel's adventure board",
}

func RefreshHandler(b *wandw.Bot) handler.CommandHandler {
	return func(event *handler.CommandEvent) error {
		if event.GuildID() == nil {
			return utils.ReplyError(event, "There are no adventure boards in DMs!")
		}

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		err := b.Adventures.Refresh(ctx, event.ChannelID())
		switch {
		case errors.Is(err, game.ErrNoAdventure):
			return utils.ReplyError(event, "Adventure does not exist!")
		case err != nil:
			return utils.ReplyError(event, "Could not refresh the board. Try again.")
		}

		return utils.ReplySuccess(event, "The adventure board will be reposted shortly.")
	}
}

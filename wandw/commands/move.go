package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/wandwbot/wandw/wandw"
	"github.com/wandwbot/wandw/wandw/database/models"
	"github.com/wandwbot/wandw/wandw/game"
	"github.com/wandwbot/wandw/wandw/utils"
)

var MoveCommand = discord.SlashCommandCreate{
	Name:        "move",
	Description: "Move to another rank within your adventure",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "rank",
			Description: "Where you fight: front, mid, or back",
			Required:    true,
			Choices:     rankChoices,
		},
	},
}

func MoveHandler(b *wandw.Bot) handler.CommandHandler {
	return func(event *handler.CommandEvent) error {
		rank, ok := models.ParseRank(event.SlashCommandInteractionData().String("rank"))
		if !ok {
			return utils.ReplyError(event, "Invalid input! You need to specify a rank! front, mid, or back!")
		}

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		applied, err := b.Adventures.Move(ctx, event.User().ID.String(), rank)
		switch {
		case errors.Is(err, game.ErrNotRegistered):
			return utils.ReplyError(event, "You have not registered!")
		case errors.Is(err, game.ErrNotOnAdventure):
			return utils.ReplyError(event, "You must be on an adventure!")
		case err != nil:
			return utils.ReplyError(event, "Something went wrong moving you. Try again.")
		case !applied:
			return utils.ReplyError(event, "Failed to move! Most likely, you've been removed from the adventure!")
		}

		return utils.ReplySuccess(event, fmt.Sprintf("You moved to the %s!", rank))
	}
}

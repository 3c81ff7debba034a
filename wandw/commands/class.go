package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/wandwbot/wandw/wandw"
	"github.com/wandwbot/wandw/wandw/game"
	"github.com/wandwbot/wandw/wandw/utils"
)

var ClassCommand = discord.SlashCommandCreate{
	Name:        "class",
	Description: "View or select your class",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "name",
			Description: "One of: " + strings.Join(game.Classes, ", "),
		},
	},
}

func ClassHandler(b *wandw.Bot) handler.CommandHandler {
	return func(event *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		userID := event.User().ID.String()
		name, provided := event.SlashCommandInteractionData().OptString("name")

		if !provided {
			class, err := b.Adventures.Class(ctx, userID)
			switch {
			case errors.Is(err, game.ErrNotRegistered):
				return utils.ReplyError(event, "You have not registered!")
			case err != nil:
				return utils.ReplyError(event, "Could not look up your class. Try again.")
			case class == "":
				return utils.ReplySuccess(event, "Your Class is Not Set!")
			}
			return utils.ReplySuccess(event, fmt.Sprintf("Your Class is %s", class))
		}

		class, err := b.Adventures.SetClass(ctx, userID, name)
		switch {
		case errors.Is(err, game.ErrUnknownClass):
			msg := "Invalid Class Selection!"
			if suggestion := game.SuggestClass(name); suggestion != "" {
				msg = fmt.Sprintf("Invalid Class Selection! Did you mean %s?", suggestion)
			}
			return utils.ReplyError(event, msg)
		case errors.Is(err, game.ErrNotRegistered):
			return utils.ReplyError(event, "You have not registered!")
		case err != nil:
			return utils.ReplyError(event, "Could not set your class. Try again.")
		}

		return utils.ReplySuccess(event, fmt.Sprintf("Class set to %s!", class))
	}
}

package commands

import (
	"context"
	"errors"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/wandwbot/wandw/wandw"
	"github.com/wandwbot/wandw/wandw/game"
	"github.com/wandwbot/wandw/wandw/utils"
)

const commandTimeout = 5 * time.Second

var RegisterCommand = discord.SlashCommandCreate{
	Name:        "register",
	Description: "Register an account",
}

func RegisterHandler(b *wandw.Bot) handler.CommandHandler {
	return func(event *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		err := b.Adventures.Register(ctx, event.User().ID.String())
		switch {
		case errors.Is(err, game.ErrAlreadyRegistered):
			return utils.ReplyError(event, "You are already registered!")
		case err != nil:
			return utils.ReplyError(event, "Registration failed. Try again.")
		}

		return utils.ReplySuccess(event, "You have successfully registered! Make sure to pick a Class!")
	}
}

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

var AdventureCommand = discord.SlashCommandCreate{
	Name:        "adventure",
	Description: "Start or stop an adventure in this channel",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "start",
			Description: "Join this channel's adventure at a rank",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "rank",
					Description: "Where you fight: front, mid, or back",
					Required:    true,
					Choices:     rankChoices,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "stop",
			Description: "End this channel's adventure for everyone",
		},
	},
}

type AdventureHandler struct {
	bot *wandw.Bot
}

func NewAdventureHandler(b *wandw.Bot) *AdventureHandler {
	return &AdventureHandler{bot: b}
}

func (h *AdventureHandler) Register(r handler.Router, wrap func(string, handler.CommandHandler) handler.CommandHandler) {
	r.Route("/adventure", func(r handler.Router) {
		r.Command("/start", wrap("adventure-start", h.HandleStart))
		r.Command("/stop", wrap("adventure-stop", h.HandleStop))
	})
}

func (h *AdventureHandler) HandleStart(event *handler.CommandEvent) error {
	guildID := event.GuildID()
	if guildID == nil {
		return utils.ReplyError(event, "Adventures can only be started in a server channel!")
	}

	rank, ok := models.ParseRank(event.SlashCommandInteractionData().String("rank"))
	if !ok {
		return utils.ReplyError(event, "Invalid input! You need to specify a rank! front, mid, or back!")
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	err := h.bot.Adventures.Start(ctx, event.ChannelID(), *guildID, event.User().ID.String(), rank)
	switch {
	case errors.Is(err, game.ErrNotRegistered):
		return utils.ReplyError(event, "You have not registered!")
	case errors.Is(err, game.ErrNoClass):
		return utils.ReplyError(event, "You must have a Class selected!")
	case errors.Is(err, game.ErrAlreadyOnAdventure):
		return utils.ReplyError(event, "You are already on an adventure!")
	case err != nil:
		return utils.ReplyError(event, "Something went wrong starting the adventure. Try again.")
	}

	return utils.ReplySuccess(event, fmt.Sprintf("You joined the Adventure at the %s!", rank))
}

func (h *AdventureHandler) HandleStop(event *handler.CommandEvent) error {
	if event.GuildID() == nil {
		return utils.ReplyError(event, "Adventures can only be stopped in a server channel!")
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	err := h.bot.Adventures.Stop(ctx, event.ChannelID())
	switch {
	case errors.Is(err, game.ErrNoAdventure):
		return utils.ReplyError(event, "No adventure to stop!")
	case err != nil:
		return utils.ReplyError(event, "Something went wrong stopping the adventure. Try again.")
	}

	return utils.Reply(event, discord.Embed{
		Description: "Ending adventure!",
	})
}

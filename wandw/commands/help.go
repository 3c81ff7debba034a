package commands

import (
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/wandwbot/wandw/wandw/config"
	"github.com/wandwbot/wandw/wandw/game"
)

var HelpCommand = discord.SlashCommandCreate{
	Name:        "help",
	Description: "How to play",
}

func HelpHandler() handler.CommandHandler {
	return func(event *handler.CommandEvent) error {
		return event.CreateMessage(discord.MessageCreate{
			Flags: discord.MessageFlagEphemeral,
			Embeds: []discord.Embed{{
				Title: "Weapons & Wizardry",
				Color: config.InfoColor,
				Fields: []discord.EmbedField{
					{Name: "/register", Value: "Register an account."},
					{Name: "/class", Value: "Select a class. There are 7: " + strings.Join(game.Classes, ", ") + "."},
					{Name: "/adventure start", Value: "Start an adventure in this channel at front, mid, or back."},
					{Name: "/adventure stop", Value: "End this channel's adventure."},
					{Name: "/move", Value: "Change your rank mid-adventure."},
					{Name: "/refresh", Value: "Repost the adventure board."},
				},
			}},
		})
	}
}

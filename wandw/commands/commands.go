package commands

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	AdventureCommand,
	RegisterCommand,
	ClassCommand,
	MoveCommand,
	RefreshCommand,
	HelpCommand,
}

var rankChoices = []discord.ApplicationCommandOptionChoiceString{
	{Name: "Frontline", Value: "front"},
	{Name: "Midline", Value: "mid"},
	{Name: "Backline", Value: "back"},
}

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"

	"github.com/wandwbot/wandw/wandw/config"
	"github.com/wandwbot/wandw/wandw/database/models"
)

// RenderBar draws a ten-tick bar graph like "[+++-------]". A tick fills
// only once the value fully covers its share of the range.
func RenderBar(current, max int) string {
	ticks := 0
	if max > 0 {
		raw := float64(current) / float64(max)
		for i := 1; i <= config.BarWidth; i++ {
			if raw < float64(i)/float64(config.BarWidth) {
				break
			}
			ticks++
		}
	}
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(strings.Repeat("+", ticks))
	b.WriteString(strings.Repeat("-", config.BarWidth-ticks))
	b.WriteString("]")
	return b.String()
}

// formatElapsed renders the mm:ss components of the elapsed time; the
// minutes wrap at the hour.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%02d:%02d", int(d.Minutes())%60, int(d.Seconds())%60)
}

func classOrUnset(class string) string {
	if class == "" {
		return "NOT SET!"
	}
	return class
}

// RenderPlayerSheet builds the player-sheet embed shown in the player's DMs.
func RenderPlayerSheet(player *models.Player, now time.Time) discord.Embed {
	fields := []discord.EmbedField{
		{Name: "Class", Value: classOrUnset(player.Class)},
	}

	if player.OnAdventure() {
		fields = append(fields,
			discord.EmbedField{
				Name:  "Health Points",
				Value: fmt.Sprintf("%d/%d %s", player.Health, player.MaxHealth, RenderBar(player.Health, player.MaxHealth)),
			},
			discord.EmbedField{
				Name:  "Mana Points",
				Value: fmt.Sprintf("%d/%d %s", player.Mana, models.MaxMana, RenderBar(player.Mana, models.MaxMana)),
			},
		)
		elapsed := ""
		if player.JoinedAt != nil {
			elapsed = formatElapsed(now.Sub(*player.JoinedAt))
		}
		fields = append(fields, discord.EmbedField{
			Name:  "Status",
			Value: fmt.Sprintf("On Adventure (%s)", elapsed),
		})
	} else {
		fields = append(fields,
			discord.EmbedField{
				Name:  "Health Points",
				Value: fmt.Sprintf("%d/%d", player.MaxHealth, player.MaxHealth),
			},
			discord.EmbedField{
				Name:  "Mana Points",
				Value: fmt.Sprintf("%d/%d", models.MaxMana, models.MaxMana),
			},
			discord.EmbedField{Name: "Status", Value: "Idle"},
		)
	}

	return discord.Embed{
		Title:  "PLAYER SHEET",
		Color:  config.InfoColor,
		Fields: fields,
	}
}

// RenderAdventureBoard builds the adventure-board embed for a channel:
// elapsed time, per-rank rosters with each member's bars, and the bounded
// log. Members must come pre-sorted by join time.
func RenderAdventureBoard(adventure *models.Adventure, members []*models.Player, now time.Time) discord.Embed {
	rosters := map[models.Rank][]string{}
	for _, p := range members {
		display := fmt.Sprintf("<@%s> (%s)\nHP %d/%d %s\nMP %d/%d %s",
			p.ID, classOrUnset(p.Class),
			p.Health, p.MaxHealth, RenderBar(p.Health, p.MaxHealth),
			p.Mana, models.MaxMana, RenderBar(p.Mana, models.MaxMana))
		rosters[p.Rank] = append(rosters[p.Rank], display)
	}

	roster := func(rank models.Rank) string {
		if len(rosters[rank]) == 0 {
			return "<No Players>"
		}
		return strings.Join(rosters[rank], "\n\n")
	}

	log := "<No Logs>"
	if len(adventure.Log) > 0 {
		log = strings.Join(adventure.Log, "\n")
	}

	return discord.Embed{
		Title: fmt.Sprintf("ADVENTURE - %s", formatElapsed(now.Sub(adventure.StartedAt))),
		Color: config.InfoColor,
		Fields: []discord.EmbedField{
			{Name: "Player Frontline", Value: roster(models.RankFrontline)},
			{Name: "Player Midline", Value: roster(models.RankMidline)},
			{Name: "Player Backline", Value: roster(models.RankBackline)},
			{Name: "​", Value: "​"},
			{Name: "Adventure Log", Value: log},
		},
	}
}

package wandw

import (
	"fmt"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/wandwbot/wandw/wandw/database"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Bot  BotConfig         `toml:"bot"`
	DB   database.DBConfig `toml:"db"`
	Game GameConfig        `toml:"game"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
}

// GameConfig tunes the periodic loops; zero values fall back to the
// defaults in the config package.
type GameConfig struct {
	TickSeconds int `toml:"tick_seconds"`
	SyncSeconds int `toml:"sync_seconds"`
	ManaPerTick int `toml:"mana_per_tick"`
}

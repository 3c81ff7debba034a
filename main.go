package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"

	"github.com/wandwbot/wandw/wandw"
	"github.com/wandwbot/wandw/wandw/commands"
	"github.com/wandwbot/wandw/wandw/config"
	"github.com/wandwbot/wandw/wandw/database"
	"github.com/wandwbot/wandw/wandw/database/repositories"
	"github.com/wandwbot/wandw/wandw/game"
	"github.com/wandwbot/wandw/wandw/handlers"
	"github.com/wandwbot/wandw/wandw/logger"
	"github.com/wandwbot/wandw/wandw/ui"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler()))

	slog.Info("Starting Weapons & Wizardry",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := wandw.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		cancel()
		slog.Error("Document store connection failed", slog.Any("error", err))
		os.Exit(-1)
	}
	if err := repositories.EnsurePlayerIndexes(ctx, db); err != nil {
		cancel()
		slog.Error("Failed to ensure indexes", slog.Any("error", err))
		os.Exit(-1)
	}
	cancel()

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Close(ctx)
	}()

	b := wandw.New(*cfg, version, commit)
	b.DB = db
	b.PlayerRepository = repositories.NewPlayerRepository(db)
	b.AdventureRepository = repositories.NewAdventureRepository(db)
	b.Adventures = game.NewManager(b.PlayerRepository, b.AdventureRepository)
	b.Clock = game.NewClock(b.PlayerRepository, tickPeriod(cfg.Game), cfg.Game.ManaPerTick)

	h := handler.New()
	h.Command("/register", handlers.WrapWithLogging("register", commands.RegisterHandler(b)))
	h.Command("/class", handlers.WrapWithLogging("class", commands.ClassHandler(b)))
	h.Command("/move", handlers.WrapWithLogging("move", commands.MoveHandler(b)))
	h.Command("/refresh", handlers.WrapWithLogging("refresh", commands.RefreshHandler(b)))
	h.Command("/help", handlers.WrapWithLogging("help", commands.HelpHandler()))
	commands.NewAdventureHandler(b).Register(h, handlers.WrapWithLogging)

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err))
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err))
		}
	}

	gatewayCtx, gatewayCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer gatewayCancel()
	if err = b.Client.OpenGateway(gatewayCtx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err))
		os.Exit(-1)
	}

	loopCtx, loopCancel := context.WithCancel(context.Background())
	defer loopCancel()

	go b.Clock.Run(loopCtx)

	b.Syncer = ui.NewSyncer(ui.NewChannels(b.Client), b.PlayerRepository, b.AdventureRepository, syncPeriod(cfg.Game))
	go b.Syncer.Run(loopCtx)

	slog.Info("Bot is running. Press CTRL-C to exit.", slog.String("type", "sys"))
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...", slog.String("type", "sys"))
}

func tickPeriod(cfg wandw.GameConfig) time.Duration {
	if cfg.TickSeconds > 0 {
		return time.Duration(cfg.TickSeconds) * time.Second
	}
	return config.TickPeriod
}

func syncPeriod(cfg wandw.GameConfig) time.Duration {
	if cfg.SyncSeconds > 0 {
		return time.Duration(cfg.SyncSeconds) * time.Second
	}
	return config.SyncPeriod
}

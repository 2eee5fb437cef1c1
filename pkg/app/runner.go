package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/small-frappuccino/modsheet/pkg/config"
	"github.com/small-frappuccino/modsheet/pkg/discord/commands"
	"github.com/small-frappuccino/modsheet/pkg/discord/session"
	"github.com/small-frappuccino/modsheet/pkg/log"
	"github.com/small-frappuccino/modsheet/pkg/modsheet"
	"github.com/small-frappuccino/modsheet/pkg/nexus"
	"github.com/small-frappuccino/modsheet/pkg/sheets"
	"github.com/small-frappuccino/modsheet/pkg/sheets/google"
	"github.com/small-frappuccino/modsheet/pkg/storage"
	"github.com/small-frappuccino/modsheet/pkg/util"
)

// SetupLogging installs the global logger from cfg. A nil console keeps the
// default stdout/stderr split.
func SetupLogging(cfg config.Config, console io.Writer) error {
	if err := log.SetupLogger(log.Options{
		Dir:     cfg.LogDir,
		Level:   log.ParseLevel(cfg.LogLevel),
		Console: console,
	}); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	return nil
}

// Components are the parts of the bot that do not depend on Discord.
type Components struct {
	Store   sheets.RowStore
	Catalog *nexus.Client
	Service *modsheet.Service

	closeStore func() error
}

// Close releases the row store.
func (c *Components) Close() error {
	if c == nil || c.closeStore == nil {
		return nil
	}
	return c.closeStore()
}

// Build wires the row store, the catalog client and the service from cfg.
// A row store that cannot be opened is replaced by sheets.Unavailable so the
// bot still starts and reports the problem on each command.
func Build(ctx context.Context, cfg config.Config) *Components {
	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		log.ErrorLogger().WithField("backend", cfg.Backend).ErrorWithErr("Row store unavailable; running in degraded mode", err)
		store = sheets.Unavailable(err)
		closeStore = nil
	}

	catalog := nexus.NewClient(nexus.Options{
		APIKey:  cfg.NexusAPIKey,
		BaseURL: cfg.NexusAPIURL,
		SiteURL: cfg.NexusSiteURL,
		Game:    cfg.NexusGame,
		Timeout: cfg.NexusTimeout,
	})

	return &Components{
		Store:      store,
		Catalog:    catalog,
		Service:    modsheet.NewService(store, catalog),
		closeStore: closeStore,
	}
}

// OpenStore opens the backend selected by cfg.Backend. The returned close
// function may be nil.
func OpenStore(ctx context.Context, cfg config.Config) (sheets.RowStore, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		store := storage.NewStore(cfg.SQLitePath)
		if err := store.Init(); err != nil {
			return nil, nil, fmt.Errorf("initialize SQLite store: %w", err)
		}
		log.SheetsLogger().WithField("path", cfg.SQLitePath).Info("SQLite row store ready")
		return store, store.Close, nil
	case config.BackendSheets, "":
		if cfg.GoogleCreds == "" {
			return nil, nil, fmt.Errorf("%w: GOOGLE_CREDENTIALS not set", sheets.ErrNotConfigured)
		}
		store, err := google.New(ctx, google.Options{
			CredentialsJSON: []byte(cfg.GoogleCreds),
			SpreadsheetID:   cfg.SpreadsheetID,
			SpreadsheetName: cfg.SpreadsheetName,
			Worksheet:       cfg.Worksheet,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open Google Sheets store: %w", err)
		}
		return store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// ErrNoToken is logged by Serve when DISCORD_TOKEN is missing.
var ErrNoToken = errors.New("DISCORD_TOKEN not set in environment or .env file")

// Serve runs the bot until ctx is cancelled or an interrupt arrives. Without a
// token it logs ErrNoToken and returns nil.
func Serve(ctx context.Context, cfg config.Config) error {
	started := time.Now()
	log.ApplicationLogger().Infof("🚀 Starting modsheet %s...", Version)

	for _, w := range cfg.Validate() {
		log.ApplicationLogger().Warn(w)
	}
	if cfg.DiscordToken == "" {
		log.ErrorLogger().ErrorWithErr("Discord connection skipped", ErrNoToken)
		return nil
	}

	components := Build(ctx, cfg)
	defer func() {
		if err := components.Close(); err != nil {
			log.ErrorLogger().ErrorWithErr("Failed to close row store", err)
		}
	}()

	// Discord session
	discordSession, err := session.NewDiscordSession(cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	defer func() { _ = session.Close(discordSession) }()

	if discordSession.State == nil || discordSession.State.User == nil {
		return fmt.Errorf("discord session state not properly initialized")
	}
	log.DiscordLogger().Infof("✅ Authenticated as %s", discordSession.State.User.Username)

	ctx, stop := util.InterruptContext(ctx)
	defer stop()

	handler := commands.NewCommandHandler(discordSession, components.Service, cfg.GuildID)
	if err := handler.SetupCommands(ctx); err != nil {
		return fmt.Errorf("configure slash commands: %w", err)
	}

	log.ApplicationLogger().Infof("🎯 modsheet initialized successfully in %s", time.Since(started).Round(time.Millisecond))
	log.ApplicationLogger().Info("🤖 modsheet running. Press Ctrl+C to stop...")

	util.WaitForInterrupt(ctx, func() {
		log.ApplicationLogger().Info("🛑 Stopping modsheet...")
	})
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/rajlakheradev-creator/habitctl/internal/cli"
	"github.com/rajlakheradev-creator/habitctl/internal/constants"
	"github.com/rajlakheradev-creator/habitctl/internal/engine"
	"github.com/rajlakheradev-creator/habitctl/internal/keyring"
	"github.com/rajlakheradev-creator/habitctl/internal/logger"
	"github.com/rajlakheradev-creator/habitctl/internal/shopgen"
	"github.com/rajlakheradev-creator/habitctl/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string." type:"string" default:"~/.config/habitctl/habitctl.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init         cli.InitCmd         `cmd:"" help:"Initialize habitctl storage."`
	Tui          cli.TuiCmd          `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Directive    cli.DirectiveCmd    `cmd:"" help:"Manage directives (daily habits)."`
	Market       cli.MarketCmd       `cmd:"" help:"Browse and buy from the Black Market."`
	Inventory    cli.InventoryCmd    `cmd:"" help:"Manage owned items."`
	Achievements cli.AchievementsCmd `cmd:"" help:"List and claim achievements."`
	Stats        cli.StatsCmd        `cmd:"" help:"Show operator statistics."`
	Key          cli.KeyCmd          `cmd:"" help:"Manage the shop generator API key."`
}

func main() {
	// A .env next to the binary or in the working directory can carry the
	// generator API key.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Gamified directive tracker with a Black Market economy"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	var store storage.Provider
	if strings.HasPrefix(CLI.Config, "postgres://") || strings.HasPrefix(CLI.Config, "postgresql://") {
		if storage.HasEmbeddedCredentials(CLI.Config) {
			fmt.Fprintf(os.Stderr, "❌ Error: PostgreSQL connection strings with embedded credentials are NOT allowed.\n")
			fmt.Fprintf(os.Stderr, "       Use environment variables or a .pgpass file instead.\n")
			os.Exit(1)
		}
		store = storage.NewPostgresStore(CLI.Config)
		initLogger(defaultConfigDir())
	} else {
		path := expandHome(CLI.Config)
		store = storage.NewSQLiteStore(path)
		initLogger(filepath.Dir(path))
	}

	eng := engine.New(store, buildGenerator())
	appCtx := &cli.Context{
		Store:  store,
		Engine: eng,
	}

	// The init command handles its own storage lifecycle.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		report, err := eng.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(report.Degraded) > 0 {
			logger.Warn("Some documents were reset to defaults", "documents", report.Degraded)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// expandHome resolves a leading "~/" against the user's home directory.
// Connection strings never start with it, so plain paths are the only input.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func defaultConfigDir() string {
	return filepath.Dir(expandHome(constants.DefaultConfigPath))
}

func initLogger(configDir string) {
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		// Logging is best-effort; the app still works without a log file.
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
}

// buildGenerator wires the model-backed generator when an API key is
// configured, from the environment first and the OS keyring second. Without a
// key the engine uses its local fallback.
func buildGenerator() shopgen.Generator {
	if key := os.Getenv(constants.GeneratorEnvKey); key != "" {
		return shopgen.NewGeminiClient(key)
	}

	key, err := keyring.GetAPIKey()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup failed", "error", err)
		}
		return nil
	}
	return shopgen.NewGeminiClient(key)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rajlakheradev-creator/habitctl/internal/keyring"
	"github.com/rajlakheradev-creator/habitctl/internal/migration"
	"github.com/rajlakheradev-creator/habitctl/internal/tui"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing storage before initialization."`
	Source string `help:"Import state from a web app JSON export."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			fmt.Printf("Deleted existing storage at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}

	fmt.Printf("Initialized habitctl storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Importing data from: %s\n", c.Source)
		report, err := migration.ImportFile(ctx.Store, c.Source)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Printf("Imported %d directives, %d owned items, %d shop listings, %d CR.\n",
			report.Habits, report.InventoryItems, report.ShopItems, report.Points)
		return nil
	}

	fmt.Println("You start with 200 CR. Add a directive with 'habitctl directive add <name>'.")
	return nil
}

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	ctx.Activate(context.Background())

	p := tea.NewProgram(tui.NewModel(ctx.Engine), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}

type KeyCmd struct {
	Set    KeySetCmd    `cmd:"" help:"Store the generator API key in the OS keyring."`
	Delete KeyDeleteCmd `cmd:"" help:"Remove the generator API key from the OS keyring."`
	Status KeyStatusCmd `cmd:"" help:"Check keyring availability and key presence."`
}

// KeySetCmd stores the Generative Language API key in the OS keyring.
type KeySetCmd struct {
	APIKey string `arg:"" help:"API key for the shop generator."`
}

func (cmd *KeySetCmd) Run(ctx *Context) error {
	if cmd.APIKey == "" {
		return errors.New("api key cannot be empty")
	}

	if err := keyring.SetAPIKey(cmd.APIKey); err != nil {
		return fmt.Errorf("failed to store api key in keyring: %w", err)
	}

	fmt.Println("✓ API key stored in OS keyring")
	fmt.Println("  The Black Market will now use the hosted generator.")
	return nil
}

type KeyDeleteCmd struct{}

func (cmd *KeyDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no api key found in keyring")
		}
		return fmt.Errorf("failed to delete api key from keyring: %w", err)
	}

	fmt.Println("✓ API key deleted from OS keyring")
	fmt.Println("  The Black Market falls back to local stock.")
	return nil
}

type KeyStatusCmd struct{}

func (cmd *KeyStatusCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("✗ OS keyring is not available on this system")
		fmt.Println("  Set the key via the environment instead.")
		return nil
	}
	fmt.Println("✓ OS keyring is available")

	if _, err := keyring.GetAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("  No generator api key stored.")
			return nil
		}
		return err
	}
	fmt.Println("  Generator api key is stored.")
	return nil
}

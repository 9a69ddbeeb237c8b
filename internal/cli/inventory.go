package cli

import (
	"context"
	"fmt"
)

type InventoryCmd struct {
	List   InventoryListCmd   `cmd:"" help:"List owned items." default:"1"`
	Viewed InventoryViewedCmd `cmd:"" help:"Mark every owned item as seen."`
}

type InventoryListCmd struct{}

func (c *InventoryListCmd) Run(ctx *Context) error {
	ctx.Activate(context.Background())

	inventory := ctx.Engine.User().Inventory
	if len(inventory) == 0 {
		fmt.Println("Inventory is empty. Buy something on the Black Market.")
		return nil
	}

	newCount := 0
	for _, item := range inventory {
		badge := "   "
		if !item.Viewed {
			badge = "NEW"
			newCount++
		}
		fmt.Printf("%s %s %-28s %8s  bought %s\n",
			badge, item.Icon, item.Name, FormatCR(item.Price), FormatAge(item.PurchasedAt))
	}

	fmt.Printf("\n%d items", len(inventory))
	if newCount > 0 {
		fmt.Printf(" (%d new)", newCount)
	}
	fmt.Println()
	return nil
}

type InventoryViewedCmd struct{}

func (c *InventoryViewedCmd) Run(ctx *Context) error {
	ctx.Activate(context.Background())
	ctx.Engine.MarkInventoryViewed()
	fmt.Println("Inventory marked as seen.")
	return nil
}

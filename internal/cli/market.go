package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rajlakheradev-creator/habitctl/internal/constants"
	"github.com/rajlakheradev-creator/habitctl/internal/models"
)

type MarketCmd struct {
	Show    MarketShowCmd    `cmd:"" help:"Show the current Black Market listing." default:"1"`
	Refresh MarketRefreshCmd `cmd:"" help:"Force a restock of the Black Market."`
	Buy     MarketBuyCmd     `cmd:"" help:"Buy an item from the current listing."`
}

type MarketShowCmd struct{}

func (c *MarketShowCmd) Run(ctx *Context) error {
	ctx.Activate(context.Background())
	return printShop(ctx)
}

type MarketRefreshCmd struct{}

func (c *MarketRefreshCmd) Run(ctx *Context) error {
	ctx.Engine.DailyReset()

	fmt.Println("Restocking the Black Market...")
	if _, err := ctx.Engine.RefreshShop(context.Background(), true); err != nil {
		return err
	}
	return printShop(ctx)
}

type MarketBuyCmd struct {
	Ref string `arg:"" help:"Item id, id prefix, or name from the current listing."`
}

func (c *MarketBuyCmd) Run(ctx *Context) error {
	ctx.Activate(context.Background())

	item, err := matchItem(ctx.Engine.Shop().Items, c.Ref)
	if err != nil {
		return err
	}

	if err := ctx.Engine.BuyItem(item); err != nil {
		return err
	}

	fmt.Printf("Purchased %s %s for %s. Balance: %s\n",
		item.Icon, item.Name, FormatCR(item.Price), FormatCR(ctx.Engine.User().Points))
	return nil
}

func printShop(ctx *Context) error {
	shop := ctx.Engine.Shop()
	if len(shop.Items) == 0 {
		fmt.Println("The Black Market is empty. Run 'habitctl market refresh'.")
		return nil
	}

	source := "local stock"
	if shop.Source == constants.ShopSourceModel {
		source = "ai curated"
	}
	fmt.Printf("Black Market — restocked %s (%s)\n\n", FormatAge(shop.LastRefresh), source)

	for _, item := range shop.Items {
		fmt.Printf("%s %-28s %8s  %s\n", item.Icon, item.Name, FormatCR(item.Price), item.ID[:8])
		fmt.Printf("   %s\n", item.Description)
	}

	fmt.Printf("\nBalance: %s\n", FormatCR(ctx.Engine.User().Points))
	return nil
}

// matchItem resolves a listing entry by id, id prefix, or case-insensitive
// name.
func matchItem(items []models.Item, ref string) (models.Item, error) {
	ref = strings.TrimSpace(ref)

	for _, item := range items {
		if item.ID == ref || strings.EqualFold(item.Name, ref) {
			return item, nil
		}
	}

	var prefixed []models.Item
	for _, item := range items {
		if strings.HasPrefix(item.ID, ref) {
			prefixed = append(prefixed, item)
		}
	}
	switch len(prefixed) {
	case 1:
		return prefixed[0], nil
	case 0:
		return models.Item{}, fmt.Errorf("no listing matches %q", ref)
	default:
		return models.Item{}, fmt.Errorf("%q is ambiguous, matches %d listings", ref, len(prefixed))
	}
}

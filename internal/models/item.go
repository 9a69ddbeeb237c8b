package models

import (
	"time"

	"github.com/rajlakheradev-creator/habitctl/internal/constants"
)

// Item is a shop listing.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Icon        string `json:"icon"`
}

// InventoryItem is a purchased Item. Viewed stays false until the inventory
// screen has been opened after the purchase.
type InventoryItem struct {
	Item
	PurchasedAt time.Time `json:"purchased_at"`
	Viewed      bool      `json:"viewed"`
}

// ShopState is the current rotating shop listing. Source records whether the
// items came from the model-backed generator or the local fallback.
type ShopState struct {
	Items       []Item               `json:"items"`
	LastRefresh time.Time            `json:"last_refresh"`
	Source      constants.ShopSource `json:"source,omitempty"`
}

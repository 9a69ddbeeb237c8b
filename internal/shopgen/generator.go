package shopgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rajlakheradev-creator/habitctl/internal/constants"
	"github.com/rajlakheradev-creator/habitctl/internal/models"
)

// ErrBadListing is returned when a generator produced a response that does
// not satisfy the listing contract. The caller never receives a partial list.
var ErrBadListing = errors.New("generated listing violates contract")

// Generator produces shop listings. Implementations must return exactly
// count items satisfying ValidateListing, or an error and no items.
type Generator interface {
	Generate(ctx context.Context, count int, habitNames []string) ([]models.Item, error)
}

// ValidateListing checks a generated listing against the contract: exactly
// count items, positive prices within the documented range, and non-empty
// display fields.
func ValidateListing(items []models.Item, count int) error {
	if len(items) != count {
		return fmt.Errorf("%w: got %d items, want %d", ErrBadListing, len(items), count)
	}
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: item %d has empty name", ErrBadListing, i)
		}
		if strings.TrimSpace(item.Description) == "" {
			return fmt.Errorf("%w: item %d (%s) has empty description", ErrBadListing, i, item.Name)
		}
		if item.Icon == "" {
			return fmt.Errorf("%w: item %d (%s) has no icon", ErrBadListing, i, item.Name)
		}
		if item.Price < constants.MinItemPrice || item.Price > constants.MaxItemPrice {
			return fmt.Errorf("%w: item %d (%s) price %d outside [%d,%d]",
				ErrBadListing, i, item.Name, item.Price, constants.MinItemPrice, constants.MaxItemPrice)
		}
	}
	return nil
}

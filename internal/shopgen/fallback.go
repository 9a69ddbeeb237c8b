package shopgen

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rajlakheradev-creator/habitctl/internal/constants"
	"github.com/rajlakheradev-creator/habitctl/internal/models"
)

var (
	prefixes = []string{"Quantum", "Neon", "Glitch", "Plasma", "Cyber", "Void", "Neural", "Holo", "Radioactive", "Cursed"}
	kinds    = []string{"Chip", "Katana", "Battery", "Visor", "Data-Drive", "Serum", "Key", "Drone", "Relic", "Skull"}
	buffs    = []string{"+10 Focus", "Time Warp", "Double XP", "Firewall", "Night Vision", "Luck Boost"}

	kindIcons = map[string]string{
		"Chip":       "💾",
		"Katana":     "🗡️",
		"Battery":    "🔋",
		"Visor":      "🥽",
		"Data-Drive": "📼",
		"Serum":      "🧪",
		"Key":        "🔑",
		"Drone":      "🛸",
		"Relic":      "🧿",
		"Skull":      "💀",
	}
)

// Fallback generates listings locally by stitching fixed name fragments
// together. It never fails, so the shop stays usable through any outage of
// the hosted generator.
type Fallback struct {
	rng *rand.Rand
}

// NewFallback returns a fallback generator seeded from the current time.
func NewFallback() *Fallback {
	return NewFallbackWithSeed(time.Now().UnixNano())
}

// NewFallbackWithSeed returns a fallback generator with a fixed seed. The
// same seed always produces the same listing sequence.
func NewFallbackWithSeed(seed int64) *Fallback {
	return &Fallback{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Generate satisfies the Generator contract. The habit names are accepted
// for interface parity but do not influence local generation.
func (f *Fallback) Generate(_ context.Context, count int, _ []string) ([]models.Item, error) {
	now := time.Now().UnixMilli()
	items := make([]models.Item, 0, count)

	for i := 0; i < count; i++ {
		prefix := prefixes[f.rng.Intn(len(prefixes))]
		kind := kinds[f.rng.Intn(len(kinds))]
		buff := buffs[f.rng.Intn(len(buffs))]
		price := constants.MinItemPrice + f.rng.Intn(constants.MaxItemPrice-constants.MinItemPrice+1)

		items = append(items, models.Item{
			ID:          fmt.Sprintf("item-%d-%d", now, i),
			Name:        fmt.Sprintf("%s %s", prefix, kind),
			Description: fmt.Sprintf("Grants %s", buff),
			Price:       price,
			Icon:        iconForKind(kind),
		})
	}

	return items, nil
}

func iconForKind(kind string) string {
	if icon, ok := kindIcons[kind]; ok {
		return icon
	}
	return "📦"
}

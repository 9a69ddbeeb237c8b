package migration

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rajlakheradev-creator/habitctl/internal/models"
	"github.com/rajlakheradev-creator/habitctl/internal/storage"
)

// The browser app keeps its state in localStorage under "habits", "user",
// and "shop", with numeric ids and millisecond epochs. An export is one JSON
// object holding those three values; each is optional.
type webExport struct {
	Habits []webHabit `json:"habits"`
	User   *webUser   `json:"user"`
	Shop   *webShop   `json:"shop"`
}

type webHabit struct {
	ID            json.Number `json:"id"`
	Name          string      `json:"name"`
	Completed     bool        `json:"completed"`
	Streak        int         `json:"streak"`
	LastCompleted *int64      `json:"lastCompleted"`
}

type webUser struct {
	Points               int        `json:"points"`
	Inventory            []webOwned `json:"inventory"`
	UnlockedAchievements []string   `json:"unlockedAchievements"`
	TotalPointsEarned    int        `json:"totalPointsEarned"`
	TotalCompleted       int        `json:"totalCompleted"`
}

type webItem struct {
	ID          json.Number `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       int         `json:"price"`
	Icon        string      `json:"icon"`
}

type webOwned struct {
	webItem
	PurchasedAt int64 `json:"purchasedAt"`
}

type webShop struct {
	Items       []webItem `json:"items"`
	LastRefresh int64     `json:"lastRefresh"`
}

// Report summarizes what an import wrote.
type Report struct {
	Habits         int
	InventoryItems int
	ShopItems      int
	Points         int
}

// ImportFile reads a browser export and writes the converted documents into
// the store. Existing documents for the imported sections are overwritten.
func ImportFile(store storage.Provider, path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read export file: %w", err)
	}
	return Import(store, data)
}

// Import converts an export payload and writes it into the store.
func Import(store storage.Provider, data []byte) (Report, error) {
	var export webExport
	if err := json.Unmarshal(data, &export); err != nil {
		return Report{}, fmt.Errorf("export is not valid JSON: %w", err)
	}
	if export.Habits == nil && export.User == nil && export.Shop == nil {
		return Report{}, fmt.Errorf("export contains no habits, user, or shop data")
	}

	var report Report

	if export.Habits != nil {
		habits := make([]models.Habit, 0, len(export.Habits))
		for i, wh := range export.Habits {
			if wh.Name == "" {
				return Report{}, fmt.Errorf("habit %d has no name", i)
			}
			habits = append(habits, models.Habit{
				ID:            webID(wh.ID, i),
				Name:          wh.Name,
				Completed:     wh.Completed,
				Streak:        wh.Streak,
				LastCompleted: fromEpochPtr(wh.LastCompleted),
				CreatedAt:     createdFromID(wh.ID),
			})
		}
		if err := store.SaveHabits(habits); err != nil {
			return Report{}, fmt.Errorf("failed to write habits: %w", err)
		}
		report.Habits = len(habits)
	}

	if export.User != nil {
		user := models.UserProfile{
			Points:               export.User.Points,
			Inventory:            make([]models.InventoryItem, 0, len(export.User.Inventory)),
			UnlockedAchievements: export.User.UnlockedAchievements,
			TotalPointsEarned:    export.User.TotalPointsEarned,
			TotalCompleted:       export.User.TotalCompleted,
		}
		if user.UnlockedAchievements == nil {
			user.UnlockedAchievements = []string{}
		}
		for i, wo := range export.User.Inventory {
			user.Inventory = append(user.Inventory, models.InventoryItem{
				Item:        wo.webItem.toItem(i),
				PurchasedAt: fromEpoch(wo.PurchasedAt),
				// The web app had no unseen tracking on import paths;
				// imported items start seen.
				Viewed: true,
			})
		}
		// The web profile predates lifetime stats; seed them from what the
		// counters can prove.
		user.LifetimeStats = models.LifetimeStats{
			TotalHabitsCreated: report.Habits,
			TotalCompletions:   user.TotalCompleted,
			HighestStreak:      maxStreak(export.Habits),
		}
		if err := store.SaveUser(user); err != nil {
			return Report{}, fmt.Errorf("failed to write user profile: %w", err)
		}
		report.Points = user.Points
		report.InventoryItems = len(user.Inventory)
	}

	if export.Shop != nil {
		shop := models.ShopState{
			Items:       make([]models.Item, 0, len(export.Shop.Items)),
			LastRefresh: fromEpoch(export.Shop.LastRefresh),
		}
		for i, wi := range export.Shop.Items {
			shop.Items = append(shop.Items, wi.toItem(i))
		}
		if err := store.SaveShop(shop); err != nil {
			return Report{}, fmt.Errorf("failed to write shop: %w", err)
		}
		report.ShopItems = len(shop.Items)
	}

	return report, nil
}

func (w webItem) toItem(i int) models.Item {
	return models.Item{
		ID:          webID(w.ID, i),
		Name:        w.Name,
		Description: w.Description,
		Price:       w.Price,
		Icon:        w.Icon,
	}
}

// webID keeps the original id when present so re-imports stay stable.
func webID(id json.Number, i int) string {
	if s := id.String(); s != "" {
		return s
	}
	return strconv.Itoa(i)
}

// createdFromID recovers the creation time from the web app's Date.now() ids.
func createdFromID(id json.Number) time.Time {
	ms, err := id.Int64()
	if err != nil || ms <= 0 {
		return time.Time{}
	}
	return fromEpoch(ms)
}

func fromEpoch(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func fromEpochPtr(ms *int64) *time.Time {
	if ms == nil || *ms <= 0 {
		return nil
	}
	t := time.UnixMilli(*ms)
	return &t
}

func maxStreak(habits []webHabit) int {
	max := 0
	for _, h := range habits {
		if h.Streak > max {
			max = h.Streak
		}
	}
	return max
}

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rajlakheradev-creator/habitctl/internal/constants"
	"github.com/rajlakheradev-creator/habitctl/internal/models"
)

// providers covers both file-backed backends with the same scenarios.
func providers(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	return map[string]Provider{
		"json":   NewJSONStore(filepath.Join(dir, "habitctl.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "habitctl.db")),
	}
}

func TestInitAndLoad(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			if err := store.Load(); err != nil {
				t.Fatalf("Load() after Init() failed: %v", err)
			}
			defer store.Close()
		})
	}
}

func TestLoadWithoutInit(t *testing.T) {
	dir := t.TempDir()

	stores := map[string]Provider{
		"json":   NewJSONStore(filepath.Join(dir, "missing.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "missing.db")),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			if err := store.Load(); err == nil {
				t.Error("Load() on uninitialized storage should fail")
			}
		})
	}
}

func TestMissingDocumentsReturnNotFound(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			defer store.Close()

			if _, err := store.GetHabits(); !errors.Is(err, ErrNotFound) {
				t.Errorf("GetHabits() error = %v, want ErrNotFound", err)
			}
			if _, err := store.GetUser(); !errors.Is(err, ErrNotFound) {
				t.Errorf("GetUser() error = %v, want ErrNotFound", err)
			}
			if _, err := store.GetShop(); !errors.Is(err, ErrNotFound) {
				t.Errorf("GetShop() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	habits := []models.Habit{
		{ID: "h1", Name: "Meditate", Streak: 3, CreatedAt: now},
		{ID: "h2", Name: "Run", Completed: true, Streak: 1, LastCompleted: &now, CreatedAt: now},
	}
	user := models.UserProfile{
		Points:               175,
		TotalPointsEarned:    475,
		TotalCompleted:       9,
		UnlockedAchievements: []string{"first_habit"},
		LastResetDate:        "2025-06-01",
		Inventory: []models.InventoryItem{
			{
				Item:        models.Item{ID: "i1", Name: "Neon Visor", Description: "Grants Night Vision", Price: 120, Icon: "🥽"},
				PurchasedAt: now,
				Viewed:      true,
			},
		},
		LifetimeStats: models.LifetimeStats{TotalHabitsCreated: 4, TotalCompletions: 9, HighestStreak: 3},
	}
	shop := models.ShopState{
		Items: []models.Item{
			{ID: "s1", Name: "Quantum Chip", Description: "Grants +10 Focus", Price: 80, Icon: "💾"},
		},
		LastRefresh: now,
		Source:      constants.ShopSourceFallback,
	}

	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			defer store.Close()

			if err := store.SaveHabits(habits); err != nil {
				t.Fatalf("SaveHabits() failed: %v", err)
			}
			if err := store.SaveUser(user); err != nil {
				t.Fatalf("SaveUser() failed: %v", err)
			}
			if err := store.SaveShop(shop); err != nil {
				t.Fatalf("SaveShop() failed: %v", err)
			}

			gotHabits, err := store.GetHabits()
			if err != nil {
				t.Fatalf("GetHabits() failed: %v", err)
			}
			if len(gotHabits) != 2 {
				t.Fatalf("GetHabits() returned %d habits, want 2", len(gotHabits))
			}
			if gotHabits[0].Name != "Meditate" || gotHabits[1].Streak != 1 {
				t.Errorf("GetHabits() round trip mismatch: %+v", gotHabits)
			}
			if gotHabits[1].LastCompleted == nil || !gotHabits[1].LastCompleted.Equal(now) {
				t.Errorf("GetHabits() lost last_completed: %+v", gotHabits[1])
			}

			gotUser, err := store.GetUser()
			if err != nil {
				t.Fatalf("GetUser() failed: %v", err)
			}
			if gotUser.Points != 175 || gotUser.TotalPointsEarned != 475 {
				t.Errorf("GetUser() credits mismatch: %+v", gotUser)
			}
			if len(gotUser.Inventory) != 1 || !gotUser.Inventory[0].Viewed {
				t.Errorf("GetUser() inventory mismatch: %+v", gotUser.Inventory)
			}
			if gotUser.LifetimeStats.HighestStreak != 3 {
				t.Errorf("GetUser() lifetime stats mismatch: %+v", gotUser.LifetimeStats)
			}

			gotShop, err := store.GetShop()
			if err != nil {
				t.Fatalf("GetShop() failed: %v", err)
			}
			if len(gotShop.Items) != 1 || gotShop.Source != constants.ShopSourceFallback {
				t.Errorf("GetShop() mismatch: %+v", gotShop)
			}
			if !gotShop.LastRefresh.Equal(now) {
				t.Errorf("GetShop() last_refresh = %v, want %v", gotShop.LastRefresh, now)
			}
		})
	}
}

func TestOverwriteDocument(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			defer store.Close()

			if err := store.SaveUser(models.UserProfile{Points: 200}); err != nil {
				t.Fatalf("SaveUser() failed: %v", err)
			}
			if err := store.SaveUser(models.UserProfile{Points: 125}); err != nil {
				t.Fatalf("second SaveUser() failed: %v", err)
			}

			user, err := store.GetUser()
			if err != nil {
				t.Fatalf("GetUser() failed: %v", err)
			}
			if user.Points != 125 {
				t.Errorf("GetUser().Points = %d, want 125 after overwrite", user.Points)
			}
		})
	}
}

func TestJSONStoreCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "habitctl.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	// Inject a habits document that is not an array.
	data := `{"version": 1, "documents": {"habits": {"oops": true}}}`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := store.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if _, err := store.GetHabits(); err == nil {
		t.Error("GetHabits() on corrupt document should fail")
	}
}

func TestJSONStorePersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "habitctl.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.SaveHabits([]models.Habit{{ID: "h1", Name: "Read"}}); err != nil {
		t.Fatalf("SaveHabits() failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	habits, err := reopened.GetHabits()
	if err != nil {
		t.Fatalf("GetHabits() failed: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Errorf("reloaded habits = %+v, want the saved habit", habits)
	}
}

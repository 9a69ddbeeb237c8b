package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rajlakheradev-creator/habitctl/internal/achievements"
	"github.com/rajlakheradev-creator/habitctl/internal/constants"
	"github.com/rajlakheradev-creator/habitctl/internal/logger"
	"github.com/rajlakheradev-creator/habitctl/internal/models"
	"github.com/rajlakheradev-creator/habitctl/internal/shopgen"
	"github.com/rajlakheradev-creator/habitctl/internal/storage"
	"github.com/rajlakheradev-creator/habitctl/internal/utils"
)

// Expected failures callers are meant to branch on.
var (
	ErrEmptyName           = errors.New("directive name cannot be empty")
	ErrHabitNotFound       = errors.New("directive not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrAlreadyClaimed      = errors.New("achievement already claimed")
	ErrUnknownAchievement  = errors.New("unknown achievement")
	ErrRewardMismatch      = errors.New("reward does not match catalog")
	ErrNotEligible         = errors.New("achievement requirements not met")
	ErrRefreshInFlight     = errors.New("shop refresh already in progress")
	ErrRefreshNotDue       = errors.New("shop refresh not due yet")
)

// Engine owns the habit list, user profile, and shop state, and applies every
// economy rule. It holds its state in memory and mirrors each mutation to the
// storage provider; a failed write is logged and the in-memory state stays
// authoritative for the rest of the session.
type Engine struct {
	mu    sync.Mutex
	store storage.Provider
	gen   shopgen.Generator
	local shopgen.Generator

	habits []models.Habit
	user   models.UserProfile
	shop   models.ShopState

	generating bool
	now        func() time.Time
}

// New builds an engine over the given store. gen may be nil, in which case
// every shop refresh uses the local fallback generator.
func New(store storage.Provider, gen shopgen.Generator) *Engine {
	return &Engine{
		store: store,
		gen:   gen,
		local: shopgen.NewFallback(),
		now:   time.Now,
	}
}

// LoadReport lists the documents that could not be read and were replaced
// with their defaults.
type LoadReport struct {
	Degraded []string
}

// Load pulls the three documents out of the store. A missing or unreadable
// document is replaced by its default so one corrupt document never takes the
// whole profile down.
func (e *Engine) Load() (LoadReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var report LoadReport

	habits, err := e.store.GetHabits()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Habits document unreadable, starting empty", "error", err)
		}
		habits = []models.Habit{}
		report.Degraded = append(report.Degraded, storage.DocHabits)
	}
	e.habits = habits

	user, err := e.store.GetUser()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("User document unreadable, starting fresh profile", "error", err)
		}
		user = DefaultProfile()
		report.Degraded = append(report.Degraded, storage.DocUser)
	}
	e.user = user

	shop, err := e.store.GetShop()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Shop document unreadable, starting empty", "error", err)
		}
		shop = models.ShopState{}
		report.Degraded = append(report.Degraded, storage.DocShop)
	}
	e.shop = shop

	return report, nil
}

// DefaultProfile is the profile a brand-new user starts with.
func DefaultProfile() models.UserProfile {
	return models.UserProfile{
		Points:               constants.StartingPoints,
		Inventory:            []models.InventoryItem{},
		UnlockedAchievements: []string{},
	}
}

// Habits returns a copy of the current directive list.
func (e *Engine) Habits() []models.Habit {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Habit, len(e.habits))
	copy(out, e.habits)
	return out
}

// User returns the current profile snapshot.
func (e *Engine) User() models.UserProfile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.user
}

// Shop returns the current shop snapshot.
func (e *Engine) Shop() models.ShopState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shop
}

// AddHabit registers a new directive. The name is trimmed and must be
// non-empty.
func (e *Engine) AddHabit(name string) (models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, ErrEmptyName
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: e.now(),
	}
	e.habits = append(e.habits, habit)
	e.user.LifetimeStats.TotalHabitsCreated++

	e.persistHabits()
	e.persistUser()

	logger.Info("Directive added", "id", habit.ID, "name", habit.Name)
	return habit, nil
}

// DeleteHabit removes a directive by id. Deleting an unknown id is a no-op.
func (e *Engine) DeleteHabit(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, h := range e.habits {
		if h.ID == id {
			e.habits = append(e.habits[:i], e.habits[i+1:]...)
			e.persistHabits()
			logger.Info("Directive deleted", "id", id, "name", h.Name)
			return
		}
	}
}

// CompleteHabit marks a directive done for today and credits the completion.
// Completing an unknown or already-completed directive changes nothing.
//
// The streak compares calendar days at local midnight: a completion the day
// after the previous one extends the streak, a gap of more than one day
// resets it to 1, and a same-day previous completion leaves it untouched.
func (e *Engine) CompleteHabit(id string) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i, h := range e.habits {
		if h.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Habit{}, ErrHabitNotFound
	}

	h := &e.habits[idx]
	if h.Completed {
		return *h, nil
	}

	now := e.now()
	switch {
	case h.LastCompleted == nil:
		h.Streak = 1
	case utils.SameDay(*h.LastCompleted, now):
		// Already counted for today; flag was cleared out of band.
	case utils.DaysBetween(*h.LastCompleted, now) == 1:
		h.Streak++
	default:
		h.Streak = 1
	}

	completedAt := now
	h.Completed = true
	h.LastCompleted = &completedAt

	e.user.Points += constants.PointsPerComplete
	e.user.TotalPointsEarned += constants.PointsPerComplete
	e.user.TotalCompleted++
	e.user.LifetimeStats.TotalCompletions++
	if h.Streak > e.user.LifetimeStats.HighestStreak {
		e.user.LifetimeStats.HighestStreak = h.Streak
	}

	e.persistHabits()
	e.persistUser()

	logger.Info("Directive completed", "id", h.ID, "name", h.Name,
		"streak", h.Streak, "points", e.user.Points)
	return *h, nil
}

// DailyReset clears every directive's completed flag once per calendar date.
// It reports whether a reset actually ran. Streaks are left alone; missed
// days are settled lazily by the streak rule on the next completion.
func (e *Engine) DailyReset() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := utils.DateString(e.now())
	if e.user.LastResetDate == today {
		return false
	}

	for i := range e.habits {
		e.habits[i].Completed = false
	}
	e.user.LastResetDate = today

	e.persistHabits()
	e.persistUser()

	logger.Info("Daily reset applied", "date", today)
	return true
}

// BuyItem debits the item's price and adds it to the inventory. The listing
// stays in the shop, so the same item can be bought again.
func (e *Engine) BuyItem(item models.Item) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.user.Points < item.Price {
		return fmt.Errorf("%w: have %d CR, need %d CR", ErrInsufficientCredits,
			e.user.Points, item.Price)
	}

	e.user.Points -= item.Price
	e.user.Inventory = append(e.user.Inventory, models.InventoryItem{
		Item:        item,
		PurchasedAt: e.now(),
	})

	e.persistUser()

	logger.Info("Item purchased", "item", item.Name, "price", item.Price,
		"points", e.user.Points)
	return nil
}

// ClaimAchievement credits an achievement's reward. The id and reward are
// checked against the catalog and the current stats; a repeat claim or an
// ineligible one fails without touching the profile.
func (e *Engine) ClaimAchievement(id string, reward int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := achievements.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAchievement, id)
	}
	if a.Reward != reward {
		return fmt.Errorf("%w: %q pays %d CR, not %d CR", ErrRewardMismatch,
			id, a.Reward, reward)
	}
	if e.user.HasAchievement(id) {
		return fmt.Errorf("%w: %q", ErrAlreadyClaimed, id)
	}
	if !a.Requirement(e.statsLocked()) {
		return fmt.Errorf("%w: %q", ErrNotEligible, id)
	}

	e.user.UnlockedAchievements = append(e.user.UnlockedAchievements, id)
	e.user.Points += a.Reward
	e.user.TotalPointsEarned += a.Reward

	e.persistUser()

	logger.Info("Achievement claimed", "id", id, "reward", a.Reward)
	return nil
}

// MarkInventoryViewed flags every owned item as seen.
func (e *Engine) MarkInventoryViewed() {
	e.mu.Lock()
	defer e.mu.Unlock()

	changed := false
	for i := range e.user.Inventory {
		if !e.user.Inventory[i].Viewed {
			e.user.Inventory[i].Viewed = true
			changed = true
		}
	}
	if changed {
		e.persistUser()
	}
}

// IsRefreshDue reports whether the shop should be restocked: it is empty, or
// the last refresh is more than the rotation interval ago.
func (e *Engine) IsRefreshDue() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refreshDueLocked()
}

func (e *Engine) refreshDueLocked() bool {
	if len(e.shop.Items) == 0 {
		return true
	}
	return e.now().Sub(e.shop.LastRefresh) > constants.ShopRefreshEvery
}

// RefreshShop restocks the shop. When forced is false and the current listing
// is still fresh, nothing happens. Only one refresh runs at a time; a second
// caller gets ErrRefreshInFlight instead of a duplicate generation.
//
// A model generator failure is not fatal: the local fallback restocks the
// shop so it is never left empty, and ShopState.Source records which path
// produced the listing.
func (e *Engine) RefreshShop(ctx context.Context, forced bool) (models.ShopState, error) {
	e.mu.Lock()
	if e.generating {
		e.mu.Unlock()
		return models.ShopState{}, ErrRefreshInFlight
	}
	if !forced && !e.refreshDueLocked() {
		shop := e.shop
		e.mu.Unlock()
		return shop, ErrRefreshNotDue
	}
	e.generating = true
	names := make([]string, 0, len(e.habits))
	for _, h := range e.habits {
		names = append(names, h.Name)
	}
	e.mu.Unlock()

	items, source := e.generate(ctx, names)

	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() { e.generating = false }()

	e.shop = models.ShopState{
		Items:       items,
		LastRefresh: e.now(),
		Source:      source,
	}
	e.persistShop()

	logger.Info("Shop restocked", "items", len(items), "source", source)
	return e.shop, nil
}

func (e *Engine) generate(ctx context.Context, names []string) ([]models.Item, constants.ShopSource) {
	if e.gen != nil {
		items, err := e.gen.Generate(ctx, constants.ShopSize, names)
		if err == nil {
			return items, constants.ShopSourceModel
		}
		logger.Warn("Generator failed, using fallback", "error", err)
	}

	items, err := e.local.Generate(ctx, constants.ShopSize, names)
	if err != nil {
		// The fallback composes from fixed fragments and cannot fail in
		// practice; an empty restock beats a stale flag.
		logger.Error("Fallback generator failed", "error", err)
		return []models.Item{}, constants.ShopSourceFallback
	}
	return items, constants.ShopSourceFallback
}

// Stats derives the snapshot the achievement predicates and the stats views
// are evaluated against.
func (e *Engine) Stats() achievements.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statsLocked()
}

func (e *Engine) statsLocked() achievements.Stats {
	s := achievements.Stats{
		TotalHabits:       len(e.habits),
		InventorySize:     len(e.user.Inventory),
		ItemsPurchased:    len(e.user.Inventory),
		TotalPointsEarned: e.user.TotalPointsEarned,
		TotalCompleted:    e.user.TotalCompleted,
		HighestStreak:     e.user.LifetimeStats.HighestStreak,
	}
	for _, h := range e.habits {
		if h.Completed {
			s.CompletedToday++
		}
		if h.Streak > s.MaxStreak {
			s.MaxStreak = h.Streak
		}
	}
	return s
}

func (e *Engine) persistHabits() {
	if err := e.store.SaveHabits(e.habits); err != nil {
		logger.Error("Failed to persist habits", "error", err)
	}
}

func (e *Engine) persistUser() {
	if err := e.store.SaveUser(e.user); err != nil {
		logger.Error("Failed to persist user profile", "error", err)
	}
}

func (e *Engine) persistShop() {
	if err := e.store.SaveShop(e.shop); err != nil {
		logger.Error("Failed to persist shop", "error", err)
	}
}

package models

// LifetimeStats are monotonically non-decreasing counters that survive habit
// deletion and daily resets.
type LifetimeStats struct {
	TotalHabitsCreated int `json:"total_habits_created"`
	TotalCompletions   int `json:"total_completions"`
	HighestStreak      int `json:"highest_streak"`
}

// UserProfile holds the credit balance, owned items, and cumulative counters.
type UserProfile struct {
	Points               int            `json:"points"`
	Inventory            []InventoryItem `json:"inventory"`
	UnlockedAchievements []string       `json:"unlocked_achievements"`
	TotalPointsEarned    int            `json:"total_points_earned"`
	TotalCompleted       int            `json:"total_completed"`
	LastResetDate        string         `json:"last_reset_date,omitempty"` // YYYY-MM-DD
	LifetimeStats        LifetimeStats  `json:"lifetime_stats"`
}

// HasAchievement reports whether the achievement id has already been claimed.
func (u *UserProfile) HasAchievement(id string) bool {
	for _, a := range u.UnlockedAchievements {
		if a == id {
			return true
		}
	}
	return false
}

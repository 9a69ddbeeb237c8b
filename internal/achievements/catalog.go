package achievements

// Stats are the derived values achievement eligibility is judged against.
// They are recomputed on demand by the engine and never stored.
type Stats struct {
	TotalHabits       int
	CompletedToday    int
	MaxStreak         int
	ItemsPurchased    int
	InventorySize     int
	TotalPointsEarned int
	TotalCompleted    int
	HighestStreak     int
}

// Achievement is a static catalog entry. Requirement is a pure predicate over
// derived stats.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Reward      int
	Requirement func(Stats) bool
}

// Catalog is the full set of claimable achievements, in display order.
var Catalog = []Achievement{
	{
		ID:          "first_habit",
		Name:        "First Step",
		Description: "Create your first habit",
		Icon:        "🎯",
		Reward:      50,
		Requirement: func(s Stats) bool { return s.TotalHabits >= 1 },
	},
	{
		ID:          "complete_five",
		Name:        "Momentum Builder",
		Description: "Complete 5 habits in one day",
		Icon:        "⚡",
		Reward:      100,
		Requirement: func(s Stats) bool { return s.CompletedToday >= 5 },
	},
	{
		ID:          "streak_master",
		Name:        "Streak Master",
		Description: "Reach a 7-day streak on any habit",
		Icon:        "🔥",
		Reward:      200,
		Requirement: func(s Stats) bool { return s.MaxStreak >= 7 },
	},
	{
		ID:          "collector",
		Name:        "Item Collector",
		Description: "Purchase 5 items from the shop",
		Icon:        "🛍️",
		Reward:      150,
		Requirement: func(s Stats) bool { return s.ItemsPurchased >= 5 },
	},
	{
		ID:          "habit_master",
		Name:        "Habit Master",
		Description: "Maintain 10 active habits",
		Icon:        "🏆",
		Reward:      250,
		Requirement: func(s Stats) bool { return s.TotalHabits >= 10 },
	},
	{
		ID:          "wealthy",
		Name:        "Credit Millionaire",
		Description: "Earn 1000 total credits",
		Icon:        "💰",
		Reward:      300,
		Requirement: func(s Stats) bool { return s.TotalPointsEarned >= 1000 },
	},
	{
		ID:          "dedicated",
		Name:        "Dedicated",
		Description: "Complete 20 habits total",
		Icon:        "💪",
		Reward:      200,
		Requirement: func(s Stats) bool { return s.TotalCompleted >= 20 },
	},
	{
		ID:          "inventory_full",
		Name:        "Hoarder",
		Description: "Own 10 items in inventory",
		Icon:        "📦",
		Reward:      250,
		Requirement: func(s Stats) bool { return s.InventorySize >= 10 },
	},
	{
		ID:          "streak_legend",
		Name:        "Legendary Streak",
		Description: "Reach a 30-day streak",
		Icon:        "🌟",
		Reward:      500,
		Requirement: func(s Stats) bool { return s.MaxStreak >= 30 },
	},
	{
		ID:          "perfectionist",
		Name:        "Perfectionist",
		Description: "Complete all habits in a day (10+)",
		Icon:        "✨",
		Reward:      400,
		Requirement: func(s Stats) bool {
			return s.TotalHabits >= 10 && s.CompletedToday == s.TotalHabits
		},
	},
}

// Lookup returns the catalog entry for id, or false if no such achievement.
func Lookup(id string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// Eligible reports whether the stats satisfy the achievement's requirement.
func Eligible(id string, stats Stats) bool {
	a, ok := Lookup(id)
	if !ok {
		return false
	}
	return a.Requirement(stats)
}

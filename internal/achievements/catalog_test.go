package achievements

import "testing"

func TestCatalogHasUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range Catalog {
		if seen[a.ID] {
			t.Errorf("duplicate achievement id %q", a.ID)
		}
		seen[a.ID] = true

		if a.Name == "" || a.Description == "" || a.Icon == "" {
			t.Errorf("achievement %q has empty display fields", a.ID)
		}
		if a.Reward <= 0 {
			t.Errorf("achievement %q has non-positive reward %d", a.ID, a.Reward)
		}
		if a.Requirement == nil {
			t.Errorf("achievement %q has nil requirement", a.ID)
		}
	}
}

func TestLookup(t *testing.T) {
	a, ok := Lookup("streak_master")
	if !ok {
		t.Fatal("Lookup(streak_master) not found")
	}
	if a.Reward != 200 {
		t.Errorf("streak_master reward = %d, want 200", a.Reward)
	}

	if _, ok := Lookup("no_such_id"); ok {
		t.Error("Lookup(no_such_id) should not be found")
	}
}

func TestEligibility(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		stats Stats
		want  bool
	}{
		{
			name:  "first habit created",
			id:    "first_habit",
			stats: Stats{TotalHabits: 1},
			want:  true,
		},
		{
			name:  "no habits yet",
			id:    "first_habit",
			stats: Stats{},
			want:  false,
		},
		{
			name:  "seven day streak",
			id:    "streak_master",
			stats: Stats{MaxStreak: 7},
			want:  true,
		},
		{
			name:  "six day streak falls short",
			id:    "streak_master",
			stats: Stats{MaxStreak: 6},
			want:  false,
		},
		{
			name:  "five items purchased",
			id:    "collector",
			stats: Stats{ItemsPurchased: 5},
			want:  true,
		},
		{
			name:  "thousand credits earned",
			id:    "wealthy",
			stats: Stats{TotalPointsEarned: 1000},
			want:  true,
		},
		{
			name:  "twenty total completions",
			id:    "dedicated",
			stats: Stats{TotalCompleted: 20},
			want:  true,
		},
		{
			name:  "perfectionist needs ten habits",
			id:    "perfectionist",
			stats: Stats{TotalHabits: 5, CompletedToday: 5},
			want:  false,
		},
		{
			name:  "perfectionist all done",
			id:    "perfectionist",
			stats: Stats{TotalHabits: 10, CompletedToday: 10},
			want:  true,
		},
		{
			name:  "perfectionist one missing",
			id:    "perfectionist",
			stats: Stats{TotalHabits: 10, CompletedToday: 9},
			want:  false,
		},
		{
			name:  "unknown id never eligible",
			id:    "no_such_id",
			stats: Stats{TotalHabits: 100},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eligible(tt.id, tt.stats); got != tt.want {
				t.Errorf("Eligible(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

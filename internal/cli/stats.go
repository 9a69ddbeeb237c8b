package cli

import (
	"context"
	"fmt"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	ctx.Activate(context.Background())

	user := ctx.Engine.User()
	stats := ctx.Engine.Stats()

	fmt.Println("Operator stats")
	fmt.Printf("  Balance:           %s\n", FormatCR(user.Points))
	fmt.Printf("  Lifetime earned:   %s\n", FormatCR(user.TotalPointsEarned))
	fmt.Printf("  Directives:        %d (%d completed today)\n", stats.TotalHabits, stats.CompletedToday)
	fmt.Printf("  Completions:       %d\n", user.TotalCompleted)
	fmt.Printf("  Current max streak: %s\n", FormatStreak(stats.MaxStreak))
	fmt.Printf("  Highest streak:    %s\n", FormatStreak(user.LifetimeStats.HighestStreak))
	fmt.Printf("  Items owned:       %d\n", len(user.Inventory))
	fmt.Printf("  Achievements:      %d\n", len(user.UnlockedAchievements))
	fmt.Printf("  Directives created: %d (lifetime)\n", user.LifetimeStats.TotalHabitsCreated)
	return nil
}

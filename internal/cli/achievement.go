package cli

import (
	"context"
	"fmt"

	"github.com/rajlakheradev-creator/habitctl/internal/achievements"
)

type AchievementsCmd struct {
	List  AchievementsListCmd  `cmd:"" help:"List achievements and their status." default:"1"`
	Claim AchievementsClaimCmd `cmd:"" help:"Claim an unlocked achievement's reward."`
}

type AchievementsListCmd struct{}

func (c *AchievementsListCmd) Run(ctx *Context) error {
	ctx.Activate(context.Background())

	user := ctx.Engine.User()
	stats := ctx.Engine.Stats()

	claimed := 0
	for _, a := range achievements.Catalog {
		status := "locked"
		switch {
		case user.HasAchievement(a.ID):
			status = "claimed"
			claimed++
		case a.Requirement(stats):
			status = "CLAIMABLE"
		}
		fmt.Printf("%s %-20s %9s  +%-6s %s\n",
			a.Icon, a.Name, status, FormatCR(a.Reward), a.Description)
	}

	fmt.Printf("\nClaimed: %d/%d\n", claimed, len(achievements.Catalog))
	return nil
}

type AchievementsClaimCmd struct {
	ID string `arg:"" help:"Achievement id (e.g. first_habit)."`
}

func (c *AchievementsClaimCmd) Run(ctx *Context) error {
	ctx.Activate(context.Background())

	a, ok := achievements.Lookup(c.ID)
	if !ok {
		return fmt.Errorf("unknown achievement %q, see 'habitctl achievements list'", c.ID)
	}

	if err := ctx.Engine.ClaimAchievement(a.ID, a.Reward); err != nil {
		return err
	}

	fmt.Printf("%s %s claimed! +%s. Balance: %s\n",
		a.Icon, a.Name, FormatCR(a.Reward), FormatCR(ctx.Engine.User().Points))
	return nil
}

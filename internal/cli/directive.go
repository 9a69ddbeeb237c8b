package cli

import (
	"context"
	"fmt"
)

type DirectiveCmd struct {
	Add    DirectiveAddCmd    `cmd:"" help:"Register a new directive."`
	List   DirectiveListCmd   `cmd:"" help:"List directives with today's status." default:"1"`
	Done   DirectiveDoneCmd   `cmd:"" help:"Mark a directive completed for today."`
	Delete DirectiveDeleteCmd `cmd:"" help:"Delete a directive."`
}

type DirectiveAddCmd struct {
	Name string `arg:"" help:"Directive name."`
}

func (c *DirectiveAddCmd) Run(ctx *Context) error {
	ctx.Activate(context.Background())

	habit, err := ctx.Engine.AddHabit(c.Name)
	if err != nil {
		return err
	}

	fmt.Printf("Added directive: %s (%s)\n", habit.Name, habit.ID[:8])
	return nil
}

type DirectiveListCmd struct{}

func (c *DirectiveListCmd) Run(ctx *Context) error {
	ctx.Activate(context.Background())

	habits := ctx.Engine.Habits()
	if len(habits) == 0 {
		fmt.Println("No directives yet. Add one with 'habitctl directive add <name>'.")
		return nil
	}

	for _, h := range habits {
		status := "[ ]"
		if h.Completed {
			status = "[x]"
		}
		fmt.Printf("%s %-30s %-8s %s\n", status, h.Name, FormatStreak(h.Streak), h.ID[:8])
	}

	user := ctx.Engine.User()
	stats := ctx.Engine.Stats()
	fmt.Printf("\nCompleted today: %d/%d   Balance: %s\n",
		stats.CompletedToday, stats.TotalHabits, FormatCR(user.Points))
	return nil
}

type DirectiveDoneCmd struct {
	Ref string `arg:"" help:"Directive id, id prefix, or name."`
}

func (c *DirectiveDoneCmd) Run(ctx *Context) error {
	ctx.Activate(context.Background())

	id, err := matchHabit(ctx, c.Ref)
	if err != nil {
		return err
	}

	before := ctx.Engine.User().Points
	habit, err := ctx.Engine.CompleteHabit(id)
	if err != nil {
		return err
	}

	earned := ctx.Engine.User().Points - before
	if earned == 0 {
		fmt.Printf("%q is already completed today.\n", habit.Name)
		return nil
	}

	fmt.Printf("Completed %q  +%s  streak %s\n",
		habit.Name, FormatCR(earned), FormatStreak(habit.Streak))
	return nil
}

type DirectiveDeleteCmd struct {
	Ref string `arg:"" help:"Directive id, id prefix, or name."`
}

func (c *DirectiveDeleteCmd) Run(ctx *Context) error {
	ctx.Activate(context.Background())

	id, err := matchHabit(ctx, c.Ref)
	if err != nil {
		return err
	}

	ctx.Engine.DeleteHabit(id)
	fmt.Println("Directive deleted.")
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rajlakheradev-creator/habitctl/internal/engine"
	"github.com/rajlakheradev-creator/habitctl/internal/logger"
	"github.com/rajlakheradev-creator/habitctl/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Engine *engine.Engine
}

// Activate runs the once-per-activation bookkeeping every stateful command
// depends on: the lazy daily reset and, when the listing has gone stale, a
// shop restock. Both are best-effort; a failed restock leaves the previous
// listing in place.
func (c *Context) Activate(ctx context.Context) {
	if c.Engine.DailyReset() {
		logger.Debug("Activation ran daily reset")
	}
	if c.Engine.IsRefreshDue() {
		if _, err := c.Engine.RefreshShop(ctx, false); err != nil &&
			!errors.Is(err, engine.ErrRefreshNotDue) && !errors.Is(err, engine.ErrRefreshInFlight) {
			logger.Warn("Activation shop refresh failed", "error", err)
		}
	}
}

// FormatCR renders a credit amount with its unit.
func FormatCR(points int) string {
	return fmt.Sprintf("%d CR", points)
}

// FormatStreak renders a streak count, with a flame once it is running.
func FormatStreak(streak int) string {
	if streak <= 0 {
		return "-"
	}
	return fmt.Sprintf("🔥 %d", streak)
}

// FormatAge renders how long ago t was, coarsely.
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// matchHabit resolves a directive by id, id prefix, or exact name.
func matchHabit(c *Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	habits := c.Engine.Habits()

	for _, h := range habits {
		if h.ID == ref || h.Name == ref {
			return h.ID, nil
		}
	}

	var prefixed []string
	for _, h := range habits {
		if strings.HasPrefix(h.ID, ref) {
			prefixed = append(prefixed, h.ID)
		}
	}
	switch len(prefixed) {
	case 1:
		return prefixed[0], nil
	case 0:
		return "", fmt.Errorf("no directive matches %q", ref)
	default:
		return "", fmt.Errorf("%q is ambiguous, matches %d directives", ref, len(prefixed))
	}
}

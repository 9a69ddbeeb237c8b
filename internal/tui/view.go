package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rajlakheradev-creator/habitctl/internal/achievements"
	"github.com/rajlakheradev-creator/habitctl/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case stateDirectives:
		content = m.viewDirectives()
	case stateMarket:
		content = m.viewMarket()
	case stateInventory:
		content = m.viewInventory()
	case stateAchievements:
		content = m.viewAchievements()
	case stateStats:
		content = m.viewStats()
	case stateAddDirective:
		content = m.form.View()
	case stateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		docStyle.Render(content),
		m.status,
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	var tabs []string
	tabTitles := []string{"Directives", "Market", "Inventory", "Achievements", "Stats"}
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}
	for i, title := range tabTitles {
		if i == 2 {
			if n := m.unviewedCount(); n > 0 {
				title = fmt.Sprintf("%s (%d)", title, n)
			}
		}
		if active == sessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}

	balance := creditStyle.Render(fmt.Sprintf("%d CR", m.engine.User().Points))
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, "  ", balance)...)
}

func (m Model) unviewedCount() int {
	n := 0
	for _, item := range m.engine.User().Inventory {
		if !item.Viewed {
			n++
		}
	}
	return n
}

func (m Model) viewDirectives() string {
	habits := m.engine.Habits()
	if len(habits) == 0 {
		return dimStyle.Render("No directives yet. Press 'a' to add one.")
	}

	var b strings.Builder
	for i, h := range habits {
		cursor := "  "
		if i == m.dirCursor {
			cursor = cursorStyle.Render("> ")
		}
		status := "[ ]"
		if h.Completed {
			status = "[x]"
		}
		streak := ""
		if h.Streak > 0 {
			streak = dimStyle.Render(fmt.Sprintf("  🔥 %d", h.Streak))
		}
		fmt.Fprintf(&b, "%s%s %s%s\n", cursor, status, h.Name, streak)
	}
	fmt.Fprintf(&b, "\n%s", dimStyle.Render("enter: complete for +50 CR"))
	return b.String()
}

func (m Model) viewMarket() string {
	shop := m.engine.Shop()
	if len(shop.Items) == 0 {
		return dimStyle.Render("The Black Market is empty. Press 'r' to restock.")
	}

	source := "local stock"
	if shop.Source == constants.ShopSourceModel {
		source = "ai curated"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", dimStyle.Render("Black Market — "+source))
	for i, item := range shop.Items {
		cursor := "  "
		if i == m.marketCursor {
			cursor = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %-28s %s\n", cursor, item.Icon, item.Name,
			creditStyle.Render(fmt.Sprintf("%4d CR", item.Price)))
		fmt.Fprintf(&b, "     %s\n", dimStyle.Render(item.Description))
	}
	return b.String()
}

func (m Model) viewInventory() string {
	inventory := m.engine.User().Inventory
	if len(inventory) == 0 {
		return dimStyle.Render("Inventory is empty. Buy something on the Market.")
	}

	var b strings.Builder
	for _, item := range inventory {
		badge := "   "
		if !item.Viewed {
			badge = newBadgeStyle.Render("NEW")
		}
		fmt.Fprintf(&b, "%s %s %-28s %s\n", badge, item.Icon, item.Name,
			dimStyle.Render(fmt.Sprintf("%d CR", item.Price)))
	}
	return b.String()
}

func (m Model) viewAchievements() string {
	user := m.engine.User()
	stats := m.engine.Stats()

	var b strings.Builder
	for i, a := range achievements.Catalog {
		cursor := "  "
		if i == m.achCursor {
			cursor = cursorStyle.Render("> ")
		}
		status := dimStyle.Render("locked")
		switch {
		case user.HasAchievement(a.ID):
			status = statusStyle.Render("claimed")
		case a.Requirement(stats):
			status = creditStyle.Render("CLAIMABLE")
		}
		fmt.Fprintf(&b, "%s%s %-20s %s  %s\n", cursor, a.Icon, a.Name, status,
			dimStyle.Render(fmt.Sprintf("+%d CR — %s", a.Reward, a.Description)))
	}
	fmt.Fprintf(&b, "\n%s", dimStyle.Render("enter: claim"))
	return b.String()
}

func (m Model) viewStats() string {
	user := m.engine.User()
	stats := m.engine.Stats()

	var b strings.Builder
	fmt.Fprintf(&b, "Balance            %s\n", creditStyle.Render(fmt.Sprintf("%d CR", user.Points)))
	fmt.Fprintf(&b, "Lifetime earned    %d CR\n", user.TotalPointsEarned)
	fmt.Fprintf(&b, "Directives         %d (%d done today)\n", stats.TotalHabits, stats.CompletedToday)
	fmt.Fprintf(&b, "Completions        %d\n", user.TotalCompleted)
	fmt.Fprintf(&b, "Max streak         %d (best ever %d)\n", stats.MaxStreak, user.LifetimeStats.HighestStreak)
	fmt.Fprintf(&b, "Items owned        %d\n", len(user.Inventory))
	fmt.Fprintf(&b, "Achievements       %d/%d\n", len(user.UnlockedAchievements), len(achievements.Catalog))
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	return fmt.Sprintf("%s\n\n%s",
		dangerStyle.Render(fmt.Sprintf("Delete directive %q?", m.deleteTarget.Name)),
		dimStyle.Render("y: delete   n: cancel"))
}

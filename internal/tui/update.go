package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/rajlakheradev-creator/habitctl/internal/achievements"
	"github.com/rajlakheradev-creator/habitctl/internal/engine"
	"github.com/rajlakheradev-creator/habitctl/internal/models"
)

// shopRefreshedMsg reports an async market restock.
type shopRefreshedMsg struct {
	shop models.ShopState
	err  error
}

func refreshShopCmd(eng *engine.Engine, forced bool) tea.Cmd {
	return func() tea.Msg {
		shop, err := eng.RefreshShop(context.Background(), forced)
		return shopRefreshedMsg{shop: shop, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case shopRefreshedMsg:
		m.refreshing = false
		if msg.err != nil {
			m.status = dangerStyle.Render(fmt.Sprintf("Restock failed: %v", msg.err))
		} else {
			m.status = statusStyle.Render("Black Market restocked.")
			m.marketCursor = 0
		}
		return m, nil
	}

	if m.state == stateAddDirective {
		return m.updateAddDirective(msg)
	}
	if m.state == stateConfirmDelete {
		return m.updateConfirmDelete(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.status = ""

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(keyMsg, m.keys.Tab):
		return m.switchTab(1), nil

	case key.Matches(keyMsg, m.keys.ShiftTab):
		return m.switchTab(-1), nil

	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	}

	switch m.state {
	case stateDirectives:
		return m.updateDirectives(keyMsg)
	case stateMarket:
		return m.updateMarket(keyMsg)
	case stateAchievements:
		return m.updateAchievements(keyMsg)
	}
	return m, nil
}

func (m Model) switchTab(dir int) Model {
	m.state = sessionState((int(m.state) + dir + tabCount) % tabCount)
	// Opening the inventory clears the NEW badges.
	if m.state == stateInventory {
		m.engine.MarkInventoryViewed()
	}
	return m
}

func (m *Model) moveCursor(dir int) {
	clamp := func(cur, n int) int {
		cur += dir
		if cur < 0 {
			cur = 0
		}
		if cur > n-1 {
			cur = n - 1
		}
		if n == 0 {
			cur = 0
		}
		return cur
	}

	switch m.state {
	case stateDirectives:
		m.dirCursor = clamp(m.dirCursor, len(m.engine.Habits()))
	case stateMarket:
		m.marketCursor = clamp(m.marketCursor, len(m.engine.Shop().Items))
	case stateAchievements:
		m.achCursor = clamp(m.achCursor, len(achievements.Catalog))
	}
}

func (m Model) updateDirectives(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	habits := m.engine.Habits()

	switch {
	case key.Matches(msg, m.keys.Add):
		m.directiveForm = &DirectiveFormModel{}
		m.form = newDirectiveForm(m.directiveForm)
		m.previousState = m.state
		m.state = stateAddDirective
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		if m.dirCursor < len(habits) {
			m.deleteTarget = habits[m.dirCursor]
			m.previousState = m.state
			m.state = stateConfirmDelete
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.dirCursor >= len(habits) {
			return m, nil
		}
		target := habits[m.dirCursor]
		if target.Completed {
			m.status = dimStyle.Render("Already completed today.")
			return m, nil
		}
		habit, err := m.engine.CompleteHabit(target.ID)
		if err != nil {
			m.status = dangerStyle.Render(err.Error())
			return m, nil
		}
		m.status = statusStyle.Render(fmt.Sprintf("Completed %q — streak %d", habit.Name, habit.Streak))
		return m, nil
	}
	return m, nil
}

func (m Model) updateMarket(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		m.status = dimStyle.Render("Restocking...")
		return m, refreshShopCmd(m.engine, true)

	case key.Matches(msg, m.keys.Enter):
		items := m.engine.Shop().Items
		if m.marketCursor >= len(items) {
			return m, nil
		}
		item := items[m.marketCursor]
		if err := m.engine.BuyItem(item); err != nil {
			m.status = dangerStyle.Render(err.Error())
			return m, nil
		}
		m.status = statusStyle.Render(fmt.Sprintf("Purchased %s for %d CR", item.Name, item.Price))
		return m, nil
	}
	return m, nil
}

func (m Model) updateAchievements(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Enter) {
		return m, nil
	}
	if m.achCursor >= len(achievements.Catalog) {
		return m, nil
	}

	a := achievements.Catalog[m.achCursor]
	if err := m.engine.ClaimAchievement(a.ID, a.Reward); err != nil {
		m.status = dangerStyle.Render(err.Error())
		return m, nil
	}
	m.status = statusStyle.Render(fmt.Sprintf("%s claimed, +%d CR", a.Name, a.Reward))
	return m, nil
}

func (m Model) updateAddDirective(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		name := strings.TrimSpace(m.directiveForm.Name)
		if _, err := m.engine.AddHabit(name); err != nil {
			m.status = dangerStyle.Render(err.Error())
		} else {
			m.status = statusStyle.Render(fmt.Sprintf("Directive %q added", name))
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.engine.DeleteHabit(m.deleteTarget.ID)
		m.status = statusStyle.Render(fmt.Sprintf("Directive %q deleted", m.deleteTarget.Name))
		if n := len(m.engine.Habits()); m.dirCursor >= n && n > 0 {
			m.dirCursor = n - 1
		}
		m.state = m.previousState
	case "n", "N", "esc":
		m.state = m.previousState
	}
	return m, nil
}

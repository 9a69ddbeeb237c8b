package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/rajlakheradev-creator/habitctl/internal/engine"
	"github.com/rajlakheradev-creator/habitctl/internal/models"
)

type sessionState int

const (
	stateDirectives sessionState = iota
	stateMarket
	stateInventory
	stateAchievements
	stateStats
	stateAddDirective
	stateConfirmDelete
)

// tabCount is the number of cycleable main views.
const tabCount = 5

type DirectiveFormModel struct {
	Name string
}

type Model struct {
	engine        *engine.Engine
	state         sessionState
	previousState sessionState
	keys          KeyMap
	help          help.Model

	dirCursor    int
	marketCursor int
	achCursor    int

	form          *huh.Form
	directiveForm *DirectiveFormModel

	deleteTarget models.Habit
	status       string
	refreshing   bool
	quitting     bool
	width        int
	height       int
}

func NewModel(eng *engine.Engine) Model {
	return Model{
		engine: eng,
		state:  stateDirectives,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case stateDirectives:
		keys = append(keys, m.keys.Enter, m.keys.Add, m.keys.Delete)
	case stateMarket:
		keys = append(keys, m.keys.Enter, m.keys.Refresh)
	case stateAchievements:
		keys = append(keys, m.keys.Enter)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case stateDirectives:
		actions = []key.Binding{m.keys.Add, m.keys.Delete}
	case stateMarket:
		actions = []key.Binding{m.keys.Refresh}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func newDirectiveForm(fm *DirectiveFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New directive").
				Description("What do you commit to doing daily?").
				Value(&fm.Name),
		),
	)
}

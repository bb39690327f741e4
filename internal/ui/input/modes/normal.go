package modes

import (
	"epubshelf/internal/ui/input/types"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := m.keys

	// Quitting and help work before the catalog arrives
	switch {
	case key.Matches(msg, k.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	case key.Matches(msg, k.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	if !ctx.Ready() {
		return nil, false
	}

	switch {
	case key.Matches(msg, k.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, k.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, k.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case key.Matches(msg, k.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case key.Matches(msg, k.Home):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case key.Matches(msg, k.End):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case key.Matches(msg, k.SwitchFocus):
		return []types.Action{types.SwitchFocusAction{}}, true
	case key.Matches(msg, k.PrevCategory):
		return []types.Action{types.CycleCategoryAction{Delta: -1}}, true
	case key.Matches(msg, k.NextCategory):
		return []types.Action{types.CycleCategoryAction{Delta: 1}}, true
	case key.Matches(msg, k.Search):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchTerm()}}, true
	case key.Matches(msg, k.ClearSearch):
		if ctx.SearchTerm() == "" {
			return nil, true
		}
		return []types.Action{types.ClearSearchAction{}}, true
	case key.Matches(msg, k.Select):
		if ctx.CategoriesFocused() || ctx.HasBooks() {
			return []types.Action{types.SelectAction{}}, true
		}
		return nil, false
	case key.Matches(msg, k.Details):
		if !ctx.CategoriesFocused() && ctx.HasBooks() {
			return []types.Action{types.ShowDetailsAction{}}, true
		}
		return nil, false
	}

	return nil, false
}

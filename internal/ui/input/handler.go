package input

import (
	"epubshelf/internal/ui/input/modes"
	"epubshelf/internal/ui/input/types"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New(keys types.KeyMap) *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 120

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode(keys)
	h.modes[types.ModeSearch] = modes.NewSearchMode(h.textInput)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}

		if h.modes[h.currentMode] != nil {
			allActions = append(allActions, h.modes[h.currentMode].Exit(ctx)...)
		}

		oldMode := h.currentMode
		h.currentMode = changeMode.Mode

		if h.modes[h.currentMode] != nil {
			allActions = append(allActions, h.modes[h.currentMode].Enter(ctx)...)
		}

		if h.isTextMode(h.currentMode) {
			h.textInput.Reset()
			if data, ok := changeMode.Data.(string); ok {
				h.textInput.SetValue(data)
				h.textInput.CursorEnd()
			}
			cmd = h.textInput.Focus()
		} else if h.isTextMode(oldMode) {
			h.textInput.Blur()
		}
	}

	// Keys the text mode did not handle go to the text input
	if h.isTextMode(h.currentMode) && !consumed {
		before := h.textInput.Value()
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		if h.textInput.Value() != before {
			allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
		}
	}

	return allActions, cmd
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if mode := h.modes[h.currentMode]; mode != nil {
		return mode.Name()
	}
	return ""
}

// TextInput returns the shared input while a text mode is active
func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	return mode == types.ModeSearch
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}

package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// SwitchFocusAction moves focus between the category and book panels
type SwitchFocusAction struct{}

func (a SwitchFocusAction) Type() string { return "switch_focus" }

// CycleCategoryAction activates the previous (-1) or next (+1) category
type CycleCategoryAction struct {
	Delta int
}

func (a CycleCategoryAction) Type() string { return "cycle_category" }

// SelectAction activates the focused category or downloads the focused book
type SelectAction struct{}

func (a SelectAction) Type() string { return "select" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Restore string // text in effect before the mode was entered
}

func (a CancelTextAction) Type() string { return "cancel_text" }

type ClearSearchAction struct{}

func (a ClearSearchAction) Type() string { return "clear_search" }

// Command actions
type ShowDetailsAction struct{}

func (a ShowDetailsAction) Type() string { return "show_details" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

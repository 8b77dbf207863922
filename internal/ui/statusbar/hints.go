package statusbar

import "github.com/riordanpawley/taskmaster/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "j/k: move  x: toggle  c: new  e: edit  d: delete  /: search  f: filter  t: theme  ?: help"
	case types.ModeSearch:
		return "Type to search  Enter: confirm  Esc: clear"
	case types.ModeFilter:
		return "j/k: move  Enter: apply  Esc: cancel"
	case types.ModeCreate, types.ModeEdit:
		return "Tab: next field  Ctrl+S: save  Esc: cancel"
	case types.ModeConfirm:
		return "y: yes  n: no"
	case types.ModeHelp:
		return "j/k: scroll  Esc: close"
	default:
		return ""
	}
}

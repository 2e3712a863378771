package ui

import (
	"fmt"

	"github.com/ytget/bing-wallpaper/internal/model"
)

// StatusText renders the tray status line for state
func StatusText(loc *Localization, state model.UpdateState) string {
	switch {
	case state.Phase.IsBusy():
		return loc.GetText(KeyStatusUpdating)
	case !state.IsNetworkAvailable:
		return loc.GetText(KeyStatusWaitingNetwork)
	case state.Phase.IsWaiting() && state.NextUpdateTime != nil:
		return fmt.Sprintf(loc.GetText(KeyStatusNextUpdate), state.NextUpdateTime.Local().Format(StatusTimeLayout))
	default:
		return loc.GetText(KeyStatusIdle)
	}
}

// TruncateLabel shortens s to at most limit runes, ending with an ellipsis
func TruncateLabel(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + Ellipsis
}

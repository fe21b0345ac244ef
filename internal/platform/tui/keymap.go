package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
)

// binding is one key of the local keyboard layout.
type binding struct {
	player match.PlayerID
	action core.Action
}

// KeyMapper translates Bubble Tea key messages to player actions.
// Player1 uses the arrows and the right-hand keys, player2 the left-hand
// block, so two people can share one keyboard.
type KeyMapper struct {
	keys map[string]binding
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: map[string]binding{
		// Player1
		"up":    {match.Player1, core.ActionUp},
		"down":  {match.Player1, core.ActionDown},
		"left":  {match.Player1, core.ActionLeft},
		"right": {match.Player1, core.ActionRight},
		" ":     {match.Player1, core.ActionJump},
		"m":     {match.Player1, core.ActionAttack},
		"enter": {match.Player1, core.ActionConfirm},

		// Player2
		"w": {match.Player2, core.ActionUp},
		"s": {match.Player2, core.ActionDown},
		"a": {match.Player2, core.ActionLeft},
		"d": {match.Player2, core.ActionRight},
		"e": {match.Player2, core.ActionJump},
		"f": {match.Player2, core.ActionAttack},
		"r": {match.Player2, core.ActionConfirm},

		"esc": {match.Player1, core.ActionBack},
		"b":   {match.Player1, core.ActionBack},
	}}
}

// MapKey translates a key message to a player action.
// Returns ActionNone for unbound keys and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (player match.PlayerID, action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return match.Player1, core.ActionQuit, true
	}
	b, ok := km.keys[msg.String()]
	if !ok {
		return match.NoPlayer, core.ActionNone, false
	}
	return b.player, b.action, false
}

// MapKeyToMultiFrame records a key message in the frame of the player it
// belongs to. Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	player, action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && action != core.ActionQuit {
		frame.Press(player, action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

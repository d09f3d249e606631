package config

import (
	"errors"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Actions are the viewer commands that can be bound to keys.
var Actions = []string{"quit", "next", "prev", "first", "last", "help"}

// Keybinding represents a single key combination.
type Keybinding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// DefaultKeymap provides builtin viewer bindings.
func DefaultKeymap() map[string]Keybinding {
	return map[string]Keybinding{
		"quit":  mustParse("Ctrl+Q"),
		"next":  mustParse("Right"),
		"prev":  mustParse("Left"),
		"first": mustParse("Home"),
		"last":  mustParse("End"),
		"help":  mustParse("F1"),
	}
}

var namedKeys = map[string]tcell.Key{
	"left":  tcell.KeyLeft,
	"right": tcell.KeyRight,
	"up":    tcell.KeyUp,
	"down":  tcell.KeyDown,
	"home":  tcell.KeyHome,
	"end":   tcell.KeyEnd,
	"pgup":  tcell.KeyPgUp,
	"pgdn":  tcell.KeyPgDn,
	"esc":   tcell.KeyEscape,
	"enter": tcell.KeyEnter,
	"tab":   tcell.KeyTab,
	"f1":    tcell.KeyF1,
}

// ParseKeybinding converts a textual key description into a Keybinding.
// Supported forms are "Ctrl+<letter>", a named key such as "Left" or "F1",
// and a single printable character such as "q".
func ParseKeybinding(s string) (Keybinding, error) {
	s = strings.TrimSpace(s)
	if k, ok := namedKeys[strings.ToLower(s)]; ok {
		return Keybinding{Key: k}, nil
	}
	if r := []rune(s); len(r) == 1 && r[0] > ' ' {
		return Keybinding{Key: tcell.KeyRune, Rune: r[0]}, nil
	}
	parts := strings.Split(s, "+")
	if len(parts) != 2 {
		return Keybinding{}, errors.New("invalid keybinding: " + s)
	}
	if !strings.EqualFold(parts[0], "ctrl") {
		return Keybinding{}, errors.New("invalid modifier in keybinding: " + s)
	}
	r := []rune(strings.ToLower(parts[1]))
	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
		return Keybinding{}, errors.New("invalid key in keybinding: " + s)
	}
	return Keybinding{Key: tcell.KeyRune, Rune: r[0], Mod: tcell.ModCtrl}, nil
}

func mustParse(s string) Keybinding {
	kb, _ := ParseKeybinding(s)
	return kb
}

var ctrlMap = map[rune]tcell.Key{
	'a': tcell.KeyCtrlA,
	'b': tcell.KeyCtrlB,
	'c': tcell.KeyCtrlC,
	'd': tcell.KeyCtrlD,
	'e': tcell.KeyCtrlE,
	'f': tcell.KeyCtrlF,
	'g': tcell.KeyCtrlG,
	'h': tcell.KeyCtrlH,
	'i': tcell.KeyCtrlI,
	'j': tcell.KeyCtrlJ,
	'k': tcell.KeyCtrlK,
	'l': tcell.KeyCtrlL,
	'm': tcell.KeyCtrlM,
	'n': tcell.KeyCtrlN,
	'o': tcell.KeyCtrlO,
	'p': tcell.KeyCtrlP,
	'q': tcell.KeyCtrlQ,
	'r': tcell.KeyCtrlR,
	's': tcell.KeyCtrlS,
	't': tcell.KeyCtrlT,
	'u': tcell.KeyCtrlU,
	'v': tcell.KeyCtrlV,
	'w': tcell.KeyCtrlW,
	'x': tcell.KeyCtrlX,
	'y': tcell.KeyCtrlY,
	'z': tcell.KeyCtrlZ,
}

// Matches returns true if the binding matches the provided event.
func (k Keybinding) Matches(ev *tcell.EventKey) bool {
	if k.Key != tcell.KeyRune {
		return ev.Key() == k.Key && ev.Modifiers() == k.Mod
	}
	if ev.Key() == tcell.KeyRune && ev.Rune() == k.Rune && ev.Modifiers() == k.Mod {
		return true
	}
	// terminals report Ctrl+letter as a control key code
	if k.Mod == tcell.ModCtrl {
		if ctrlKey, ok := ctrlMap[k.Rune]; ok && ev.Key() == ctrlKey {
			return true
		}
	}
	return false
}

package app

import (
	"fmt"
	"strings"

	"example.com/lineedit/pkg/buffer"
	"example.com/lineedit/pkg/config"
	"example.com/lineedit/pkg/edit"
	"example.com/lineedit/pkg/history"
	"github.com/gdamore/tcell/v2"
)

var (
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	cursorStyle = tcell.StyleDefault.Reverse(true)
	gutterStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Viewer browses the buffer states recorded in a Journal, one step at a time.
type Viewer struct {
	Screen   tcell.Screen
	Journal  *history.Journal
	Keymap   map[string]config.Keybinding
	ShowHelp bool
	TopLine  int // first buffer index shown
}

// Run draws the current step and handles key events until quit is pressed
// or the screen is finalized.
func (v *Viewer) Run() error {
	if v.Keymap == nil {
		v.Keymap = config.DefaultKeymap()
	}
	v.Draw()
	for {
		switch ev := v.Screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.Screen.Sync()
			v.Draw()
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return nil
			}
			v.Draw()
		}
	}
}

func (v *Viewer) bound(action string, ev *tcell.EventKey) bool {
	kb, ok := v.Keymap[action]
	return ok && kb.Matches(ev)
}

// HandleKey applies a key event and reports whether the viewer should quit.
// Any key dismisses the help screen.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	if v.ShowHelp {
		v.ShowHelp = false
		return false
	}
	switch {
	case v.bound("quit", ev):
		return true
	case v.bound("next", ev):
		_ = v.Journal.Forward()
	case v.bound("prev", ev):
		_ = v.Journal.Back()
	case v.bound("first", ev):
		v.Journal.First()
	case v.bound("last", ev):
		v.Journal.Last()
	case v.bound("help", ev):
		v.ShowHelp = true
	}
	return false
}

// Draw renders the current journal entry and the status bar.
func (v *Viewer) Draw() {
	s := v.Screen
	s.Clear()
	width, height := s.Size()
	if v.ShowHelp {
		drawHelp(s, v.Keymap)
		return
	}
	entry, ok := v.Journal.Current()
	if !ok {
		drawCentered(s, "No steps recorded", tcell.StyleDefault)
		drawStatus(s, width, height, " Press "+keyName(v.Keymap["quit"])+" to exit")
		s.Show()
		return
	}
	ctx := entry.Context
	rows := height - 1
	v.scrollTo(ctx.Cursor, rows)
	gutter := len(fmt.Sprint(ctx.Len()))
	for row := 0; row < rows && v.TopLine+row < ctx.Len(); row++ {
		i := v.TopLine + row
		n := edit.ToLine(i)
		style := tcell.StyleDefault
		if n == ctx.Cursor {
			style = cursorStyle
		}
		x := drawString(s, 0, row, width, fmt.Sprintf("%*d ", gutter, n), gutterStyle)
		drawString(s, x, row, width, expandTabs(buffer.TrimEnd(ctx.Lines[i])), style)
	}
	label := entry.Label
	if label == "" {
		label = "initial"
	}
	status := fmt.Sprintf(" step %d/%d  line %d/%d  %s", v.Journal.Position(), v.Journal.Len()-1, ctx.Cursor, ctx.Len(), label)
	drawStatus(s, width, height, status)
	s.Show()
}

// scrollTo keeps the cursor line inside a window of rows lines.
func (v *Viewer) scrollTo(cursor, rows int) {
	idx := edit.ToIndex(cursor)
	if idx < v.TopLine {
		v.TopLine = idx
	}
	if rows > 0 && idx >= v.TopLine+rows {
		v.TopLine = idx - rows + 1
	}
	if v.TopLine < 0 {
		v.TopLine = 0
	}
}

func drawHelp(s tcell.Screen, keymap map[string]config.Keybinding) {
	width, height := s.Size()
	lines := []string{
		"Help:",
		"- " + keyName(keymap["next"]) + ": Next step",
		"- " + keyName(keymap["prev"]) + ": Previous step",
		"- " + keyName(keymap["first"]) + ": Initial buffer",
		"- " + keyName(keymap["last"]) + ": Final buffer",
		"- " + keyName(keymap["help"]) + ": Show this help",
		"- " + keyName(keymap["quit"]) + ": Quit",
	}
	y := (height - len(lines)) / 2
	for i, line := range lines {
		x := (width - len(line)) / 2
		drawString(s, max(x, 0), y+i, width, line, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
	s.Show()
}

func drawCentered(s tcell.Screen, msg string, style tcell.Style) {
	width, height := s.Size()
	drawString(s, max((width-len(msg))/2, 0), height/2, width, msg, style)
}

func drawStatus(s tcell.Screen, width, height int, text string) {
	if pad := width - len([]rune(text)); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	drawString(s, 0, height-1, width, text, statusStyle)
}

// drawString draws text from column x and returns the column after it.
func drawString(s tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	for _, r := range text {
		if x >= width {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func expandTabs(s string) string { return strings.ReplaceAll(s, "\t", "    ") }

// keyName renders a binding the way it is written in the config file.
func keyName(kb config.Keybinding) string {
	if kb.Key == tcell.KeyRune {
		if kb.Mod&tcell.ModCtrl != 0 {
			return "Ctrl+" + strings.ToUpper(string(kb.Rune))
		}
		return string(kb.Rune)
	}
	return tcell.KeyNames[kb.Key]
}

package app

import (
	"strings"
	"testing"

	"example.com/lineedit/pkg/config"
	"example.com/lineedit/pkg/edit"
	"example.com/lineedit/pkg/history"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

func newSimScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

func screenLine(s tcell.SimulationScreen, y int) string {
	width, _ := s.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func sampleJournal(t *testing.T) *history.Journal {
	t.Helper()
	j := history.New()
	p := edit.Pipeline{OnStep: j.Observe}
	_, err := p.Execute(edit.Append("one\ntwo\nthree\n"), edit.GoTo(2), edit.Delete())
	require.NoError(t, err)
	return j
}

func TestViewer_HandleKey(t *testing.T) {
	j := sampleJournal(t)
	v := &Viewer{Journal: j, Keymap: config.DefaultKeymap()}
	require.Equal(t, 3, j.Position())

	require.False(t, v.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)))
	require.Equal(t, 2, j.Position())
	v.HandleKey(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone))
	require.Equal(t, 0, j.Position())
	v.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	require.Equal(t, 0, j.Position())
	v.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	require.Equal(t, 1, j.Position())
	v.HandleKey(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	require.Equal(t, 3, j.Position())

	require.True(t, v.HandleKey(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModNone)))
	require.True(t, v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModCtrl)))
}

func TestViewer_HelpDismissedByAnyKey(t *testing.T) {
	v := &Viewer{Journal: sampleJournal(t), Keymap: config.DefaultKeymap()}
	v.HandleKey(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone))
	require.True(t, v.ShowHelp)
	// quit only dismisses help
	require.False(t, v.HandleKey(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModNone)))
	require.False(t, v.ShowHelp)
}

func TestViewer_RemapNext(t *testing.T) {
	kb, err := config.ParseKeybinding("n")
	require.NoError(t, err)
	j := sampleJournal(t)
	j.First()
	v := &Viewer{Journal: j, Keymap: config.DefaultKeymap()}
	v.Keymap["next"] = kb

	v.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	require.Equal(t, 0, j.Position())
	v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	require.Equal(t, 1, j.Position())
}

func TestViewer_Draw(t *testing.T) {
	s := newSimScreen(t, 40, 6)
	j := sampleJournal(t)
	v := &Viewer{Screen: s, Journal: j, Keymap: config.DefaultKeymap()}

	require.NoError(t, j.Back()) // after "goto 2"
	v.Draw()
	require.Equal(t, "1 one", screenLine(s, 0))
	require.Equal(t, "2 two", screenLine(s, 1))
	require.Equal(t, "3 three", screenLine(s, 2))

	_, _, style, _ := s.GetContent(2, 1)
	require.Equal(t, cursorStyle, style)
	_, _, style, _ = s.GetContent(2, 0)
	require.Equal(t, tcell.StyleDefault, style)

	status := screenLine(s, 5)
	require.Contains(t, status, "step 2/3")
	require.Contains(t, status, "line 2/3")
}

func TestViewer_DrawInitialAndEmpty(t *testing.T) {
	s := newSimScreen(t, 40, 4)
	j := sampleJournal(t)
	j.First()
	v := &Viewer{Screen: s, Journal: j, Keymap: config.DefaultKeymap()}
	v.Draw()
	require.Contains(t, screenLine(s, 3), "initial")

	v = &Viewer{Screen: s, Journal: history.New(), Keymap: config.DefaultKeymap()}
	v.Draw()
	require.Contains(t, screenLine(s, 2), "No steps recorded")
	require.Contains(t, screenLine(s, 3), "Ctrl+Q")
}

func TestViewer_ScrollsToCursor(t *testing.T) {
	s := newSimScreen(t, 20, 3)
	j := history.New()
	j.Record("", edit.Context{Cursor: 5, Lines: []string{"a\n", "b\n", "c\n", "d\n", "e\n"}})
	v := &Viewer{Screen: s, Journal: j, Keymap: config.DefaultKeymap()}
	v.Draw()
	require.Equal(t, 3, v.TopLine)
	require.Equal(t, "4 d", screenLine(s, 0))
	require.Equal(t, "5 e", screenLine(s, 1))
}

func TestViewer_Run(t *testing.T) {
	s := newSimScreen(t, 40, 6)
	j := sampleJournal(t)
	j.First()
	v := &Viewer{Screen: s, Journal: j}

	s.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	require.NoError(t, v.Run())
	require.Equal(t, 2, j.Position())
	require.Contains(t, screenLine(s, 5), "step 2/3")
}

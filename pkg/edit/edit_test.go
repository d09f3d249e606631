package edit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sixLines() []string {
	return []string{
		"first line\n",
		"second line\n",
		"third line\n",
		"fourth line\n",
		"fifth line\n",
		"sixth line\n",
	}
}

func sixLineContext(cursor int) Context {
	return Context{Cursor: cursor, Lines: sixLines()}
}

func TestLineConversions(t *testing.T) {
	require.Equal(t, 0, ToLine(-1))
	require.Equal(t, 1, ToLine(0))
	require.Equal(t, 2, ToLine(1))
	require.Equal(t, -1, ToIndex(0))
	require.Equal(t, 0, ToIndex(1))
	require.Equal(t, 1, ToIndex(2))
}

func TestRun_NoCommands(t *testing.T) {
	out, err := Run()
	require.NoError(t, err)
	require.Equal(t, "", out)
}

func TestRun_InsertsOnPenultimateLineByDefault(t *testing.T) {
	out, err := Run(
		Append("first line\nsecond line\nthird line\nfifth line\n"),
		Insert("fourth line"),
	)
	require.NoError(t, err)
	require.Equal(t, "first line\nsecond line\nthird line\nfourth line\nfifth line\n", out)
}

func TestRun_AppendsOnLastLineByDefault(t *testing.T) {
	out, err := Run(Append("a line"), Append("another line"))
	require.NoError(t, err)
	require.Equal(t, "a line\nanother line\n", out)
}

func TestRun_DeletesLastLineByDefault(t *testing.T) {
	out, err := Run(Append("a line\nanother line\n"), Delete())
	require.NoError(t, err)
	require.Equal(t, "a line\n", out)
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	var applied []int
	p := Pipeline{OnStep: func(s Step) { applied = append(applied, s.Index) }}
	ctx, err := p.Execute(Append("one"), GoTo(5), Append("never"))
	require.Error(t, err)
	require.True(t, IsInvalidOperation(err))
	require.Contains(t, err.Error(), "command 2")
	require.Equal(t, []int{0, 1}, applied)
	// the successful append is not rolled back
	require.Equal(t, []string{"one\n"}, ctx.Lines)

	out, err := p.Run(Insert("x"))
	require.Error(t, err)
	require.Equal(t, "", out)
}

func TestPipeline_Seed(t *testing.T) {
	p := Pipeline{Seed: "alpha\nbeta\n"}
	ctx, err := p.Execute(GoToFirstLine(), Substitute("alpha", "ALPHA"))
	require.NoError(t, err)
	require.Equal(t, Context{Cursor: 1, Lines: []string{"ALPHA\n", "beta\n"}}, ctx)
}

func TestCommandFunc(t *testing.T) {
	upper := CommandFunc(func(ctx Context) (Context, error) {
		ctx.Cursor = 1
		return ctx, nil
	})
	out, err := Run(Append("a\nb"), upper, Delete())
	require.NoError(t, err)
	require.Equal(t, "b\n", out)
}

func TestNewContext(t *testing.T) {
	lines := []string{"a\n", "b\n"}
	ctx := NewContext(lines...)
	require.Equal(t, 2, ctx.Cursor)
	ctx.Lines[0] = "changed\n"
	require.Equal(t, "a\n", lines[0])

	line, ok := ctx.CurrentLine()
	require.True(t, ok)
	require.Equal(t, "b\n", line)
	_, ok = Context{}.CurrentLine()
	require.False(t, ok)
}

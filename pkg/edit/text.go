package edit

import (
	"fmt"
	"slices"

	"example.com/lineedit/pkg/buffer"
)

// InsertCommand places text before the cursor line.
type InsertCommand struct {
	text string
}

// Insert returns a command splicing the lines of text immediately before the
// cursor line. The cursor keeps pointing at the line it was on, which now
// follows the inserted block. Inserting into an empty buffer fails.
func Insert(text string) InsertCommand { return InsertCommand{text: text} }

func (c InsertCommand) Apply(ctx Context) (Context, error) {
	if ctx.Empty() {
		return ctx, invalid("cannot insert into an empty buffer")
	}
	if !ctx.Contains(ctx.Cursor) {
		return ctx, staleCursor(ctx)
	}
	lines := buffer.SplitLines(c.text)
	pivot := ToIndex(ctx.Cursor)
	ctx.Lines = slices.Concat(ctx.Lines[:pivot], lines, ctx.Lines[pivot:])
	ctx.Cursor = pivot + len(lines) + 1
	return ctx, nil
}

func (c InsertCommand) String() string { return fmt.Sprintf("insert %q", c.text) }

// AppendCommand places text after the cursor line.
type AppendCommand struct {
	text string
}

// Append returns a command splicing the lines of text immediately after the
// cursor line and leaving the cursor on the last appended line. It works on
// an empty buffer.
func Append(text string) AppendCommand { return AppendCommand{text: text} }

func (c AppendCommand) Apply(ctx Context) (Context, error) {
	lines := buffer.SplitLines(c.text)
	pivot := min(max(ctx.Cursor, 0), len(ctx.Lines))
	ctx.Lines = slices.Concat(ctx.Lines[:pivot], lines, ctx.Lines[pivot:])
	ctx.Cursor = pivot + len(lines)
	return ctx, nil
}

func (c AppendCommand) String() string { return fmt.Sprintf("append %q", c.text) }

// ReadStringCommand ingests external text into the buffer.
type ReadStringCommand struct {
	text string
}

// ReadString returns a command that splits text on line terminators, keeping
// them, adds the lines at the end of the buffer and moves the cursor to the
// last line read. Text without lines leaves the Context untouched.
func ReadString(text string) ReadStringCommand { return ReadStringCommand{text: text} }

func (c ReadStringCommand) Apply(ctx Context) (Context, error) {
	lines := buffer.SplitKeepEnds(c.text)
	if len(lines) == 0 {
		return ctx, nil
	}
	ctx.Lines = slices.Concat(ctx.Lines, lines)
	ctx.Cursor = len(ctx.Lines)
	return ctx, nil
}

func (c ReadStringCommand) String() string { return fmt.Sprintf("read %d bytes", len(c.text)) }

package edit

import (
	"fmt"
	"slices"
)

// Range is an inclusive pair of line endpoints resolved lazily, against the
// Context the owning command is applied to.
type Range struct {
	Begin LineResolver
	End   LineResolver
}

// Resolve evaluates both endpoints and validates the span: begin must not
// come after end, and both must address existing lines.
func (r Range) Resolve(ctx Context) (begin, end int, err error) {
	if begin, err = r.Begin.ResolveLine(ctx); err != nil {
		return 0, 0, err
	}
	if end, err = r.End.ResolveLine(ctx); err != nil {
		return 0, 0, err
	}
	if begin > end {
		return 0, 0, invalid("end of range %d comes before its beginning %d", end, begin)
	}
	if !ctx.Contains(begin) || !ctx.Contains(end) {
		return 0, 0, invalid("range %d,%d is not within the buffer of %d lines", begin, end, len(ctx.Lines))
	}
	return begin, end, nil
}

func (r Range) String() string {
	return fmt.Sprintf("%s,%s", describeResolver(r.Begin), describeResolver(r.End))
}

func describeResolver(r LineResolver) string {
	if s, ok := r.(fmt.Stringer); ok {
		return "(" + s.String() + ")"
	}
	return fmt.Sprintf("%T", r)
}

// DeleteCommand removes lines from the buffer.
type DeleteCommand struct {
	rng *Range
}

// Delete returns a command removing the cursor line. The cursor value is left
// as it was, so it may point past the end of the shrunken buffer.
func Delete() DeleteCommand { return DeleteCommand{} }

// FromRange returns a copy of c removing the inclusive span [begin, end]
// instead of the cursor line. The cursor moves to begin.
func (c DeleteCommand) FromRange(begin, end LineResolver) DeleteCommand {
	c.rng = &Range{Begin: begin, End: end}
	return c
}

func (c DeleteCommand) Apply(ctx Context) (Context, error) {
	if c.rng != nil {
		return c.deleteRange(ctx)
	}
	if ctx.Empty() {
		return ctx, invalid("cannot delete from an empty buffer")
	}
	if !ctx.Contains(ctx.Cursor) {
		return ctx, staleCursor(ctx)
	}
	i := ToIndex(ctx.Cursor)
	ctx.Lines = slices.Concat(ctx.Lines[:i], ctx.Lines[i+1:])
	return ctx, nil
}

func (c DeleteCommand) deleteRange(ctx Context) (Context, error) {
	begin, end, err := c.rng.Resolve(ctx)
	if err != nil {
		return ctx, err
	}
	ctx.Lines = slices.Concat(ctx.Lines[:ToIndex(begin)], ctx.Lines[end:])
	ctx.Cursor = begin
	return ctx, nil
}

func (c DeleteCommand) String() string {
	if c.rng != nil {
		return "delete " + c.rng.String()
	}
	return "delete"
}

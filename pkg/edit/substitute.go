package edit

import (
	"fmt"
	"slices"

	"example.com/lineedit/pkg/search"
)

// SubstituteCommand replaces regular expression matches within lines.
type SubstituteCommand struct {
	pattern *search.Pattern
	err     error
	replace string
	times   int
	rng     *Range
}

// Substitute returns a command replacing the first match of expr in the
// cursor line with replace. replace may refer to groups as $1 or ${name}.
func Substitute(expr, replace string) SubstituteCommand {
	p, err := search.Compile(expr)
	return SubstituteCommand{pattern: p, err: err, replace: replace, times: 1}
}

// Times returns a copy of c replacing up to n matches per line; 0 means
// every match. A negative n makes Apply fail.
func (c SubstituteCommand) Times(n int) SubstituteCommand {
	c.times = n
	return c
}

// EveryTime returns a copy of c replacing every match in a line.
func (c SubstituteCommand) EveryTime() SubstituteCommand { return c.Times(0) }

// FromRange returns a copy of c applied to every line of the inclusive span
// [begin, end], validated like Delete's range. It succeeds when at least one
// line in the span had a replacement, and leaves the cursor on end.
func (c SubstituteCommand) FromRange(begin, end LineResolver) SubstituteCommand {
	c.rng = &Range{Begin: begin, End: end}
	return c
}

func (c SubstituteCommand) Apply(ctx Context) (Context, error) {
	if c.err != nil {
		return ctx, &InvalidOperation{Reason: c.err.Error()}
	}
	if c.times < 0 {
		return ctx, invalid("substitute count %d is negative", c.times)
	}
	begin, end := ctx.Cursor, ctx.Cursor
	if c.rng != nil {
		var err error
		if begin, end, err = c.rng.Resolve(ctx); err != nil {
			return ctx, err
		}
	} else {
		if ctx.Empty() {
			return ctx, invalid("cannot substitute in an empty buffer")
		}
		if !ctx.Contains(ctx.Cursor) {
			return ctx, staleCursor(ctx)
		}
	}

	lines := slices.Clone(ctx.Lines)
	total := 0
	for i := ToIndex(begin); i <= ToIndex(end); i++ {
		out, n, err := c.pattern.Replace(lines[i], c.replace, c.times)
		if err != nil {
			return ctx, invalid("substitute on line %d: %v", ToLine(i), err)
		}
		lines[i] = out
		total += n
	}
	if total == 0 {
		return ctx, invalid("substitute pattern %q not found", c.pattern.String())
	}
	ctx.Lines = lines
	ctx.Cursor = end
	return ctx, nil
}

func (c SubstituteCommand) String() string {
	expr := "<invalid>"
	if c.pattern != nil {
		expr = c.pattern.String()
	}
	s := fmt.Sprintf("substitute %q with %q", expr, c.replace)
	if c.times == 0 {
		s += " every time"
	} else if c.times > 1 {
		s += fmt.Sprintf(" %d times", c.times)
	}
	if c.rng != nil {
		s += " in " + c.rng.String()
	}
	return s
}

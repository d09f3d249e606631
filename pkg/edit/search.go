package edit

import (
	"fmt"

	"example.com/lineedit/pkg/search"
)

// SearchCommand moves the cursor to the next line matching a regular
// expression. The scan is cyclic: it visits every line once, starting next to
// the cursor and checking the cursor line last.
type SearchCommand struct {
	pattern *search.Pattern
	err     error
	reverse bool
}

// Search returns a forward search for expr. An invalid expression makes the
// command fail when applied or resolved.
func Search(expr string) SearchCommand {
	p, err := search.Compile(expr)
	return SearchCommand{pattern: p, err: err}
}

// InReverse returns a copy of c that walks backward from the line before the
// cursor.
func (c SearchCommand) InReverse() SearchCommand {
	c.reverse = true
	return c
}

// ResolveLine returns the line the search would move the cursor to.
func (c SearchCommand) ResolveLine(ctx Context) (int, error) {
	if c.err != nil {
		return 0, &InvalidOperation{Reason: c.err.Error()}
	}
	for _, idx := range search.Order(ctx.Cursor, len(ctx.Lines), c.reverse) {
		if c.pattern.MatchString(ctx.Lines[idx]) {
			return ToLine(idx), nil
		}
	}
	return 0, invalid("pattern %q not found", c.pattern.String())
}

func (c SearchCommand) Apply(ctx Context) (Context, error) {
	line, err := c.ResolveLine(ctx)
	if err != nil {
		return ctx, err
	}
	ctx.Cursor = line
	return ctx, nil
}

func (c SearchCommand) String() string {
	dir := "search"
	if c.reverse {
		dir = "reverse search"
	}
	if c.pattern == nil {
		return dir + " <invalid>"
	}
	return fmt.Sprintf("%s %q", dir, c.pattern.String())
}

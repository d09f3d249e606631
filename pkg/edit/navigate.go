package edit

import "fmt"

type navKind int

const (
	navFirst navKind = iota
	navLast
	navLine
	navMove
)

// Navigate moves the cursor. It is also a LineResolver reporting the line the
// cursor would move to.
type Navigate struct {
	kind navKind
	n    int
}

// GoToFirstLine moves the cursor to line 1.
func GoToFirstLine() Navigate { return Navigate{kind: navFirst} }

// GoToLastLine moves the cursor to the last line (NoLine on an empty buffer).
func GoToLastLine() Navigate { return Navigate{kind: navLast} }

// GoTo moves the cursor to line, which must exist.
func GoTo(line int) Navigate { return Navigate{kind: navLine, n: line} }

// Move moves the cursor by offset lines; the target must exist.
func Move(offset int) Navigate { return Navigate{kind: navMove, n: offset} }

// ResolveLine returns the target line for ctx.
func (n Navigate) ResolveLine(ctx Context) (int, error) {
	var line int
	switch n.kind {
	case navFirst:
		return 1, nil
	case navLast:
		return len(ctx.Lines), nil
	case navLine:
		line = n.n
	case navMove:
		line = ctx.Cursor + n.n
	}
	if !ctx.Contains(line) {
		return 0, lineNotFound(line)
	}
	return line, nil
}

// Apply moves the cursor to the resolved line.
func (n Navigate) Apply(ctx Context) (Context, error) {
	line, err := n.ResolveLine(ctx)
	if err != nil {
		return ctx, err
	}
	ctx.Cursor = line
	return ctx, nil
}

func (n Navigate) String() string {
	switch n.kind {
	case navFirst:
		return "go to first line"
	case navLast:
		return "go to last line"
	case navLine:
		return fmt.Sprintf("go to %d", n.n)
	default:
		return fmt.Sprintf("move %+d", n.n)
	}
}

package edit

import (
	"errors"
	"fmt"
	"slices"

	"example.com/lineedit/pkg/buffer"
)

// NoLine is the cursor value of an empty buffer. It never addresses a line.
const NoLine = 0

// Context is the state commands operate on.
type Context struct {
	Cursor int // 1-based line number; NoLine when Lines is empty
	Lines  []string
}

// NewContext returns a Context holding lines with the cursor on the last one.
func NewContext(lines ...string) Context {
	return Context{Cursor: len(lines), Lines: slices.Clone(lines)}
}

// Len returns the number of lines in the buffer.
func (c Context) Len() int { return len(c.Lines) }

// Empty reports whether the buffer has no lines.
func (c Context) Empty() bool { return len(c.Lines) == 0 }

// Contains reports whether line addresses an existing line.
func (c Context) Contains(line int) bool {
	return line >= 1 && line <= len(c.Lines)
}

// CurrentLine returns the text of the line under the cursor.
func (c Context) CurrentLine() (string, bool) {
	if !c.Contains(c.Cursor) {
		return "", false
	}
	return c.Lines[ToIndex(c.Cursor)], true
}

// Clone returns a copy that shares no storage with c.
func (c Context) Clone() Context {
	return Context{Cursor: c.Cursor, Lines: slices.Clone(c.Lines)}
}

// String serializes the buffer.
func (c Context) String() string { return buffer.Join(c.Lines) }

// ToLine converts a 0-based line index into a 1-based line number.
func ToLine(index int) int { return index + 1 }

// ToIndex converts a 1-based line number into a 0-based line index.
func ToIndex(line int) int { return line - 1 }

// InvalidOperation is returned when a command cannot apply to the current
// buffer and cursor.
type InvalidOperation struct {
	Reason string
}

func (e *InvalidOperation) Error() string { return e.Reason }

// IsInvalidOperation reports whether err is or wraps an *InvalidOperation.
func IsInvalidOperation(err error) bool {
	var op *InvalidOperation
	return errors.As(err, &op)
}

func invalid(format string, args ...any) error {
	return &InvalidOperation{Reason: fmt.Sprintf(format, args...)}
}

func lineNotFound(line int) error {
	return invalid("the requested line %d does not exist", line)
}

// staleCursor is returned when the cursor was left past the end of a buffer
// that shrank (for example after deleting its last line).
func staleCursor(ctx Context) error {
	return invalid("the current line %d does not exist in a buffer of %d lines", ctx.Cursor, len(ctx.Lines))
}

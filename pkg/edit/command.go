package edit

import (
	"fmt"

	"example.com/lineedit/pkg/buffer"
)

// Command transforms a Context. The Context handed to Apply is owned by the
// command for the duration of the call.
type Command interface {
	Apply(ctx Context) (Context, error)
}

// CommandFunc adapts an ordinary function to the Command interface.
type CommandFunc func(ctx Context) (Context, error)

// Apply calls f(ctx).
func (f CommandFunc) Apply(ctx Context) (Context, error) { return f(ctx) }

// LineResolver computes a line number from a Context without modifying it.
type LineResolver interface {
	ResolveLine(ctx Context) (int, error)
}

// Line is a literal line number.
type Line int

// ResolveLine returns l unchanged; bounds are checked by the consumer.
func (l Line) ResolveLine(Context) (int, error) { return int(l), nil }

func (l Line) String() string { return fmt.Sprintf("%d", int(l)) }

// Step describes one command applied by a Pipeline.
type Step struct {
	Index   int // 0-based position in the command list
	Command Command
	Before  Context
	After   Context // equals Before when Err is set
	Err     error
}

// Pipeline applies commands in order to a single Context.
type Pipeline struct {
	// Seed is read into the buffer before the first command, as ReadString does.
	Seed string
	// OnStep, if set, is called after every command, including a failing one.
	OnStep func(Step)
}

// Execute applies commands in order and returns the final Context. It stops
// at the first failure; the error wraps the command's *InvalidOperation.
func (p Pipeline) Execute(commands ...Command) (Context, error) {
	ctx := Context{Cursor: NoLine}
	if lines := buffer.SplitKeepEnds(p.Seed); len(lines) > 0 {
		ctx = Context{Cursor: len(lines), Lines: lines}
	}
	for i, cmd := range commands {
		next, err := cmd.Apply(ctx)
		if err != nil {
			if p.OnStep != nil {
				p.OnStep(Step{Index: i, Command: cmd, Before: ctx, After: ctx, Err: err})
			}
			return ctx, fmt.Errorf("command %d (%s): %w", i+1, Describe(cmd), err)
		}
		if p.OnStep != nil {
			p.OnStep(Step{Index: i, Command: cmd, Before: ctx, After: next})
		}
		ctx = next
	}
	return ctx, nil
}

// Run executes commands and serializes the resulting buffer.
func (p Pipeline) Run(commands ...Command) (string, error) {
	ctx, err := p.Execute(commands...)
	if err != nil {
		return "", err
	}
	return ctx.String(), nil
}

// Run applies commands to an empty buffer and returns its final text.
// It returns the empty string when no commands are given.
func Run(commands ...Command) (string, error) {
	return Pipeline{}.Run(commands...)
}

// Describe returns a short human readable name for cmd.
func Describe(cmd Command) string {
	if s, ok := cmd.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", cmd)
}

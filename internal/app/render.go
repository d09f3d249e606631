package app

import (
	"fmt"
	"io"
	"strconv"

	"example.com/lineedit/pkg/buffer"
	"example.com/lineedit/pkg/edit"
	"github.com/fatih/color"
)

// Render writes ctx to w. Plain output is the buffer text exactly; with
// Output.Number each line is prefixed by its number and the cursor line is
// marked with '>'.
func (r *Runner) Render(w io.Writer, ctx edit.Context) error {
	if !r.Config.Output.Number {
		_, err := io.WriteString(w, ctx.String())
		return err
	}
	return renderNumbered(w, ctx, r.Config.Output.Color)
}

func renderNumbered(w io.Writer, ctx edit.Context, useColor bool) error {
	cur := color.New(color.FgHiYellow, color.Bold)
	if useColor {
		cur.EnableColor()
	} else {
		cur.DisableColor()
	}
	width := len(strconv.Itoa(ctx.Len()))
	for i, line := range ctx.Lines {
		n := edit.ToLine(i)
		mark := " "
		if n == ctx.Cursor {
			mark = ">"
		}
		text := fmt.Sprintf("%*d%s %s", width, n, mark, buffer.TrimEnd(line))
		var err error
		if n == ctx.Cursor {
			_, err = cur.Fprintln(w, text)
		} else {
			_, err = fmt.Fprintln(w, text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

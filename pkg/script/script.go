// Package script parses a line-oriented, ed-like notation into edit commands.
//
// Each non-blank line of a script is one command. Lines starting with '#' are
// comments.
//
//	a TEXT            append TEXT after the current line
//	i TEXT            insert TEXT before the current line
//	r TEXT            read TEXT at the end of the buffer
//	[range]d          delete the current line, or the range
//	[range]s/RE/REPL/[g|N]
//	                  substitute the first (every with g, up to N) match
//	ADDR              move the cursor to ADDR
//
// TEXT understands the escapes \n, \t and \\. A range is ADDR or ADDR,ADDR
// where ADDR is one of
//
//	N       line N
//	^       the first line
//	$       the last line
//	.       the current line
//	+N, -N  N lines after or before the current line
//	/RE/    the next line matching RE, wrapping around
//	?RE?    the previous line matching RE, wrapping around
//
// Any character may delimit the parts of s. The delimiter is escaped with a
// backslash inside RE and REPL.
package script

import (
	"fmt"
	"strconv"
	"strings"

	"example.com/lineedit/pkg/buffer"
	"example.com/lineedit/pkg/edit"
)

// SyntaxError reports a malformed script line.
type SyntaxError struct {
	Line int // 1-based line of the script
	Msg  string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

// Parse parses every command of src.
func Parse(src string) ([]edit.Command, error) {
	var cmds []edit.Command
	for i, raw := range buffer.SplitKeepEnds(src) {
		line := buffer.TrimEnd(raw)
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		cmd, err := ParseLine(line)
		if err != nil {
			return nil, &SyntaxError{Line: i + 1, Msg: err.Error()}
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// ParseLine parses a single command.
func ParseLine(line string) (edit.Command, error) {
	line = strings.TrimLeft(line, " \t")
	if cmd, ok := parseText(line); ok {
		return cmd, nil
	}
	p := &parser{s: line}
	return p.command()
}

func parseText(line string) (edit.Command, bool) {
	if line == "" {
		return nil, false
	}
	name, rest := line[0], line[1:]
	if rest != "" && rest[0] != ' ' {
		return nil, false
	}
	text := unescape(strings.TrimPrefix(rest, " "))
	switch name {
	case 'a':
		return edit.Append(text), true
	case 'i':
		return edit.Insert(text), true
	case 'r':
		return edit.ReadString(text), true
	}
	return nil, false
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case '\\':
			sb.WriteByte('\\')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// address is a parsed ADDR: usable both as a range endpoint and as a
// cursor movement.
type address struct {
	resolver edit.LineResolver
	command  edit.Command
}

type parser struct {
	s   string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.s) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.s[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) command() (edit.Command, error) {
	var begin, end *address
	if p.startsAddress() {
		a, err := p.address()
		if err != nil {
			return nil, err
		}
		begin, end = a, a
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
			p.skipSpace()
			if end, err = p.address(); err != nil {
				return nil, err
			}
		}
	}
	p.skipSpace()
	if p.eof() {
		switch {
		case begin == nil:
			return nil, fmt.Errorf("empty command")
		case begin != end:
			return nil, fmt.Errorf("missing command after range")
		}
		return begin.command, nil
	}

	switch c := p.peek(); c {
	case 'd':
		p.pos++
		if err := p.expectEnd(); err != nil {
			return nil, err
		}
		cmd := edit.Delete()
		if begin != nil {
			cmd = cmd.FromRange(begin.resolver, end.resolver)
		}
		return cmd, nil
	case 's':
		p.pos++
		cmd, err := p.substitute()
		if err != nil {
			return nil, err
		}
		if begin != nil {
			cmd = cmd.FromRange(begin.resolver, end.resolver)
		}
		return cmd, nil
	default:
		return nil, fmt.Errorf("unknown command %q", string(c))
	}
}

func (p *parser) expectEnd() error {
	p.skipSpace()
	if !p.eof() {
		return fmt.Errorf("unexpected %q", p.s[p.pos:])
	}
	return nil
}

func (p *parser) startsAddress() bool {
	c := p.peek()
	return (c >= '0' && c <= '9') || (c != 0 && strings.IndexByte("^$.+-/?", c) >= 0)
}

func (p *parser) address() (*address, error) {
	switch c := p.peek(); {
	case c >= '0' && c <= '9':
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		return &address{resolver: edit.Line(n), command: edit.GoTo(n)}, nil
	case c == '^':
		p.pos++
		nav := edit.GoToFirstLine()
		return &address{resolver: nav, command: nav}, nil
	case c == '$':
		p.pos++
		nav := edit.GoToLastLine()
		return &address{resolver: nav, command: nav}, nil
	case c == '.':
		p.pos++
		nav := edit.Move(0)
		return &address{resolver: nav, command: nav}, nil
	case c == '+' || c == '-':
		p.pos++
		n := 1
		if d := p.peek(); d >= '0' && d <= '9' {
			var err error
			if n, err = p.number(); err != nil {
				return nil, err
			}
		}
		if c == '-' {
			n = -n
		}
		nav := edit.Move(n)
		return &address{resolver: nav, command: nav}, nil
	case c == '/' || c == '?':
		p.pos++
		expr, _ := p.delimited(c)
		if expr == "" {
			return nil, fmt.Errorf("empty search pattern")
		}
		s := edit.Search(expr)
		if c == '?' {
			s = s.InReverse()
		}
		return &address{resolver: s, command: s}, nil
	default:
		return nil, fmt.Errorf("expected an address at %q", p.s[p.pos:])
	}
}

func (p *parser) number() (int, error) {
	start := p.pos
	for !p.eof() && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.s[start:p.pos])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.s[start:p.pos])
	}
	return n, nil
}

// delimited reads up to the next unescaped delim, consuming it. It reports
// whether the delimiter was found before the end of the line.
func (p *parser) delimited(delim byte) (string, bool) {
	var sb strings.Builder
	for !p.eof() {
		c := p.s[p.pos]
		p.pos++
		switch {
		case c == delim:
			return sb.String(), true
		case c == '\\' && p.peek() == delim:
			sb.WriteByte(delim)
			p.pos++
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), false
}

func (p *parser) substitute() (edit.SubstituteCommand, error) {
	if p.eof() {
		return edit.SubstituteCommand{}, fmt.Errorf("missing substitute pattern")
	}
	delim := p.s[p.pos]
	if delim == ' ' || delim == '\\' {
		return edit.SubstituteCommand{}, fmt.Errorf("invalid delimiter %q", string(delim))
	}
	p.pos++
	expr, ok := p.delimited(delim)
	if !ok {
		return edit.SubstituteCommand{}, fmt.Errorf("unterminated substitute pattern")
	}
	if expr == "" {
		return edit.SubstituteCommand{}, fmt.Errorf("empty substitute pattern")
	}
	repl, _ := p.delimited(delim)
	cmd := edit.Substitute(expr, repl)

	flags := strings.TrimSpace(p.s[p.pos:])
	p.pos = len(p.s)
	switch {
	case flags == "":
	case flags == "g":
		cmd = cmd.EveryTime()
	default:
		n, err := strconv.Atoi(flags)
		if err != nil || n < 1 {
			return edit.SubstituteCommand{}, fmt.Errorf("invalid substitute flags %q", flags)
		}
		cmd = cmd.Times(n)
	}
	return cmd, nil
}

package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// Range represents a rune-offset half-open interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Pattern is a compiled regular expression used for line searches and
// substitutions. Matching is unanchored, and "$" also matches right before a
// final line terminator, so "^$" finds empty lines that still carry "\n".
type Pattern struct {
	expr string
	re   *regexp2.Regexp
}

// Compile parses expr into a Pattern.
func Compile(expr string) (*Pattern, error) {
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return &Pattern{expr: expr, re: re}, nil
}

// String returns the source expression.
func (p *Pattern) String() string { return p.expr }

// MatchString reports whether the pattern matches anywhere in s.
func (p *Pattern) MatchString(s string) bool {
	// err is only set on a match timeout, and Compile sets none.
	ok, err := p.re.MatchString(s)
	return err == nil && ok
}

// FindAll returns the non-overlapping matches in text, scanning forward.
// When limit > 0 at most limit matches are returned.
func (p *Pattern) FindAll(text string, limit int) []Range {
	var res []Range
	m, err := p.re.FindStringMatch(text)
	for err == nil && m != nil {
		res = append(res, Range{Start: m.Index, End: m.Index + m.Length})
		if limit > 0 && len(res) == limit {
			break
		}
		m, err = p.re.FindNextMatch(m)
	}
	return res
}

// Replace substitutes repl for up to limit matches in text (all of them when
// limit <= 0) and reports how many replacements were made. repl may refer to
// groups as $1, ${1} or ${name}; $& or $0 is the whole match and $$ a literal
// dollar. Bytes outside the matches are copied unchanged, so text that is not
// valid UTF-8 keeps its bytes.
func (p *Pattern) Replace(text, repl string, limit int) (string, int, error) {
	offs := runeOffsets(text)
	var sb strings.Builder
	last, n := 0, 0
	m, err := p.re.FindStringMatch(text)
	for err == nil && m != nil {
		sb.WriteString(text[last:offs[m.Index]])
		expand(&sb, repl, text, offs, m)
		last = offs[m.Index+m.Length]
		n++
		if limit > 0 && n == limit {
			break
		}
		m, err = p.re.FindNextMatch(m)
	}
	if err != nil {
		return text, 0, err
	}
	if n == 0 {
		return text, 0, nil
	}
	sb.WriteString(text[last:])
	return sb.String(), n, nil
}

// runeOffsets maps the rune indices regexp2 reports to byte offsets in s.
// An invalid byte counts as one rune, as in a []rune conversion. The final
// element is len(s).
func runeOffsets(s string) []int {
	offs := make([]int, 0, len(s)+1)
	for i := range s {
		offs = append(offs, i)
	}
	return append(offs, len(s))
}

func expand(sb *strings.Builder, repl, text string, offs []int, m *regexp2.Match) {
	group := func(g *regexp2.Group) {
		sb.WriteString(text[offs[g.Index]:offs[g.Index+g.Length]])
	}
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		if c != '$' || i+1 == len(repl) {
			sb.WriteByte(c)
			continue
		}
		switch next := repl[i+1]; {
		case next == '$':
			sb.WriteByte('$')
			i++
		case next == '&':
			group(&m.Group)
			i++
		case next == '{':
			end := strings.IndexByte(repl[i+2:], '}')
			if end < 0 {
				sb.WriteByte(c)
				continue
			}
			g := groupByName(m, repl[i+2:i+2+end])
			if g == nil {
				sb.WriteByte(c)
				continue
			}
			group(g)
			i += 2 + end
		case isDigit(next):
			j := i + 1
			for j < len(repl) && isDigit(repl[j]) {
				j++
			}
			// the longest run of digits that names a group wins
			for ; j > i+1; j-- {
				if num, err := strconv.Atoi(repl[i+1 : j]); err == nil {
					if g := m.GroupByNumber(num); g != nil {
						group(g)
						break
					}
				}
			}
			if j == i+1 {
				sb.WriteByte(c)
				continue
			}
			i = j - 1
		default:
			sb.WriteByte(c)
		}
	}
}

func groupByName(m *regexp2.Match, name string) *regexp2.Group {
	if num, err := strconv.Atoi(name); err == nil {
		if num < 0 {
			return nil
		}
		return m.GroupByNumber(num)
	}
	return m.GroupByName(name)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Order returns the 0-based line indices a search starting from the 1-based
// line cursor visits in a buffer of size lines. Every index appears exactly
// once. Forward order starts at the line after the cursor and wraps around;
// reverse order starts at the line before it and walks backward. The cursor
// line is always last.
func Order(cursor, size int, reverse bool) []int {
	if size <= 0 {
		return nil
	}
	out := make([]int, size)
	for k := 0; k < size; k++ {
		idx := cursor + k
		if reverse {
			idx = cursor - 2 - k
		}
		out[k] = ((idx % size) + size) % size
	}
	return out
}

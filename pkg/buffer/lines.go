package buffer

import "strings"

// SplitKeepEnds breaks text into lines, keeping each line's original
// terminator ("\n", "\r\n" or "\r"). A trailing fragment without a terminator
// is returned as-is. Empty text yields no lines.
func SplitKeepEnds(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			out = append(out, text[start:i+1])
			start = i + 1
		case '\r':
			end := i + 1
			if end < len(text) && text[end] == '\n' {
				end++
			}
			out = append(out, text[start:end])
			start = end
			i = end - 1
		}
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// SplitLines breaks text into lines and terminates every one of them with
// "\n", including a final fragment that had no terminator.
func SplitLines(text string) []string {
	parts := SplitKeepEnds(text)
	if len(parts) == 0 {
		return nil
	}
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, TrimEnd(p)+"\n")
	}
	return lines
}

// TrimEnd returns line without its terminator.
func TrimEnd(line string) string {
	if s, ok := strings.CutSuffix(line, "\r\n"); ok {
		return s
	}
	if s, ok := strings.CutSuffix(line, "\n"); ok {
		return s
	}
	return strings.TrimSuffix(line, "\r")
}

// Join concatenates lines back into a single string.
func Join(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
	}
	return sb.String()
}

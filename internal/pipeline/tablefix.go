package pipeline

import (
	"regexp"
	"strings"
)

// A delimiter row needs at least one pipe so "Title\n---" stays a heading.
var delimiterRow = regexp.MustCompile(`^[ \t]*\|?[ \t]*:?-+:?[ \t]*(?:\|[ \t]*:?-+:?[ \t]*)*\|?[ \t]*$`)

// Block starts that end a table body
var tableBreak = regexp.MustCompile("^[ \t]*(?:#{1,6}(?:[ \t]|$)|>|`{3,}|~{3,}|\\$\\$)")

func isDelimiterRow(line string) bool {
	return strings.Contains(line, "|") && delimiterRow.MatchString(line)
}

// fixTables pads every pipe table to its widest row. goldmark keeps only as
// many cells per row as the delimiter row declares, so a header that is
// shorter than the body would silently drop data. A blank line is also
// inserted before a table glued to a preceding paragraph.
func fixTables(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	var fence fenceState

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if fence.open() || fence.opens(line) {
			fence.feed(line)
			out = append(out, line)
			continue
		}
		if i+1 < len(lines) && strings.Contains(line, "|") && isDelimiterRow(lines[i+1]) {
			end := i + 2
			for end < len(lines) && strings.TrimSpace(lines[end]) != "" && !tableBreak.MatchString(lines[end]) {
				end++
			}
			if n := len(out); n > 0 && strings.TrimSpace(out[n-1]) != "" {
				out = append(out, "")
			}
			out = append(out, padTable(lines[i:end])...)
			i = end - 1
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// padTable pads rows (header, delimiter, body) to the widest row.
func padTable(rows []string) []string {
	widest := 0
	for _, r := range rows {
		if n := cellCount(r); n > widest {
			widest = n
		}
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		filler := ""
		if i == 1 {
			filler = "---"
		}
		out[i] = padRow(r, widest-cellCount(r), filler)
	}
	return out
}

// cellCount counts cells the way goldmark splits them: outer pipes are
// optional and escaped pipes do not separate.
func cellCount(row string) int {
	t := strings.TrimSpace(row)
	t = strings.TrimPrefix(t, "|")
	if strings.HasSuffix(t, "|") && !strings.HasSuffix(t, `\|`) {
		t = t[:len(t)-1]
	}
	n := 1
	for i := 0; i < len(t); i++ {
		if t[i] == '|' && (i == 0 || t[i-1] != '\\') {
			n++
		}
	}
	return n
}

func padRow(row string, missing int, filler string) string {
	if missing <= 0 {
		return row
	}
	t := strings.TrimRight(row, " \t")
	if !strings.HasSuffix(t, "|") || strings.HasSuffix(t, `\|`) {
		t += " |"
	}
	for range missing {
		t += " " + filler + " |"
	}
	return t
}

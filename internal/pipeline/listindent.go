package pipeline

import (
	"regexp"
	"strings"
)

var (
	// Bullet or ordered marker, then content
	listItemLine = regexp.MustCompile(`^([ \t]*)([-*+]|\d{1,9}[.)])(?:[ \t]+(.*))?$`)

	// Thematic breaks look like bullet items
	thematicLine = regexp.MustCompile(`^[ \t]*(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)

	// Block starts that end a list when flush left
	flushBlockStart = regexp.MustCompile("^(?:#{1,6}(?:[ \t]|$)|>|\\||\\$\\$|`{3,}|~{3,})")
)

// listLevel is one open list item while rewriting indentation.
type listLevel struct {
	indent     int // original marker column
	content    int // original content column
	newContent int // content column after rewriting
}

// normalizeListIndent rewrites list indentation to canonical widths so that
// goldmark nests items the way indentation suggests. Items at the same
// marker column are siblings; see itemDepth for nesting. Continuation lines
// and fenced code inside items move with their item.
func normalizeListIndent(content string, unit int) string {
	lines := strings.Split(content, "\n")
	var (
		stack      []listLevel
		fence      fenceState
		fenceShift int
		prevBlank  = true
	)

	for i, line := range lines {
		if fence.open() {
			lines[i] = shiftIndent(line, fenceShift, unit, 0)
			fence.feed(line)
			prevBlank = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			prevBlank = true
			continue
		}
		width := indentWidth(line, unit)

		if m := listItemLine.FindStringSubmatchIndex(line); m != nil && !thematicLine.MatchString(line) {
			depth := itemDepth(stack, width, unit)
			stack = stack[:depth]

			newIndent := 0
			if depth > 0 {
				newIndent = stack[depth-1].newContent
			}
			marker := line[m[4]:m[5]]
			rest := ""
			origContent := width + len(marker) + 1
			if m[6] >= 0 {
				rest = line[m[6]:m[7]]
				origContent = columnWidth(line[:m[6]], unit)
			}

			rewritten := strings.Repeat(" ", newIndent) + marker
			if rest != "" {
				rewritten += " " + rest
			}
			lines[i] = rewritten
			stack = append(stack, listLevel{
				indent:     width,
				content:    origContent,
				newContent: newIndent + len(marker) + 1,
			})
			prevBlank = false
			continue
		}

		if len(stack) == 0 || width <= stack[0].indent {
			if prevBlank || (width == 0 && flushBlockStart.MatchString(line)) {
				stack = nil
			}
			if fence.opens(line) {
				fenceShift = 0
				fence.feed(line)
			}
			prevBlank = false
			continue
		}

		// Indented continuation: attach it to the deepest item whose marker
		// sits left of it.
		j := len(stack) - 1
		for j > 0 && width <= stack[j].indent {
			j--
		}
		stack = stack[:j+1]
		lvl := stack[j]
		shift := lvl.newContent - lvl.content
		lines[i] = shiftIndent(line, shift, unit, lvl.newContent)
		if fence.opens(line) {
			fenceShift = shift
			fence.feed(line)
		}
		prevBlank = false
	}
	return strings.Join(lines, "\n")
}

// itemDepth returns the depth of an item whose marker sits at width. The
// item joins the deepest open level whose marker column is at or left of
// width. It nests one level below that level only when it sits strictly
// right of it and width/unit is deeper than that level, so ambiguous
// indentation rounds toward shallower.
func itemDepth(stack []listLevel, width, unit int) int {
	j := len(stack) - 1
	for j >= 0 && stack[j].indent > width {
		j--
	}
	if j < 0 {
		return 0
	}
	if width > stack[j].indent && width/unit > j {
		return j + 1
	}
	return j
}

// indentWidth measures leading whitespace. A tab counts as one unit.
func indentWidth(line string, unit int) int {
	return columnWidth(line[:len(line)-len(strings.TrimLeft(line, " \t"))], unit)
}

func columnWidth(prefix string, unit int) int {
	w := 0
	for _, c := range prefix {
		if c == '\t' {
			w += unit
			continue
		}
		w++
	}
	return w
}

// shiftIndent moves line by shift columns, keeping it at or right of
// floor. A zero shift with a satisfied floor leaves the line untouched.
func shiftIndent(line string, shift, unit, floor int) string {
	width := indentWidth(line, unit)
	target := width + shift
	if target < floor {
		target = floor
	}
	if target < 0 {
		target = 0
	}
	if target == width {
		return line
	}
	return strings.Repeat(" ", target) + strings.TrimLeft(line, " \t")
}

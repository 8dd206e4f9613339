package pipeline

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultIndentUnit is the list indentation width, in columns, that makes
// one nesting level.
const DefaultIndentUnit = 2

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// More than six heading markers
	deepHeading = regexp.MustCompile(`(?m)^( {0,3})#{7,}([ \t]|$)`)

	// LaTeX-style delimiters
	inlineParenMath  = regexp.MustCompile(`\\\((.+?)\\\)`)
	displayBrackMath = regexp.MustCompile(`(?s)\\\[(.+?)\\\]`)

	// Fence opener or closer, any indentation
	fenceLine = regexp.MustCompile("^[ \t]*(`{3,}|~{3,})")
)

// zeroWidth removes invisible characters that pasted text often carries and
// that break delimiter matching.
var zeroWidth = strings.NewReplacer(
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\u2060", "",
	"\ufeff", "",
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor repairs pasted Markdown so that goldmark parses it
// the way a reader would: canonical list indentation, complete table
// headers, dollar-delimited math.
type CommonMarkPreprocessor struct {
	// IndentUnit is the column width of one list level. Zero means
	// DefaultIndentUnit.
	IndentUnit int
}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	unit := p.IndentUnit
	if unit <= 0 {
		unit = DefaultIndentUnit
	}

	// Fenced code is copied byte for byte; every step except line ending
	// normalization skips it.
	content = normalizeLineEndings(content)
	content = mapProse(content, cleanText)
	content = mapProse(content, convertLatexDelimiters)
	content = mapProse(content, clampHeadings)
	content = normalizeListIndent(content, unit)
	content = fixTables(content)
	content = mapProse(content, compressBlankLines)
	return content
}

// cleanText composes characters to NFC and drops zero-width characters.
func cleanText(content string) string {
	return zeroWidth.Replace(norm.NFC.String(content))
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// clampHeadings rewrites headings deeper than six levels as level six.
func clampHeadings(content string) string {
	return deepHeading.ReplaceAllString(content, "${1}######${2}")
}

// convertLatexDelimiters rewrites \(x\) as $x$ and \[x\] as a $$ block.
func convertLatexDelimiters(content string) string {
	content = displayBrackMath.ReplaceAllStringFunc(content, func(m string) string {
		inner := strings.TrimSpace(m[2 : len(m)-2])
		return "\n$$\n" + inner + "\n$$\n"
	})
	return inlineParenMath.ReplaceAllString(content, "$$${1}$$")
}

// mapProse applies fn to the parts of content outside fenced code blocks.
// Fenced lines are passed through untouched.
func mapProse(content string, fn func(string) string) string {
	lines := strings.Split(content, "\n")
	var out, prose []string
	flush := func() {
		if len(prose) > 0 {
			out = append(out, strings.Split(fn(strings.Join(prose, "\n")), "\n")...)
			prose = prose[:0]
		}
	}
	var fence fenceState
	for _, line := range lines {
		if fence.open() || fence.opens(line) {
			flush()
			out = append(out, line)
			fence.feed(line)
			continue
		}
		prose = append(prose, line)
	}
	flush()
	return strings.Join(out, "\n")
}

// fenceState tracks whether a line sits inside a fenced code block.
type fenceState struct {
	marker string // the opening fence run, empty when outside
}

func (f *fenceState) open() bool { return f.marker != "" }

// opens reports whether line would open a fence.
func (f *fenceState) opens(line string) bool {
	return !f.open() && fenceLine.MatchString(line)
}

// feed advances the state past line.
func (f *fenceState) feed(line string) {
	if !f.open() {
		if m := fenceLine.FindStringSubmatch(line); m != nil {
			f.marker = m[1]
		}
		return
	}
	t := strings.TrimSpace(line)
	if len(t) >= len(f.marker) && strings.Trim(t, f.marker[:1]) == "" {
		f.marker = ""
	}
}

package pipeline

// Notes:
// - Trees are compared with cmp. Source lines are ignored except in
//   TestParse_Lines, and nil and empty slices compare equal.
// - Inputs go through the full preprocessing, so these tests also cover the
//   interaction between preprocessing and goldmark.

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2docx/internal/mdtree"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var (
	ignoreLines = cmpopts.IgnoreTypes(mdtree.Node{})
	equateEmpty = cmpopts.EquateEmpty()
)

func txt(s string) *mdtree.Text { return &mdtree.Text{Value: s} }

func para(spans ...mdtree.Inline) *mdtree.Paragraph {
	return &mdtree.Paragraph{Inlines: spans}
}

func cells(values ...string) []mdtree.Cell {
	out := make([]mdtree.Cell, len(values))
	for i, v := range values {
		if v != "" {
			out[i].Inlines = []mdtree.Inline{txt(v)}
		}
	}
	return out
}

func parse(t *testing.T, input string) *mdtree.Document {
	t.Helper()
	doc, err := NewParser(0).Parse(context.Background(), input)
	if err != nil {
		t.Fatalf("Parse(%q) unexpected error: %v", input, err)
	}
	return doc
}

// ---------------------------------------------------------------------------
// TestParse - Block structure
// ---------------------------------------------------------------------------

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []mdtree.Block
	}{
		{
			name:  "nested list keeps outer items at depth zero",
			input: "- a\n  - b\n- c",
			want: []mdtree.Block{
				&mdtree.ListItem{Depth: 0, Marker: '-', Inlines: []mdtree.Inline{txt("a")}, Children: []mdtree.Block{
					&mdtree.ListItem{Depth: 1, Marker: '-', Inlines: []mdtree.Inline{txt("b")}},
				}},
				&mdtree.ListItem{Depth: 0, Marker: '-', Inlines: []mdtree.Inline{txt("c")}},
			},
		},
		{
			name:  "ordered list",
			input: "1. one\n2. two",
			want: []mdtree.Block{
				&mdtree.ListItem{Ordered: true, Marker: '.', Inlines: []mdtree.Inline{txt("one")}},
				&mdtree.ListItem{Ordered: true, Marker: '.', Inlines: []mdtree.Inline{txt("two")}},
			},
		},
		{
			name:  "over-indented child nests one level",
			input: "- a\n        - b",
			want: []mdtree.Block{
				&mdtree.ListItem{Marker: '-', Inlines: []mdtree.Inline{txt("a")}, Children: []mdtree.Block{
					&mdtree.ListItem{Depth: 1, Marker: '-', Inlines: []mdtree.Inline{txt("b")}},
				}},
			},
		},
		{
			name:  "task list",
			input: "- [x] done\n- [ ] todo",
			want: []mdtree.Block{
				&mdtree.ListItem{Marker: '-', Task: true, Checked: true, Inlines: []mdtree.Inline{txt("done")}},
				&mdtree.ListItem{Marker: '-', Task: true, Inlines: []mdtree.Inline{txt("todo")}},
			},
		},
		{
			name:  "heading level capped at six",
			input: "####### Deep",
			want:  []mdtree.Block{&mdtree.Heading{Level: 6, Inlines: []mdtree.Inline{txt("Deep")}, ID: "deep"}},
		},
		{
			name:  "heading ids are unique slugs",
			input: "# Hello, World!\n\n## Hello World",
			want: []mdtree.Block{
				&mdtree.Heading{Level: 1, Inlines: []mdtree.Inline{txt("Hello, World!")}, ID: "hello-world"},
				&mdtree.Heading{Level: 2, Inlines: []mdtree.Inline{txt("Hello World")}, ID: "hello-world-1"},
			},
		},
		{
			name:  "unterminated fence is closed at end of input",
			input: "```go\nfunc main() {\n\tx := 1  \n",
			want: []mdtree.Block{
				&mdtree.CodeBlock{Language: "go", Lines: []string{"func main() {", "\tx := 1  "}},
			},
		},
		{
			name:  "ragged table padded to widest row",
			input: "| a | b |\n|---|---|\n| 1 |\n| 1 | 2 | 3 |",
			want: []mdtree.Block{
				&mdtree.Table{
					Align:  []mdtree.Alignment{mdtree.AlignNone, mdtree.AlignNone, mdtree.AlignNone},
					Header: cells("a", "b", ""),
					Rows:   [][]mdtree.Cell{cells("1", "", ""), cells("1", "2", "3")},
				},
			},
		},
		{
			name:  "table alignment",
			input: "| l | c | r |\n|:--|:-:|--:|\n| 1 | 2 | 3 |",
			want: []mdtree.Block{
				&mdtree.Table{
					Align:  []mdtree.Alignment{mdtree.AlignLeft, mdtree.AlignCenter, mdtree.AlignRight},
					Header: cells("l", "c", "r"),
					Rows:   [][]mdtree.Cell{cells("1", "2", "3")},
				},
			},
		},
		{
			name:  "standalone image",
			input: `![alt text](img.png "Title")`,
			want:  []mdtree.Block{&mdtree.Image{Source: "img.png", Alt: "alt text", Title: "Title"}},
		},
		{
			name:  "image split out of text",
			input: "See ![a](x.png) here",
			want: []mdtree.Block{
				para(txt("See")),
				&mdtree.Image{Source: "x.png", Alt: "a"},
				para(txt("here")),
			},
		},
		{
			name:  "display math on several lines",
			input: "$$\nx^2\n+ 1\n$$",
			want:  []mdtree.Block{&mdtree.MathBlock{Source: "x^2\n+ 1"}},
		},
		{
			name:  "display math on one line",
			input: "$$ a+b $$",
			want:  []mdtree.Block{&mdtree.MathBlock{Source: "a+b"}},
		},
		{
			name:  "text after closing fence becomes a paragraph",
			input: "$$\na+b\n$$ trailing words",
			want: []mdtree.Block{
				&mdtree.MathBlock{Source: "a+b"},
				para(txt("trailing words")),
			},
		},
		{
			name:  "bracket display math",
			input: `\[ \frac{1}{2} \]`,
			want:  []mdtree.Block{&mdtree.MathBlock{Source: `\frac{1}{2}`}},
		},
		{
			name:  "block quote",
			input: "> quoted **text**",
			want: []mdtree.Block{
				&mdtree.Quote{Children: []mdtree.Block{
					para(txt("quoted "), &mdtree.Bold{Children: []mdtree.Inline{txt("text")}}),
				}},
			},
		},
		{
			name:  "thematic break",
			input: "a\n\n---\n\nb",
			want:  []mdtree.Block{para(txt("a")), &mdtree.ThematicBreak{}, para(txt("b"))},
		},
		{
			name:  "html block reduced to text",
			input: "<p>Hello <b>world</b></p>",
			want:  []mdtree.Block{&mdtree.HTMLBlock{Text: "Hello world"}},
		},
		{
			name:  "html image becomes an image block",
			input: "<div align=\"center\">\n<img src=\"logo.png\" alt=\"Logo\">\n</div>",
			want:  []mdtree.Block{&mdtree.Image{Source: "logo.png", Alt: "Logo"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := parse(t, tt.input)
			if diff := cmp.Diff(tt.want, doc.Blocks, ignoreLines, equateEmpty); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParse_Lines(t *testing.T) {
	t.Parallel()

	doc := parse(t, "# Title\n\nPara\n\n- item\n")
	want := []int{1, 3, 5}
	if len(doc.Blocks) != len(want) {
		t.Fatalf("len(Blocks) = %d, want %d", len(doc.Blocks), len(want))
	}
	for i, b := range doc.Blocks {
		if got := b.SourceLine(); got != want[i] {
			t.Errorf("Blocks[%d].SourceLine() = %d, want %d", i, got, want[i])
		}
	}
}

func TestParse_FrontMatter(t *testing.T) {
	t.Parallel()

	doc := parse(t, "---\ntitle: Report\nauthor: [Ann, Bob]\nkeywords: go, docx\n---\n\n# H\n")
	want := mdtree.Metadata{
		Title:    "Report",
		Author:   "Ann, Bob",
		Keywords: []string{"go", "docx"},
	}
	if diff := cmp.Diff(want, doc.Meta); diff != "" {
		t.Errorf("Meta mismatch (-want +got):\n%s", diff)
	}
	if len(doc.Blocks) != 1 {
		t.Errorf("len(Blocks) = %d, want 1 (front matter leaves no block)", len(doc.Blocks))
	}
}

func TestParse_NestingLimit(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("> ", mdtree.MaxNestingDepth+5) + "deep"
	_, err := NewParser(0).Parse(context.Background(), input)
	if !errors.Is(err, mdtree.ErrMalformedBlock) {
		t.Fatalf("Parse(deep quotes) error = %v, want ErrMalformedBlock", err)
	}
	var mbe *mdtree.MalformedBlockError
	if !errors.As(err, &mbe) {
		t.Fatalf("error type = %T, want *mdtree.MalformedBlockError", err)
	}
	if mbe.Line != 1 {
		t.Errorf("Line = %d, want 1", mbe.Line)
	}
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser(0).Parse(ctx, "# Hello")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Parse(cancelled) error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestParse_Inlines - Inline tokenizing through the parser
// ---------------------------------------------------------------------------

func TestParse_Inlines(t *testing.T) {
	t.Parallel()

	bold := func(s ...mdtree.Inline) *mdtree.Bold { return &mdtree.Bold{Children: s} }
	italic := func(s ...mdtree.Inline) *mdtree.Italic { return &mdtree.Italic{Children: s} }

	tests := []struct {
		name  string
		input string
		want  []mdtree.Inline
	}{
		{
			name:  "bold containing italic",
			input: "**bold *and italic***",
			want:  []mdtree.Inline{bold(txt("bold "), italic(txt("and italic")))},
		},
		{
			name:  "double asterisk is bold, not two italics",
			input: "**bold**",
			want:  []mdtree.Inline{bold(txt("bold"))},
		},
		{
			name:  "stray asterisk stays literal",
			input: "a * b",
			want:  []mdtree.Inline{txt("a * b")},
		},
		{
			name:  "unmatched opener stays literal",
			input: "**open",
			want:  []mdtree.Inline{txt("**open")},
		},
		{
			name:  "code span",
			input: "use `go test` now",
			want:  []mdtree.Inline{txt("use "), &mdtree.Code{Value: "go test"}, txt(" now")},
		},
		{
			name:  "inline math",
			input: "Energy $E=mc^2$ and $$\\int x$$ here",
			want: []mdtree.Inline{
				txt("Energy "), &mdtree.Math{Source: "E=mc^2"},
				txt(" and "), &mdtree.Math{Source: `\int x`}, txt(" here"),
			},
		},
		{
			name:  "currency is not math",
			input: "It costs $5 and $10.",
			want:  []mdtree.Inline{txt("It costs $5 and $10.")},
		},
		{
			name:  "subscript superscript strikethrough",
			input: "H~2~O and x^2^ and ~~gone~~",
			want: []mdtree.Inline{
				txt("H"), &mdtree.Subscript{Children: []mdtree.Inline{txt("2")}},
				txt("O and x"), &mdtree.Superscript{Children: []mdtree.Inline{txt("2")}},
				txt(" and "), &mdtree.Strikethrough{Children: []mdtree.Inline{txt("gone")}},
			},
		},
		{
			name:  "raw html tags",
			input: "a <b>bold</b> and x<sup>2</sup><br>end",
			want: []mdtree.Inline{
				txt("a "), bold(txt("bold")), txt(" and x"),
				&mdtree.Superscript{Children: []mdtree.Inline{txt("2")}},
				&mdtree.LineBreak{}, txt("end"),
			},
		},
		{
			name:  "self-closing br and inline img alt text",
			input: `one<br/>two <img src="logo.png" alt="Logo"> three`,
			want: []mdtree.Inline{
				txt("one"), &mdtree.LineBreak{}, txt("two Logo three"),
			},
		},
		{
			name:  "unclosed html tag leaves text unstyled",
			input: "a <i>b",
			want:  []mdtree.Inline{txt("a b")},
		},
		{
			name:  "links",
			input: `[site](https://example.com "Home") <https://go.dev>`,
			want: []mdtree.Inline{
				&mdtree.Link{URL: "https://example.com", Title: "Home", Children: []mdtree.Inline{txt("site")}},
				txt(" "),
				&mdtree.Link{URL: "https://go.dev", Children: []mdtree.Inline{txt("https://go.dev")}},
			},
		},
		{
			name:  "hard line break",
			input: "one  \ntwo",
			want:  []mdtree.Inline{txt("one"), &mdtree.LineBreak{}, txt("two")},
		},
		{
			name:  "soft line break becomes a space",
			input: "one\ntwo",
			want:  []mdtree.Inline{txt("one two")},
		},
		{
			name:  "escapes and entities resolved",
			input: `\*not italic\* &amp; &#169;`,
			want:  []mdtree.Inline{txt("*not italic* & ©")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := parse(t, tt.input)
			if len(doc.Blocks) != 1 {
				t.Fatalf("len(Blocks) = %d, want 1", len(doc.Blocks))
			}
			p, ok := doc.Blocks[0].(*mdtree.Paragraph)
			if !ok {
				t.Fatalf("Blocks[0] = %T, want *mdtree.Paragraph", doc.Blocks[0])
			}
			if diff := cmp.Diff(tt.want, p.Inlines, equateEmpty); diff != "" {
				t.Errorf("inlines of %q mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	p := NewParser(0)
	got := p.Tokenize("plain `code` $x$ **b**")
	want := []mdtree.Inline{
		txt("plain "), &mdtree.Code{Value: "code"}, txt(" "),
		&mdtree.Math{Source: "x"}, txt(" "),
		&mdtree.Bold{Children: []mdtree.Inline{txt("b")}},
	}
	if diff := cmp.Diff(want, got, equateEmpty); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}
}

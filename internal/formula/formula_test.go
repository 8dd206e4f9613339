package formula

// Notes:
// - Trees are compared with cmp; Run carries an unexported flag, hence
//   AllowUnexported.
// - Empty scripts are non-nil slices, absent scripts are nil. The tests rely
//   on that distinction.

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var cmpRun = cmp.AllowUnexported(Run{})

func r(s string) *Run { return &Run{Text: s} }

// ---------------------------------------------------------------------------
// TestTranslate - Supported grammar
// ---------------------------------------------------------------------------

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []Node
	}{
		{
			name: "superscript",
			src:  "x^2",
			want: []Node{&Script{Base: []Node{r("x")}, Sup: []Node{r("2")}}},
		},
		{
			name: "sub and superscript in either order",
			src:  "x^2_i",
			want: []Node{&Script{Base: []Node{r("x")}, Sub: []Node{r("i")}, Sup: []Node{r("2")}}},
		},
		{
			name: "prime",
			src:  "f'",
			want: []Node{&Script{Base: []Node{r("f")}, Sup: []Node{r("′")}}},
		},
		{
			name: "fraction with groups",
			src:  `\frac{a}{b}`,
			want: []Node{&Frac{Num: []Node{r("a")}, Den: []Node{r("b")}}},
		},
		{
			name: "fraction with bare arguments",
			src:  `\frac12`,
			want: []Node{&Frac{Num: []Node{r("1")}, Den: []Node{r("2")}}},
		},
		{
			name: "binomial",
			src:  `\binom{n}{k}`,
			want: []Node{&Delim{Open: "(", Close: ")", Body: []Node{
				&Frac{Num: []Node{r("n")}, Den: []Node{r("k")}, NoBar: true},
			}}},
		},
		{
			name: "numbers merge",
			src:  "12.5",
			want: []Node{r("12.5")},
		},
		{
			name: "greek and operators",
			src:  `\alpha + \beta \leq \pi`,
			want: []Node{r("α"), r("+"), r("β"), r("≤"), r("π")},
		},
		{
			name: "minus sign",
			src:  "a-b",
			want: []Node{r("a"), r("−"), r("b")},
		},
		{
			name: "summation with bounds",
			src:  `\sum_{i=1}^{n} i^2`,
			want: []Node{&Nary{
				Op:   "∑",
				Sub:  []Node{r("i"), r("="), r("1")},
				Sup:  []Node{r("n")},
				Body: []Node{&Script{Base: []Node{r("i")}, Sup: []Node{r("2")}}},
			}},
		},
		{
			name: "integral body stops at relation",
			src:  `\int_0^1 x dx = 1`,
			want: []Node{
				&Nary{
					Op:   "∫",
					Sub:  []Node{r("0")},
					Sup:  []Node{r("1")},
					Body: []Node{r("x"), r("d"), r("x")},
				},
				r("="), r("1"),
			},
		},
		{
			name: "square root",
			src:  `\sqrt{x}`,
			want: []Node{&Radical{Body: []Node{r("x")}}},
		},
		{
			name: "nth root",
			src:  `\sqrt[3]{x}`,
			want: []Node{&Radical{Degree: []Node{r("3")}, Body: []Node{r("x")}}},
		},
		{
			name: "left right",
			src:  `\left( x \right)`,
			want: []Node{&Delim{Open: "(", Close: ")", Body: []Node{r("x")}}},
		},
		{
			name: "invisible delimiter",
			src:  `\left. x \right|`,
			want: []Node{&Delim{Open: "", Close: "|", Body: []Node{r("x")}}},
		},
		{
			name: "limit",
			src:  `\lim_{x \to 0} f`,
			want: []Node{
				&LimLow{
					Base:  []Node{&Run{Text: "lim", Style: StylePlain, limits: true}},
					Lower: []Node{r("x"), r("→"), r("0")},
				},
				r("f"),
			},
		},
		{
			name: "function name",
			src:  `\sin x`,
			want: []Node{&Run{Text: "sin", Style: StylePlain}, r("x")},
		},
		{
			name: "text keeps spaces",
			src:  `\text{if } x`,
			want: []Node{&Run{Text: "if ", Normal: true}, r("x")},
		},
		{
			name: "blackboard bold",
			src:  `\mathbb{R}`,
			want: []Node{&Run{Text: "ℝ", Style: StylePlain}},
		},
		{
			name: "bold",
			src:  `\mathbf{v}`,
			want: []Node{&Run{Text: "v", Style: StyleBold}},
		},
		{
			name: "accent",
			src:  `\hat{x}`,
			want: []Node{&Accent{Char: "̂", Body: []Node{r("x")}}},
		},
		{
			name: "overline",
			src:  `\overline{z}`,
			want: []Node{&Bar{Top: true, Body: []Node{r("z")}}},
		},
		{
			name: "pmatrix",
			src:  `\begin{pmatrix} a & b \\ c & d \end{pmatrix}`,
			want: []Node{&Delim{Open: "(", Close: ")", Body: []Node{&Matrix{Rows: [][][]Node{
				{{r("a")}, {r("b")}},
				{{r("c")}, {r("d")}},
			}}}}},
		},
		{
			name: "trailing row separator dropped",
			src:  `\begin{matrix} 1 \\ \end{matrix}`,
			want: []Node{&Matrix{Rows: [][][]Node{{{r("1")}}}}},
		},
		{
			name: "thin space",
			src:  `a\,b`,
			want: []Node{r("a"), &Run{Text: "\u2009", Normal: true}, r("b")},
		},
		{
			name: "quad and negative space",
			src:  `a\quad b\!c`,
			want: []Node{r("a"), &Run{Text: "\u2003", Normal: true}, r("b"), r("c")},
		},
		{
			name: "escaped brace",
			src:  `\{x\}`,
			want: []Node{r("{"), r("x"), r("}")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Translate(tt.src)
			if err != nil {
				t.Fatalf("Translate(%q) unexpected error: %v", tt.src, err)
			}
			if got.Source != tt.src {
				t.Errorf("Source = %q, want %q", got.Source, tt.src)
			}
			if diff := cmp.Diff(tt.want, got.Nodes, cmpRun); diff != "" {
				t.Errorf("Translate(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTranslate_Errors - Constructs outside the grammar
// ---------------------------------------------------------------------------

func TestTranslate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		src        string
		wantOffset int
		wantReason string
	}{
		{"unknown command", `\foo{x}`, 0, `unsupported command \foo`},
		{"double superscript", "x^2^3", 3, "double superscript"},
		{"double subscript", "x_1_2", 3, "double subscript"},
		{"unclosed group", "{x", 0, "unbalanced braces"},
		{"stray close", "x}", 1, "unbalanced braces"},
		{"unknown environment", `\begin{tikzpicture}\end{tikzpicture}`, 0, "unsupported environment tikzpicture"},
		{"left without right", `\left( x`, 0, `\left without \right`},
		{"right without left", `x \right)`, 2, `\right without \left`},
		{"alignment outside environment", "a & b", 2, "alignment outside an environment"},
		{"missing end", `\begin{matrix} a`, 0, `missing \end{matrix}`},
		{"trailing backslash", `x\`, 1, "trailing backslash"},
		{"missing argument", `\frac{a}`, 8, "missing argument"},
		{"empty", "  ", 0, "empty formula"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Translate(tt.src)
			if err == nil {
				t.Fatalf("Translate(%q) = %+v, want error", tt.src, got)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("errors.Is(err, ErrSyntax) = false for %v", err)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error type = %T, want *SyntaxError", err)
			}
			if se.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", se.Offset, tt.wantOffset)
			}
			if se.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", se.Reason, tt.wantReason)
			}
		})
	}
}

func TestSyntaxError_Snippet(t *testing.T) {
	t.Parallel()

	_, err := Translate(`a + \unknowncommand{b}`)
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T, want *SyntaxError", err)
	}
	if se.Snippet != `\unknowncommand{` {
		t.Errorf("Snippet = %q, want %q", se.Snippet, `\unknowncommand{`)
	}
	want := `formula syntax error at offset 4 ("\\unknowncommand{"): unsupported command \unknowncommand`
	if se.Error() != want {
		t.Errorf("Error() = %q, want %q", se.Error(), want)
	}
}

func TestTranslate_DeepNesting(t *testing.T) {
	t.Parallel()

	src := ""
	for range maxDepth + 10 {
		src += "{"
	}
	src += "x"
	for range maxDepth + 10 {
		src += "}"
	}
	if _, err := Translate(src); !errors.Is(err, ErrSyntax) {
		t.Errorf("Translate(deep) error = %v, want ErrSyntax", err)
	}
}

// ---------------------------------------------------------------------------
// TestMath_Text - Linear rendering
// ---------------------------------------------------------------------------

func TestMath_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want string
	}{
		{"x^2", "x^2"},
		{`\frac{a}{b}`, "(a)/(b)"},
		{`\sum_{i=1}^{n} i`, "∑_(i=1)^ni"},
		{`\sqrt{x+1}`, "√(x+1)"},
		{`\left[ a \right]`, "[a]"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			m, err := Translate(tt.src)
			if err != nil {
				t.Fatalf("Translate(%q) unexpected error: %v", tt.src, err)
			}
			if got := m.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Package formula translates LaTeX-style math into a tree shaped after the
// Office Math Markup Language, ready for serialization.
//
// The grammar is a practical subset: scripts, fractions, roots, big
// operators with bounds, \left/\right delimiters, accents, text and font
// commands, Greek letters and operator symbols, and the matrix family of
// environments. Anything outside it fails with a *SyntaxError; the
// translator never returns a partial tree.
package formula

import "strings"

// Translate parses src into a math tree.
func Translate(src string) (*Math, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &SyntaxError{Source: src, Reason: "empty formula"}
	}
	p := &parser{lex: &lexer{src: src}}
	nodes, err := p.parseExpr(never)
	if err != nil {
		return nil, err
	}
	return &Math{Source: src, Nodes: mergeRuns(nodes)}, nil
}

// walkRuns calls fn for every run in nodes, depth first.
func walkRuns(nodes []Node, fn func(*Run)) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Run:
			fn(n)
		case *Frac:
			walkRuns(n.Num, fn)
			walkRuns(n.Den, fn)
		case *Script:
			walkRuns(n.Base, fn)
			walkRuns(n.Sub, fn)
			walkRuns(n.Sup, fn)
		case *Radical:
			walkRuns(n.Degree, fn)
			walkRuns(n.Body, fn)
		case *Nary:
			walkRuns(n.Sub, fn)
			walkRuns(n.Sup, fn)
			walkRuns(n.Body, fn)
		case *Delim:
			walkRuns(n.Body, fn)
		case *Accent:
			walkRuns(n.Body, fn)
		case *Bar:
			walkRuns(n.Body, fn)
		case *LimLow:
			walkRuns(n.Base, fn)
			walkRuns(n.Lower, fn)
		case *Matrix:
			for _, row := range n.Rows {
				for _, cell := range row {
					walkRuns(cell, fn)
				}
			}
		}
	}
}

// mergeRuns joins adjacent runs of the same style at every level, so
// "12" becomes one run rather than two.
func mergeRuns(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *Run:
			if len(out) > 0 {
				if prev, ok := out[len(out)-1].(*Run); ok && mergeable(prev, n) {
					out[len(out)-1] = &Run{Text: prev.Text + n.Text, Style: prev.Style, Normal: prev.Normal}
					continue
				}
			}
		case *Frac:
			n.Num, n.Den = mergeRuns(n.Num), mergeRuns(n.Den)
		case *Script:
			n.Base, n.Sub, n.Sup = mergeRuns(n.Base), mergeNil(n.Sub), mergeNil(n.Sup)
		case *Radical:
			n.Degree, n.Body = mergeNil(n.Degree), mergeRuns(n.Body)
		case *Nary:
			n.Sub, n.Sup, n.Body = mergeNil(n.Sub), mergeNil(n.Sup), mergeRuns(n.Body)
		case *Delim:
			n.Body = mergeRuns(n.Body)
		case *Accent:
			n.Body = mergeRuns(n.Body)
		case *Bar:
			n.Body = mergeRuns(n.Body)
		case *LimLow:
			n.Base, n.Lower = mergeRuns(n.Base), mergeRuns(n.Lower)
		case *Matrix:
			for _, row := range n.Rows {
				for i := range row {
					row[i] = mergeRuns(row[i])
				}
			}
		}
		out = append(out, n)
	}
	return out
}

func mergeNil(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	return mergeRuns(nodes)
}

func mergeable(a, b *Run) bool {
	if a.limits || b.limits || a.Style != b.Style || a.Normal != b.Normal {
		return false
	}
	// Only numbers merge; identifiers stay separate so each letter keeps
	// its math italic.
	return isNumeric(a.Text) && isNumeric(b.Text) || a.Normal
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

// Text flattens the tree to a linear string, used for plain previews.
func (m *Math) Text() string {
	var b strings.Builder
	writeText(&b, m.Nodes)
	return b.String()
}

func writeText(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Run:
			b.WriteString(n.Text)
		case *Frac:
			b.WriteString("(")
			writeText(b, n.Num)
			b.WriteString(")/(")
			writeText(b, n.Den)
			b.WriteString(")")
		case *Script:
			writeText(b, n.Base)
			if n.Sub != nil {
				b.WriteString("_")
				writeGroup(b, n.Sub)
			}
			if n.Sup != nil {
				b.WriteString("^")
				writeGroup(b, n.Sup)
			}
		case *Radical:
			b.WriteString("√")
			writeGroup(b, n.Body)
		case *Nary:
			b.WriteString(n.Op)
			if n.Sub != nil {
				b.WriteString("_")
				writeGroup(b, n.Sub)
			}
			if n.Sup != nil {
				b.WriteString("^")
				writeGroup(b, n.Sup)
			}
			writeText(b, n.Body)
		case *Delim:
			b.WriteString(n.Open)
			writeText(b, n.Body)
			b.WriteString(n.Close)
		case *Accent:
			writeText(b, n.Body)
			b.WriteString(n.Char)
		case *Bar:
			writeText(b, n.Body)
		case *LimLow:
			writeText(b, n.Base)
			b.WriteString("_")
			writeGroup(b, n.Lower)
		case *Matrix:
			for i, row := range n.Rows {
				if i > 0 {
					b.WriteString("; ")
				}
				for j, cell := range row {
					if j > 0 {
						b.WriteString(", ")
					}
					writeText(b, cell)
				}
			}
		}
	}
}

func writeGroup(b *strings.Builder, nodes []Node) {
	if len(nodes) == 1 {
		if r, ok := nodes[0].(*Run); ok && len([]rune(r.Text)) == 1 {
			b.WriteString(r.Text)
			return
		}
	}
	b.WriteString("(")
	writeText(b, nodes)
	b.WriteString(")")
}

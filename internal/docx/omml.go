package docx

import (
	"strconv"

	"github.com/alnah/go-md2docx/internal/formula"
)

const mathFont = "Cambria Math"

// writeMath writes f as Office Math. Display formulas are wrapped in
// m:oMathPara so they render on their own line.
func writeMath(w *xmlWriter, f *formula.Math, display bool) {
	if display {
		w.start("m:oMathPara")
	}
	w.start("m:oMath")
	mathNodes(w, f.Nodes)
	w.end("m:oMath")
	if display {
		w.end("m:oMathPara")
	}
}

func mathNodes(w *xmlWriter, nodes []formula.Node) {
	for _, n := range nodes {
		mathNode(w, n)
	}
}

// arg writes nodes inside a wrapper element such as m:e or m:num. Empty
// arguments are still written since Word requires them.
func arg(w *xmlWriter, name string, nodes []formula.Node) {
	if len(nodes) == 0 {
		w.empty(name)
		return
	}
	w.start(name)
	mathNodes(w, nodes)
	w.end(name)
}

func mathNode(w *xmlWriter, n formula.Node) {
	switch v := n.(type) {
	case *formula.Run:
		mathRun(w, v)
	case *formula.Frac:
		w.start("m:f")
		if v.NoBar {
			w.start("m:fPr")
			w.empty("m:type", "m:val", "noBar")
			w.end("m:fPr")
		}
		arg(w, "m:num", v.Num)
		arg(w, "m:den", v.Den)
		w.end("m:f")
	case *formula.Script:
		script(w, v)
	case *formula.Radical:
		w.start("m:rad")
		if v.Degree == nil {
			w.start("m:radPr")
			w.empty("m:degHide", "m:val", "1")
			w.end("m:radPr")
		}
		arg(w, "m:deg", v.Degree)
		arg(w, "m:e", v.Body)
		w.end("m:rad")
	case *formula.Nary:
		nary(w, v)
	case *formula.Delim:
		w.start("m:d")
		w.start("m:dPr")
		w.empty("m:begChr", "m:val", v.Open)
		w.empty("m:endChr", "m:val", v.Close)
		w.end("m:dPr")
		arg(w, "m:e", v.Body)
		w.end("m:d")
	case *formula.Accent:
		w.start("m:acc")
		w.start("m:accPr")
		w.empty("m:chr", "m:val", v.Char)
		w.end("m:accPr")
		arg(w, "m:e", v.Body)
		w.end("m:acc")
	case *formula.Bar:
		pos := "bot"
		if v.Top {
			pos = "top"
		}
		w.start("m:bar")
		w.start("m:barPr")
		w.empty("m:pos", "m:val", pos)
		w.end("m:barPr")
		arg(w, "m:e", v.Body)
		w.end("m:bar")
	case *formula.LimLow:
		w.start("m:limLow")
		arg(w, "m:e", v.Base)
		arg(w, "m:lim", v.Lower)
		w.end("m:limLow")
	case *formula.Matrix:
		matrix(w, v)
	default:
		panic("docx: unknown formula node")
	}
}

func mathRun(w *xmlWriter, r *formula.Run) {
	w.start("m:r")
	switch {
	case r.Normal:
		w.start("m:rPr")
		w.empty("m:nor")
		w.end("m:rPr")
	case r.Style != formula.StyleDefault:
		w.start("m:rPr")
		w.empty("m:sty", "m:val", mathStyle(r.Style))
		w.end("m:rPr")
	}
	if !r.Normal {
		w.start("w:rPr")
		w.empty("w:rFonts", "w:ascii", mathFont, "w:hAnsi", mathFont)
		w.end("w:rPr")
	}
	w.elem("m:t", r.Text, "xml:space", "preserve")
	w.end("m:r")
}

func mathStyle(s formula.RunStyle) string {
	switch s {
	case formula.StyleBold:
		return "b"
	case formula.StyleItalic:
		return "i"
	case formula.StyleBoldItalic:
		return "bi"
	default:
		return "p"
	}
}

func script(w *xmlWriter, s *formula.Script) {
	switch {
	case s.Sub != nil && s.Sup != nil:
		w.start("m:sSubSup")
		arg(w, "m:e", s.Base)
		arg(w, "m:sub", s.Sub)
		arg(w, "m:sup", s.Sup)
		w.end("m:sSubSup")
	case s.Sub != nil:
		w.start("m:sSub")
		arg(w, "m:e", s.Base)
		arg(w, "m:sub", s.Sub)
		w.end("m:sSub")
	default:
		w.start("m:sSup")
		arg(w, "m:e", s.Base)
		arg(w, "m:sup", s.Sup)
		w.end("m:sSup")
	}
}

// Integrals put their bounds at the side, other big operators above and
// below.
var sideLimits = map[string]bool{"∫": true, "∬": true, "∭": true, "∮": true}

func nary(w *xmlWriter, n *formula.Nary) {
	w.start("m:nary")
	w.start("m:naryPr")
	w.empty("m:chr", "m:val", n.Op)
	if sideLimits[n.Op] {
		w.empty("m:limLoc", "m:val", "subSup")
	} else {
		w.empty("m:limLoc", "m:val", "undOvr")
	}
	if n.Sub == nil {
		w.empty("m:subHide", "m:val", "1")
	}
	if n.Sup == nil {
		w.empty("m:supHide", "m:val", "1")
	}
	w.end("m:naryPr")
	arg(w, "m:sub", n.Sub)
	arg(w, "m:sup", n.Sup)
	arg(w, "m:e", n.Body)
	w.end("m:nary")
}

// matrix pads short rows so every row has the same number of cells.
func matrix(w *xmlWriter, m *formula.Matrix) {
	cols := 0
	for _, row := range m.Rows {
		cols = max(cols, len(row))
	}
	cols = max(cols, 1)

	w.start("m:m")
	w.start("m:mPr")
	w.start("m:mcs")
	w.start("m:mc")
	w.start("m:mcPr")
	w.empty("m:count", "m:val", strconv.Itoa(cols))
	w.empty("m:mcJc", "m:val", "center")
	w.end("m:mcPr")
	w.end("m:mc")
	w.end("m:mcs")
	w.end("m:mPr")
	for _, row := range m.Rows {
		w.start("m:mr")
		for i := 0; i < cols; i++ {
			var cell []formula.Node
			if i < len(row) {
				cell = row[i]
			}
			arg(w, "m:e", cell)
		}
		w.end("m:mr")
	}
	w.end("m:m")
}

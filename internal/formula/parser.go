package formula

// maxDepth bounds group nesting so hostile input cannot exhaust the stack.
const maxDepth = 64

type stopFunc func(token) bool

func never(token) bool { return false }

func isClose(t token) bool { return t.kind == tokClose }

func isCommand(name string) stopFunc {
	return func(t token) bool { return t.kind == tokCommand && t.text == name }
}

type parser struct {
	lex   *lexer
	depth int
}

// parseExpr parses terms until EOF or until stop accepts the next token.
// The stopping token is left unread.
func (p *parser) parseExpr(stop stopFunc) ([]Node, error) {
	var nodes []Node
	for {
		t, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		if t.kind == tokEOF || stop(t) {
			return nodes, nil
		}
		if err := p.checkStray(t); err != nil {
			return nil, err
		}
		term, err := p.parseTerm(stop)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, term...)
	}
}

// checkStray rejects tokens that are only valid inside a construct that
// did not ask for them.
func (p *parser) checkStray(t token) error {
	switch {
	case t.kind == tokClose:
		return p.lex.errorAt(t.pos, "unbalanced braces")
	case t.kind == tokAmp || t.kind == tokRowSep:
		return p.lex.errorAt(t.pos, "alignment outside an environment")
	case t.kind == tokCommand && t.text == "right":
		return p.lex.errorAt(t.pos, `\right without \left`)
	case t.kind == tokCommand && t.text == "end":
		return p.lex.errorAt(t.pos, `\end without \begin`)
	}
	return nil
}

func (p *parser) parseTerm(stop stopFunc) ([]Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	t, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	if p.depth > maxDepth {
		return nil, p.lex.errorAt(t.pos, "nesting too deep")
	}

	var base []Node
	if t.kind != tokSup && t.kind != tokSub {
		if base, err = p.parseFactor(); err != nil {
			return nil, err
		}
	}

	var sub, sup []Node
	hasSub, hasSup := false, false
scripts:
	for {
		t, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		switch {
		case t.kind == tokSup:
			if hasSup {
				return nil, p.lex.errorAt(t.pos, "double superscript")
			}
			p.lex.next()
			arg, err := p.parseArg()
			if err != nil {
				return nil, err
			}
			sup = append(sup, arg...)
			hasSup = true
		case t.kind == tokSub:
			if hasSub {
				return nil, p.lex.errorAt(t.pos, "double subscript")
			}
			p.lex.next()
			arg, err := p.parseArg()
			if err != nil {
				return nil, err
			}
			sub = append(sub, arg...)
			hasSub = true
		case t.kind == tokChar && t.text == "'":
			p.lex.next()
			sup = append(sup, &Run{Text: "′"})
		default:
			break scripts
		}
	}
	if hasSub && sub == nil {
		sub = []Node{}
	}
	if (hasSup || len(sup) > 0) && sup == nil {
		sup = []Node{}
	}

	if len(base) == 1 {
		if n, ok := base[0].(*Nary); ok {
			n.Sub, n.Sup = sub, sup
			body, err := p.parseNaryBody(stop)
			if err != nil {
				return nil, err
			}
			n.Body = body
			return base, nil
		}
		if r, ok := base[0].(*Run); ok && r.limits && sub != nil {
			low := &LimLow{Base: base, Lower: sub}
			if sup == nil {
				return []Node{low}, nil
			}
			return []Node{&Script{Base: []Node{low}, Sup: sup}}, nil
		}
	}
	if sub == nil && sup == nil {
		return base, nil
	}
	return []Node{&Script{Base: base, Sub: sub, Sup: sup}}, nil
}

// parseNaryBody collects the operand of a big operator: everything up to
// the next additive operator or relation at the same level.
func (p *parser) parseNaryBody(stop stopFunc) ([]Node, error) {
	var body []Node
	for {
		t, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		if t.kind == tokEOF || stop(t) || p.checkStray(t) != nil {
			return body, nil
		}
		if len(body) > 0 && endsNaryBody(t) {
			return body, nil
		}
		term, err := p.parseTerm(stop)
		if err != nil {
			return nil, err
		}
		body = append(body, term...)
	}
}

func endsNaryBody(t token) bool {
	switch t.kind {
	case tokChar:
		return t.text == "+" || t.text == "-" || t.text == "," || relations[t.text]
	case tokCommand:
		s, ok := symbols[t.text]
		return ok && (s == "±" || s == "∓" || relations[s])
	}
	return false
}

func (p *parser) parseGroup() ([]Node, error) {
	open, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	nodes, err := p.parseExpr(isClose)
	if err != nil {
		return nil, err
	}
	t, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if t.kind != tokClose {
		return nil, p.lex.errorAt(open.pos, "unbalanced braces")
	}
	if nodes == nil {
		nodes = []Node{}
	}
	return nodes, nil
}

// parseArg reads a command or script argument: a group, one character or
// one command.
func (p *parser) parseArg() ([]Node, error) {
	t, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	switch t.kind {
	case tokOpen:
		return p.parseGroup()
	case tokChar:
		p.lex.next()
		return []Node{charRun(t.text)}, nil
	case tokCommand:
		if err := p.checkStray(t); err != nil {
			return nil, err
		}
		return p.parseFactor()
	}
	return nil, p.lex.errorAt(t.pos, "missing argument")
}

func (p *parser) parseFactor() ([]Node, error) {
	t, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	if t.kind == tokOpen {
		return p.parseGroup()
	}
	p.lex.next()
	switch t.kind {
	case tokChar:
		return []Node{charRun(t.text)}, nil
	case tokCommand:
		return p.command(t)
	}
	return nil, p.lex.errorAt(t.pos, "unexpected "+t.text)
}

func charRun(s string) *Run {
	switch s {
	case "-":
		s = "−"
	case "*":
		s = "∗"
	case "'":
		s = "′"
	}
	return &Run{Text: s}
}

func (p *parser) command(t token) ([]Node, error) {
	name := t.text
	if s, ok := symbols[name]; ok {
		return []Node{&Run{Text: s}}, nil
	}
	if s, ok := spaces[name]; ok {
		if s == "" {
			return nil, nil
		}
		return []Node{&Run{Text: s, Normal: true}}, nil
	}
	if ignored[name] {
		return nil, nil
	}
	if functions[name] {
		return []Node{&Run{Text: name, Style: StylePlain}}, nil
	}
	if limitFunctions[name] {
		text := name
		if n, ok := limitNames[name]; ok {
			text = n
		}
		return []Node{&Run{Text: text, Style: StylePlain, limits: true}}, nil
	}
	if op, ok := naryOps[name]; ok {
		return []Node{&Nary{Op: op}}, nil
	}
	if mark, ok := accents[name]; ok {
		body, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		return []Node{&Accent{Char: mark, Body: body}}, nil
	}
	if a, ok := alphabets[name]; ok {
		text, err := p.letters()
		if err != nil {
			return nil, err
		}
		return []Node{&Run{Text: a.mapString(text), Style: StylePlain}}, nil
	}

	switch name {
	case "frac", "dfrac", "tfrac", "cfrac":
		return p.fraction(false)
	case "binom", "dbinom", "tbinom":
		f, err := p.fraction(true)
		if err != nil {
			return nil, err
		}
		return []Node{&Delim{Open: "(", Close: ")", Body: f}}, nil
	case "sqrt":
		return p.radical()
	case "left":
		return p.leftRight(t)
	case "begin":
		return p.environment(t)
	case "overline", "underline":
		body, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		return []Node{&Bar{Top: name == "overline", Body: body}}, nil
	case "text", "textrm", "mbox", "textnormal":
		return p.text(StyleDefault)
	case "textbf":
		return p.text(StyleBold)
	case "textit":
		return p.text(StyleItalic)
	case "operatorname", "operatorname*":
		raw, err := p.lex.rawGroup()
		if err != nil {
			return nil, err
		}
		return []Node{&Run{Text: raw, Style: StylePlain, limits: name == "operatorname*"}}, nil
	case "mathrm", "mathup", "mathsf", "mathtt":
		return p.styled(StylePlain)
	case "mathbf":
		return p.styled(StyleBold)
	case "boldsymbol", "bm":
		return p.styled(StyleBoldItalic)
	case "mathit":
		return p.styled(StyleItalic)
	case "not":
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		if len(arg) == 1 {
			if r, ok := arg[0].(*Run); ok {
				r.Text += "̸"
			}
		}
		return arg, nil
	case "{", "}", "%", "$", "#", "&", "_":
		return []Node{&Run{Text: name}}, nil
	case "|":
		return []Node{&Run{Text: "‖"}}, nil
	}
	return nil, p.lex.errorAt(t.pos, `unsupported command \`+name)
}

func (p *parser) fraction(noBar bool) ([]Node, error) {
	num, err := p.parseArg()
	if err != nil {
		return nil, err
	}
	den, err := p.parseArg()
	if err != nil {
		return nil, err
	}
	return []Node{&Frac{Num: num, Den: den, NoBar: noBar}}, nil
}

func (p *parser) radical() ([]Node, error) {
	t, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	var degree []Node
	if t.kind == tokChar && t.text == "[" {
		p.lex.next()
		degree, err = p.parseExpr(func(t token) bool { return t.kind == tokChar && t.text == "]" })
		if err != nil {
			return nil, err
		}
		end, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if end.kind != tokChar || end.text != "]" {
			return nil, p.lex.errorAt(t.pos, "unterminated root degree")
		}
	}
	body, err := p.parseArg()
	if err != nil {
		return nil, err
	}
	return []Node{&Radical{Degree: degree, Body: body}}, nil
}

func (p *parser) leftRight(left token) ([]Node, error) {
	open, err := p.delimiter()
	if err != nil {
		return nil, err
	}
	body, err := p.parseExpr(isCommand("right"))
	if err != nil {
		return nil, err
	}
	t, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if t.kind != tokCommand || t.text != "right" {
		return nil, p.lex.errorAt(left.pos, `\left without \right`)
	}
	closing, err := p.delimiter()
	if err != nil {
		return nil, err
	}
	return []Node{&Delim{Open: open, Close: closing, Body: body}}, nil
}

func (p *parser) delimiter() (string, error) {
	t, err := p.lex.next()
	if err != nil {
		return "", err
	}
	switch t.kind {
	case tokChar:
		switch t.text {
		case ".":
			return "", nil
		case "<":
			return "⟨", nil
		case ">":
			return "⟩", nil
		case "(", ")", "[", "]", "|", "/":
			return t.text, nil
		}
	case tokCommand:
		switch t.text {
		case "{", "}":
			return t.text, nil
		case "|":
			return "‖", nil
		}
		if s, ok := symbols[t.text]; ok {
			return s, nil
		}
	}
	return "", p.lex.errorAt(t.pos, "missing delimiter")
}

func (p *parser) environment(begin token) ([]Node, error) {
	name, err := p.lex.rawGroup()
	if err != nil {
		return nil, err
	}
	fences, ok := matrixDelims[name]
	if !ok {
		return nil, p.lex.errorAt(begin.pos, "unsupported environment "+name)
	}
	if name == "array" {
		// Column specification.
		if _, err := p.lex.rawGroup(); err != nil {
			return nil, err
		}
	}

	cellEnd := func(t token) bool {
		return t.kind == tokAmp || t.kind == tokRowSep || (t.kind == tokCommand && t.text == "end")
	}
	var rows [][][]Node
	var row [][]Node
	for {
		cell, err := p.parseExpr(cellEnd)
		if err != nil {
			return nil, err
		}
		row = append(row, cell)
		t, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case tokAmp:
			continue
		case tokRowSep:
			rows = append(rows, row)
			row = nil
			continue
		case tokEOF:
			return nil, p.lex.errorAt(begin.pos, `missing \end{`+name+"}")
		}
		// \end
		endName, err := p.lex.rawGroup()
		if err != nil {
			return nil, err
		}
		if endName != name {
			return nil, p.lex.errorAt(t.pos, `\begin{`+name+`} closed by \end{`+endName+"}")
		}
		if !(len(row) == 1 && len(row[0]) == 0 && len(rows) > 0) {
			rows = append(rows, row)
		}
		break
	}

	m := &Matrix{Rows: rows}
	if fences[0] == "" && fences[1] == "" {
		return []Node{m}, nil
	}
	return []Node{&Delim{Open: fences[0], Close: fences[1], Body: []Node{m}}}, nil
}

// text reads a text-mode argument verbatim.
func (p *parser) text(style RunStyle) ([]Node, error) {
	raw, err := p.lex.rawGroup()
	if err != nil {
		return nil, err
	}
	return []Node{&Run{Text: raw, Style: style, Normal: true}}, nil
}

func (p *parser) styled(style RunStyle) ([]Node, error) {
	arg, err := p.parseArg()
	if err != nil {
		return nil, err
	}
	walkRuns(arg, func(r *Run) {
		if !r.Normal {
			r.Style = style
		}
	})
	return arg, nil
}

// letters reads the argument of an alphabet command, braced or a single
// character.
func (p *parser) letters() (string, error) {
	t, err := p.lex.peek()
	if err != nil {
		return "", err
	}
	if t.kind == tokChar {
		p.lex.next()
		return t.text, nil
	}
	return p.lex.rawGroup()
}

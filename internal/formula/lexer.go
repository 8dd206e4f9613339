package formula

import (
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokChar
	tokCommand
	tokOpen
	tokClose
	tokSup
	tokSub
	tokAmp
	tokRowSep
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer produces tokens on demand so the parser can switch to raw reading
// for text-mode arguments.
type lexer struct {
	src    string
	pos    int
	peeked *token
}

func (l *lexer) peek() (token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	t, err := l.scan()
	if err != nil {
		return token{}, err
	}
	l.peeked = &t
	return t, nil
}

func (l *lexer) next() (token, error) {
	t, err := l.peek()
	l.peeked = nil
	return t, err
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

func (l *lexer) scan() (token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}
	c := l.src[l.pos]
	switch c {
	case '{':
		l.pos++
		return token{kind: tokOpen, text: "{", pos: start}, nil
	case '}':
		l.pos++
		return token{kind: tokClose, text: "}", pos: start}, nil
	case '^':
		l.pos++
		return token{kind: tokSup, text: "^", pos: start}, nil
	case '_':
		l.pos++
		return token{kind: tokSub, text: "_", pos: start}, nil
	case '&':
		l.pos++
		return token{kind: tokAmp, text: "&", pos: start}, nil
	case '\\':
		return l.scanCommand()
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	return token{kind: tokChar, text: string(r), pos: start}, nil
}

func (l *lexer) scanCommand() (token, error) {
	start := l.pos
	l.pos++ // backslash
	if l.pos >= len(l.src) {
		return token{}, l.errorAt(start, "trailing backslash")
	}
	if l.src[l.pos] == '\\' {
		l.pos++
		return token{kind: tokRowSep, text: `\\`, pos: start}, nil
	}
	nameStart := l.pos
	for l.pos < len(l.src) && isLetter(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == nameStart {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		l.pos += size
		return token{kind: tokCommand, text: string(r), pos: start}, nil
	}
	// Starred environments and operators (\operatorname*) keep the star.
	if l.pos < len(l.src) && l.src[l.pos] == '*' && l.src[nameStart:l.pos] == "operatorname" {
		l.pos++
	}
	return token{kind: tokCommand, text: l.src[nameStart:l.pos], pos: start}, nil
}

// rawGroup reads a brace-delimited argument verbatim, honoring nesting.
func (l *lexer) rawGroup() (string, error) {
	if l.peeked != nil {
		if l.peeked.kind != tokOpen {
			return "", l.errorAt(l.peeked.pos, "expected {")
		}
		l.peeked = nil
	} else {
		l.skipSpace()
		if l.pos >= len(l.src) || l.src[l.pos] != '{' {
			return "", l.errorAt(l.pos, "expected {")
		}
		l.pos++
	}
	start := l.pos
	depth := 1
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				text := l.src[start:l.pos]
				l.pos++
				return text, nil
			}
		}
		l.pos++
	}
	return "", l.errorAt(start-1, "unbalanced braces")
}

func (l *lexer) errorAt(pos int, reason string) *SyntaxError {
	if pos > len(l.src) {
		pos = len(l.src)
	}
	end := pos + 16
	if end > len(l.src) {
		end = len(l.src)
	}
	for end < len(l.src) && !utf8.RuneStart(l.src[end]) {
		end++
	}
	return &SyntaxError{Source: l.src, Offset: pos, Snippet: l.src[pos:end], Reason: reason}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

package paradox

import (
	"bytes"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokOperator
	tokString
	tokWord
)

type token struct {
	kind tokenKind
	text string
	line int
}

type lexer struct {
	src  []byte
	pos  int
	line int
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

func newLexer(src []byte) *lexer {
	src = bytes.TrimPrefix(src, utf8BOM)
	return &lexer{src: src, line: 1}
}

func isWordByte(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '{', '}', '=', '<', '>', '!', '#', '"', '?':
		return false
	}
	return true
}

func (l *lexer) next() token {
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		switch b {
		case ' ', '\t', '\r':
			l.pos++
			continue
		case '\n':
			l.pos++
			l.line++
			continue
		case '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		break
	}

	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}
	}

	start := l.line
	b := l.src[l.pos]
	switch b {
	case '{':
		l.pos++
		return token{kind: tokLBrace, text: "{", line: start}
	case '}':
		l.pos++
		return token{kind: tokRBrace, text: "}", line: start}
	case '=':
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
			return token{kind: tokOperator, text: "==", line: start}
		}
		return token{kind: tokOperator, text: "=", line: start}
	case '<', '>':
		l.pos++
		op := string(b)
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
			op += "="
		}
		return token{kind: tokOperator, text: op, line: start}
	case '!':
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
			return token{kind: tokOperator, text: "!=", line: start}
		}
		// Stray '!' has no meaning; treat it as a word so the parser can
		// skip it as a bare value.
		return token{kind: tokWord, text: "!", line: start}
	case '?':
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
			return token{kind: tokOperator, text: "?=", line: start}
		}
		return token{kind: tokWord, text: "?", line: start}
	case '"':
		return l.lexString(start)
	default:
		return l.lexWord(start)
	}
}

func (l *lexer) lexString(startLine int) token {
	l.pos++ // opening quote
	var buf bytes.Buffer
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		if b == '\\' && l.pos+1 < len(l.src) {
			next := l.src[l.pos+1]
			if next == '"' || next == '\\' {
				buf.WriteByte(next)
				l.pos += 2
				continue
			}
		}
		if b == '"' {
			l.pos++
			return token{kind: tokString, text: buf.String(), line: startLine}
		}
		if b == '\n' {
			l.line++
		}
		buf.WriteByte(b)
		l.pos++
	}
	// Unterminated string: tolerate, the rest of the file is the value.
	return token{kind: tokString, text: buf.String(), line: startLine}
}

func (l *lexer) lexWord(startLine int) token {
	start := l.pos
	for l.pos < len(l.src) && isWordByte(l.src[l.pos]) {
		l.pos++
	}
	return token{kind: tokWord, text: string(l.src[start:l.pos]), line: startLine}
}

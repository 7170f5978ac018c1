package token

import (
	"strconv"

	"github.com/go-ccfe/cinit/internal/source"
)

// Lex is a small tokenizer covering exactly the vocabulary the
// initializer package and its tests need: identifiers, integer
// literals, double-quoted string literals, and single-character
// punctuation (`{ } [ ] ( ) . , = &`). It is not a C tokenizer -- a real
// front end supplies its own chain of *Token the same shape the
// teacher's tokenize.go produces, and hands the cursor straight to
// Initializer.
func Lex(file *source.File) *Token {
	text := file.Contents
	var head, tail *Token
	push := func(t *Token) {
		if head == nil {
			head = t
			tail = t
		} else {
			tail.Next = t
			tail = t
		}
	}

	line, col := 1, 1
	advance := func(n int) {
		for i := 0; i < n; i++ {
			if text[0] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
			text = text[1:]
		}
	}
	pos := func() source.Pos { return source.Pos{File: file, Line: line, Col: col} }

	for len(text) > 0 {
		switch c := text[0]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			advance(1)
		case c == '"':
			p := pos()
			i := 1
			var buf []byte
			for i < len(text) && text[i] != '"' {
				if text[i] == '\\' && i+1 < len(text) {
					i++
				}
				buf = append(buf, text[i])
				i++
			}
			advance(i + 1)
			push(&Token{Kind: STR, Str: string(buf), Pos: p})
		case isDigit(c):
			p := pos()
			i := 0
			for i < len(text) && isDigit(text[i]) {
				i++
			}
			v, _ := strconv.ParseInt(string(text[:i]), 10, 64)
			advance(i)
			push(&Token{Kind: NUM, Value: v, Pos: p})
		case isIdentStart(c):
			p := pos()
			i := 0
			for i < len(text) && isIdentPart(text[i]) {
				i++
			}
			name := string(text[:i])
			advance(i)
			push(&Token{Kind: IDENT, Text: name, Pos: p})
		default:
			p := pos()
			advance(1)
			push(&Token{Kind: PUNCT, Text: string(c), Pos: p})
		}
	}
	push(&Token{Kind: EOF, Pos: pos()})
	return head
}

func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isIdentStart(b byte) bool { return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isIdentPart(b byte) bool  { return isIdentStart(b) || isDigit(b) }

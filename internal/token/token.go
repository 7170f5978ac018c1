// Package token provides the pull-based token cursor the initializer
// package treats as an external collaborator. The Token struct itself
// is adapted from the teacher's tokenize.go/token.go (a singly linked
// list produced by a full tokenizer); Cursor wraps that chain behind the
// peek/peekn/next/consume contract spec.md ?6 requires, matching
// _examples/original_source's lacc-style cursor instead of chibicc's
// **rest/tok threading.
package token

import (
	"fmt"

	"github.com/go-ccfe/cinit/internal/source"
)

type Kind int

const (
	IDENT  Kind = iota // identifier
	PUNCT              // punctuation: { } [ ] . , = ( ) etc
	NUM                // integer constant
	STR                // string literal
	EOF
)

// Token is one lexical token. Next chains tokens the way the teacher's
// tokenizer does; Cursor never mutates this chain, only walks it.
type Token struct {
	Kind  Kind
	Text  string // punctuator spelling, or identifier name
	Value int64  // for NUM
	Str   string // decoded contents, for STR
	Pos   source.Pos
	Next  *Token
}

func (t *Token) String() string {
	if t == nil {
		return "<eof>"
	}
	switch t.Kind {
	case STR:
		return fmt.Sprintf("%q", t.Str)
	case NUM:
		return fmt.Sprintf("%d", t.Value)
	default:
		return t.Text
	}
}

// Cursor is a non-destructive, pull-based reader over a Token chain.
// Peek/PeekN never advance; Next/Consume do.
type Cursor struct {
	cur  *Token
	diag source.Diagnostics
}

func NewCursor(head *Token, diag source.Diagnostics) *Cursor {
	return &Cursor{cur: head, diag: diag}
}

// Peek returns the token under the cursor without consuming it.
func (c *Cursor) Peek() *Token {
	return c.cur
}

// PeekN returns the token k places ahead (PeekN(1) == Peek()).
func (c *Cursor) PeekN(k int) *Token {
	t := c.cur
	for i := 1; i < k && t != nil; i++ {
		t = t.Next
	}
	return t
}

// Next consumes and returns the token under the cursor.
func (c *Cursor) Next() *Token {
	t := c.cur
	if t != nil && t.Kind != EOF {
		c.cur = t.Next
	}
	return t
}

// Is reports whether the current token is punctuation matching text.
func (c *Cursor) Is(text string) bool {
	t := c.cur
	return t != nil && t.Kind == PUNCT && t.Text == text
}

// IsN reports whether the token k places ahead is punctuation matching text.
func (c *Cursor) IsN(k int, text string) bool {
	t := c.PeekN(k)
	return t != nil && t.Kind == PUNCT && t.Text == text
}

// Consume requires the current token to be punctuation matching text,
// reporting fatally through the diagnostic sink on mismatch -- this is
// the "consume(tok)" collaborator spec.md ?6 calls out as fatal on
// mismatch.
func (c *Cursor) Consume(text string) *Token {
	if !c.Is(text) {
		c.diag.Fatalf(c.pos(), "expected '%s'", text)
	}
	return c.Next()
}

// ConsumeIdent requires the current token to be an identifier, reporting
// fatally through the diagnostic sink otherwise; used for struct-member
// and variable-name designators.
func (c *Cursor) ConsumeIdent() *Token {
	if c.cur == nil || c.cur.Kind != IDENT {
		c.diag.Fatalf(c.pos(), "expected an identifier")
	}
	return c.Next()
}

// TryConsume consumes the current token if it matches text and reports
// whether it did, without aborting on mismatch.
func (c *Cursor) TryConsume(text string) bool {
	if c.Is(text) {
		c.Next()
		return true
	}
	return false
}

func (c *Cursor) pos() source.Pos {
	if c.cur == nil {
		return source.Pos{}
	}
	return c.cur.Pos
}

// Diag exposes the cursor's diagnostic sink so collaborators that only
// hold a Cursor (the element reader, designator parsing) can still
// report errors tied to the current token's position.
func (c *Cursor) Diag() source.Diagnostics { return c.diag }

// Pos returns the position of the token currently under the cursor.
func (c *Cursor) Pos() source.Pos { return c.pos() }

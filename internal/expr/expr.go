// Package expr is the expression-parser collaborator spec.md ?1 and ?6
// name as out of scope for the initializer itself but require it to
// call into: assignment_expression and constant_expression. This is a
// deliberately small grammar -- literals, identifiers, &ident, and
// ident(args) calls -- sufficient for the initializer scenarios spec.md
// ?8 enumerates and for _examples/original_source's load-time-constant
// classification tests. A real front end would wire the initializer
// package to its own, much larger, expression parser instead.
package expr

import (
	"github.com/go-ccfe/cinit/internal/ctype"
	"github.com/go-ccfe/cinit/internal/ir"
	"github.com/go-ccfe/cinit/internal/sym"
	"github.com/go-ccfe/cinit/internal/token"
)

// Lookup resolves an identifier to its symbol, the way a real parser
// would consult the enclosing scope chain.
type Lookup func(name string) *sym.Symbol

type Parser struct {
	lookup Lookup
}

func NewParser(lookup Lookup) *Parser {
	return &Parser{lookup: lookup}
}

// AssignmentExpression parses exactly one assignment-expression and
// returns it. This toy grammar has no operators needing precedence
// climbing; it recognizes:
//
//	NUM                    -> Immediate
//	STR                    -> DirectRef to a synthesized literal symbol
//	IDENT                  -> DirectRef to the bound symbol
//	'&' IDENT              -> Address of the bound symbol
//	IDENT '(' args... ')'  -> Call
func (p *Parser) AssignmentExpression(cur *token.Cursor) *ir.Expr {
	if cur.Is("&") {
		cur.Next()
		name := cur.ConsumeIdent()
		s := p.resolve(cur, name)
		return &ir.Expr{
			Kind: ir.Address,
			Type: ctype.NewPointer(s.Type),
			Ref:  ir.Var{Symbol: symAdapter{s}, Kind: ir.Direct, Type: s.Type},
		}
	}

	t := cur.Peek()
	switch t.Kind {
	case token.NUM:
		cur.Next()
		return &ir.Expr{Kind: ir.Immediate, Type: ctype.IntT, Imm: t.Value}
	case token.STR:
		cur.Next()
		lit := literalSymbol(t.Str)
		return &ir.Expr{
			Kind: ir.DirectRef,
			Type: lit.Type,
			Ref:  ir.Var{Symbol: symAdapter{lit}, Kind: ir.Direct, Type: lit.Type},
		}
	case token.IDENT:
		cur.Next()
		if cur.Is("(") {
			return p.parseCall(cur, t.Text)
		}
		s := p.resolve(cur, t)
		return &ir.Expr{
			Kind: ir.DirectRef,
			Type: s.Type,
			Ref:  ir.Var{Symbol: symAdapter{s}, Kind: ir.Direct, Type: s.Type},
		}
	default:
		cur.Diag().Fatalf(cur.Pos(), "expected an expression")
		return nil
	}
}

// ConstantExpression is constant_expression: an integer-constant
// expression, used by array designators (spec.md ?4.2 "[n]"). This toy
// grammar accepts only a bare integer literal.
func (p *Parser) ConstantExpression(cur *token.Cursor) int64 {
	t := cur.Peek()
	if t == nil || t.Kind != token.NUM {
		cur.Diag().Fatalf(cur.Pos(), "expected an integer constant expression")
		return 0
	}
	cur.Next()
	return t.Value
}

func (p *Parser) parseCall(cur *token.Cursor, callee string) *ir.Expr {
	cur.Consume("(")
	var args []*ir.Expr
	for !cur.Is(")") {
		args = append(args, p.AssignmentExpression(cur))
		if !cur.TryConsume(",") {
			break
		}
	}
	cur.Consume(")")
	return &ir.Expr{
		Kind: ir.Call,
		Type: ctype.IntT,
		Call: &ir.CallExpr{Callee: callee, Args: args},
	}
}

func (p *Parser) resolve(cur *token.Cursor, t *token.Token) *sym.Symbol {
	s := p.lookup(t.Text)
	if s == nil {
		cur.Diag().Fatalf(t.Pos, "undeclared identifier '%s'", t.Text)
	}
	return s
}

// symAdapter satisfies ir.Symbol for a *sym.Symbol without an import
// cycle between ir and sym.
type symAdapter struct{ s *sym.Symbol }

func (a symAdapter) SymbolName() string { return a.s.Name }

// Sym wraps a *sym.Symbol as an ir.Symbol. Exported so callers outside
// this package (the initializer entry coordinator, building the root
// object's Var directly from a declared symbol rather than by parsing
// an expression) produce the same adapter type Unwrap recognizes.
func Sym(s *sym.Symbol) ir.Symbol {
	return symAdapter{s}
}

// Unwrap returns the underlying *sym.Symbol, used by the initializer
// package's load-time-constant check (which needs the Linkage field).
func Unwrap(v ir.Symbol) *sym.Symbol {
	if a, ok := v.(symAdapter); ok {
		return a.s
	}
	return nil
}

func literalSymbol(s string) *sym.Symbol {
	elemType := ctype.CharT
	arr := ctype.NewArrayType(elemType, int64(len(s))+1)
	return &sym.Symbol{Name: "\"" + s + "\"", Type: arr, Linkage: sym.LinkLiteral, IsArray: true}
}

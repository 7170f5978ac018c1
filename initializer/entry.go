package initializer

import (
	"github.com/go-ccfe/cinit/internal/expr"
	"github.com/go-ccfe/cinit/internal/ir"
	"github.com/go-ccfe/cinit/internal/sym"
	"github.com/go-ccfe/cinit/internal/token"
)

// Initializer is the entry coordinator, spec.md ?4.1 and ?6's
// `initializer(def, block, sym) -> block`. Given a symbol whose declared
// type is complete enough to begin initialization and a cursor
// positioned at the first token of the initializer body, it appends the
// lowered, padded assignment list to block and returns it.
//
// Precondition: block.HasInitValue is clear and cur is positioned at the
// initializer's first token. Postcondition: the returned block's
// HasInitValue is clear.
func Initializer(c *Context, cur *token.Cursor, exprParser *expr.Parser, block *ir.Block, s *sym.Symbol) *ir.Block {
	inner := newCtx(c, cur, exprParser)
	target := ir.Var{Symbol: expr.Sym(s), Kind: ir.Direct, Type: s.Type}

	if cur.Is("{") || s.Type.IsArray() {
		values := inner.pool.acquire()
		initializeObject(inner, block, values, target)
		values = postprocessObjectInitialization(inner, values, target)
		block.Concat(values)
		inner.pool.release(values)
	} else {
		readInitializerElement(inner, block, target)
		inner.ir.EvalAssign(block, target, block.PendingExpr)
		block.HasInitValue = false
		block.PendingExpr = nil
	}

	if block.HasInitValue {
		panic("initializer: pending value leaked past Initializer")
	}
	return block
}

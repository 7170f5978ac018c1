package initializer

import (
	"testing"

	"github.com/go-ccfe/cinit/internal/ctype"
	"github.com/go-ccfe/cinit/internal/expr"
	"github.com/go-ccfe/cinit/internal/ir"
	"github.com/go-ccfe/cinit/internal/source"
	"github.com/go-ccfe/cinit/internal/sym"
	"github.com/go-ccfe/cinit/internal/token"
)

// lower lexes src as a standalone initializer and lowers it against a
// fresh symbol "v" of type typ with the given linkage, returning the
// emitted block. lookup resolves identifiers the initializer expression
// references; pass nil if src needs none.
func lower(t *testing.T, src string, typ *ctype.Type, linkage sym.Linkage, lookup expr.Lookup) (*ir.Block, *sym.Symbol) {
	t.Helper()
	if lookup == nil {
		lookup = func(string) *sym.Symbol { return nil }
	}
	diag := &source.CollectingDiagnostics{}
	file := &source.File{Name: "test.c", Contents: []byte(src)}
	cur := token.NewCursor(token.Lex(file), diag)
	s := &sym.Symbol{Name: "v", Type: typ, Linkage: linkage}

	c := NewContext()
	block := ir.NewBlock()

	aborted := false
	func() {
		defer source.Recover(&aborted)
		Initializer(c, cur, expr.NewParser(lookup), block, s)
	}()
	c.Finalize()

	if aborted || len(diag.Fatals) != 0 {
		t.Fatalf("lower(%q): unexpected fatal diagnostics: %v", src, diag.Fatals)
	}
	return block, s
}

// expectFatal lowers src and asserts it aborts with a fatal diagnostic,
// returning the recorded messages.
func expectFatal(t *testing.T, src string, typ *ctype.Type, linkage sym.Linkage) []string {
	t.Helper()
	diag := &source.CollectingDiagnostics{}
	file := &source.File{Name: "test.c", Contents: []byte(src)}
	cur := token.NewCursor(token.Lex(file), diag)
	s := &sym.Symbol{Name: "v", Type: typ, Linkage: linkage}

	c := NewContext()
	block := ir.NewBlock()

	aborted := false
	func() {
		defer source.Recover(&aborted)
		Initializer(c, cur, expr.NewParser(func(string) *sym.Symbol { return nil }), block, s)
	}()

	if !aborted {
		t.Fatalf("lower(%q): expected a fatal diagnostic, got none", src)
	}
	return diag.Fatals
}

func findAssign(t *testing.T, block *ir.Block, offset int64) ir.Stmt {
	t.Helper()
	for _, st := range block.Code {
		if st.Op == ir.Assign && st.Target.Offset == offset && st.Target.FieldWidth == 0 {
			return st
		}
	}
	t.Fatalf("no Assign statement found at offset %d in %#v", offset, block.Code)
	return ir.Stmt{}
}

func structType(tag string, members []ctype.Member, align int64) *ctype.Type {
	return ctype.NewStructType(tag, members, align)
}

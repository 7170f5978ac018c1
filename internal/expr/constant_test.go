package expr

import (
	"testing"

	"github.com/go-ccfe/cinit/internal/source"
	"github.com/go-ccfe/cinit/internal/token"
)

func TestConstantExpression(t *testing.T) {
	file := &source.File{Name: "t.c", Contents: []byte("7")}
	cur := token.NewCursor(token.Lex(file), &source.CollectingDiagnostics{})
	n := NewParser(nil).ConstantExpression(cur)
	if n != 7 {
		t.Fatalf("expected 7, got %d", n)
	}
}

func TestConstantExpressionRejectsNonInteger(t *testing.T) {
	diag := &source.CollectingDiagnostics{}
	file := &source.File{Name: "t.c", Contents: []byte("x")}
	cur := token.NewCursor(token.Lex(file), diag)

	aborted := false
	func() {
		defer source.Recover(&aborted)
		NewParser(nil).ConstantExpression(cur)
	}()
	if !aborted {
		t.Fatalf("expected a fatal diagnostic for a non-integer constant expression")
	}
}

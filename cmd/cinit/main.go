// Command cinit is a demonstration driver for the initializer package: it
// lexes a standalone initializer expression, lowers it against one of a
// handful of canned object types, and prints the resulting assignment
// list. A real front end would call initializer.Initializer directly from
// its own declaration parser instead of shelling out to this binary.
package main

import (
	"fmt"
	"os"

	"modernc.org/opt"

	"github.com/go-ccfe/cinit/initializer"
	"github.com/go-ccfe/cinit/internal/ctype"
	"github.com/go-ccfe/cinit/internal/expr"
	"github.com/go-ccfe/cinit/internal/ir"
	"github.com/go-ccfe/cinit/internal/source"
	"github.com/go-ccfe/cinit/internal/sym"
	"github.com/go-ccfe/cinit/internal/token"
)

var (
	typeName string
	debug    bool
	input    string
)

func usage(status int) {
	fmt.Fprintln(os.Stderr, "cinit -type <int|array|struct|union|bitfield> [-debug] <file>")
	fmt.Fprintln(os.Stderr, "  <file> holds a bare initializer, e.g. '{1, 2, 3}'")
	os.Exit(status)
}

func formatExpr(e *ir.Expr) string {
	switch e.Kind {
	case ir.Immediate:
		return fmt.Sprintf("%d", e.Imm)
	case ir.DirectRef:
		return e.Ref.Symbol.SymbolName()
	case ir.Address:
		return "&" + e.Ref.Symbol.SymbolName()
	case ir.Call:
		return e.Call.Callee + "(...)"
	default:
		return "?"
	}
}

func canned(name string) *ctype.Type {
	switch name {
	case "int":
		return ctype.IntT
	case "array":
		return ctype.NewArrayType(ctype.IntT, 4)
	case "struct":
		return ctype.NewStructType("point", []ctype.Member{
			{Name: "x", Type: ctype.IntT, Offset: 0},
			{Name: "y", Type: ctype.IntT, Offset: 4},
			{Name: "tag", Type: ctype.CharT, Offset: 8},
		}, 4)
	case "union":
		return ctype.NewUnionType("slot", []ctype.Member{
			{Name: "i", Type: ctype.IntT},
			{Name: "c", Type: ctype.CharT},
		}, 4)
	case "bitfield":
		return ctype.NewStructType("flags", []ctype.Member{
			{Name: "a", Type: ctype.IntT, IsBitField: true, FieldWidth: 3},
			{Name: "b", Type: ctype.IntT, IsBitField: true, FieldOffset: 3, FieldWidth: 5},
		}, 4)
	default:
		return nil
	}
}

func main() {
	set := opt.NewSet()
	set.Arg("type", false, func(arg, value string) error { typeName = value; return nil })
	set.Opt("debug", func(arg string) error { debug = true; return nil })

	if err := set.Parse(os.Args[1:], func(arg string) error {
		if input != "" {
			return fmt.Errorf("unexpected extra argument: %s", arg)
		}
		input = arg
		return nil
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage(1)
	}

	if typeName == "" || input == "" {
		usage(1)
	}

	t := canned(typeName)
	if t == nil {
		fmt.Fprintf(os.Stderr, "cinit: unknown -type %q\n", typeName)
		usage(1)
	}

	contents, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	diag := source.StderrDiagnostics{}
	file := &source.File{Name: input, Contents: contents}
	head := token.Lex(file)
	cur := token.NewCursor(head, diag)

	s := &sym.Symbol{Name: "v", Type: t, Linkage: sym.LinkInternal}
	parser := expr.NewParser(func(string) *sym.Symbol { return nil })
	c := initializer.NewContext()
	block := ir.NewBlock()

	initializer.Initializer(c, cur, parser, block, s)
	c.Finalize()

	for _, st := range block.Code {
		op := "="
		if st.Op == ir.Cast {
			op = "= (cast)"
		}
		if st.Target.FieldWidth != 0 {
			fmt.Printf("%s@%d:%d+%d %s %s\n", s.Name, st.Target.Offset, st.Target.FieldOffset, st.Target.FieldWidth, op, formatExpr(st.Expr))
		} else {
			fmt.Printf("%s@%d %s %s\n", s.Name, st.Target.Offset, op, formatExpr(st.Expr))
		}
	}

	if debug {
		fmt.Fprintf(os.Stderr, "cinit: %d statements emitted\n", len(block.Code))
	}
}

package initializer

import (
	"github.com/dustin/go-humanize"

	"github.com/go-ccfe/cinit/internal/source"
	"github.com/go-ccfe/cinit/internal/token"
)

// Error taxonomy from spec.md ?7. All are fatal to the translation unit
// and are reported through the cursor's diagnostic sink rather than
// returned, matching the original's error()/exit(1) policy -- a host
// front end that wants recoverable errors supplies a source.Diagnostics
// that panics with a typed value instead of calling os.Exit.

func errVoidInitializer(cur *token.Cursor) {
	cur.Diag().Fatalf(cur.Pos(), "cannot initialize with void value")
}

func errNonLoadtimeConstant(cur *token.Cursor) {
	cur.Diag().Fatalf(cur.Pos(), "initializer must be computable at load time")
}

func errUnknownMember(cur *token.Cursor, typeName, member string) {
	cur.Diag().Fatalf(cur.Pos(), "%s has no member named %s", typeName, member)
}

func errNonIntegerArrayIndex(cur *token.Cursor) {
	cur.Diag().Fatalf(cur.Pos(), "array designator must have integer value")
}

func errFlexibleArrayInit(cur *token.Cursor) {
	cur.Diag().Fatalf(cur.Pos(), "invalid initialization of flexible array member")
}

func errUnsupportedZeroInit(diag source.Diagnostics, pos source.Pos, kind string) {
	diag.Fatalf(pos, "cannot zero-initialize object of kind %s", kind)
}

// errArrayDesignatorOutOfBounds reports an out-of-range "[n]"
// designator into a complete array: the index, the element count
// (comma-grouped) and the element size in human-readable form, the way
// ccgo's own diagnostics report aggregate sizes. Arrays of unknown
// length are never checked against it.
func errArrayDesignatorOutOfBounds(cur *token.Cursor, index, count int64, elemSize int64) {
	cur.Diag().Fatalf(cur.Pos(),
		"array designator index %d exceeds array of %s (%d elements of %s each)",
		index, humanize.Comma(count), count, humanize.Bytes(uint64(elemSize)))
}

// errPaddingRunTooLarge guards against a degenerate zero-fill request
// (e.g. a corrupt or adversarial type size) ballooning into an
// unreasonable number of synthesized statements; reported in human
// units for the same reason as above.
func errPaddingRunTooLarge(diag source.Diagnostics, pos source.Pos, n int64) {
	diag.Fatalf(pos, "refusing to zero-fill a %s padding run", humanize.Bytes(uint64(n)))
}

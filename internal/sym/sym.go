// Package sym is the symbol table the initializer package treats as an
// external collaborator. Symbol is adapted from the teacher's Obj
// (obj.go), trimmed to what initializer lowering needs, with an
// explicit Linkage enum reconstructed from the teacher's
// IsLocal/IsStatic booleans -- the teacher has no linkage field, but
// _examples/original_source's symbol model (`sym->linkage != LINK_NONE`)
// is what spec.md ?4.2's element reader keys its load-time-constant
// check on, so Linkage is promoted to a first-class field here.
package sym

import "github.com/go-ccfe/cinit/internal/ctype"

type Linkage int

const (
	// LinkNone: automatic-storage local variable. No load-time-constant
	// restriction applies to its initializer.
	LinkNone Linkage = iota
	// LinkInternal: static storage, translation-unit-local (C's "static").
	LinkInternal
	// LinkExternal: static storage, externally visible.
	LinkExternal
	// LinkLiteral marks string-literal symbols synthesized by the
	// tokenizer/expression parser -- used by the array walker's
	// string-initializer special case (spec.md ?4.2 initialize_array).
	LinkLiteral
)

// Symbol is a named object: a local, a global/static variable, a
// function, or a synthesized string-literal constant.
type Symbol struct {
	Name     string
	Type     *ctype.Type
	Linkage  Linkage
	IsArray  bool
	Function bool
}

// HasStaticStorage reports whether sym's initializer must be a
// load-time constant -- spec.md ?4.2, ?7, ?8 invariant 4.
func (s *Symbol) HasStaticStorage() bool {
	return s.Linkage != LinkNone
}

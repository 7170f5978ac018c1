package initializer

import "github.com/go-ccfe/cinit/internal/token"

// objectState is spec.md ?3's "current-object state": CURRENT when
// iterating an explicit brace level's own elements, DESIGNATOR when
// entered via a designator from an outer level, MEMBER when
// initializing a non-brace-enclosed nested object. It drives whether a
// bare ',' advances to the next sibling or stops, exactly as
// _examples/original_source's enum current_object_state.
type objectState int

const (
	stateCurrent objectState = iota
	stateDesignator
	stateMember
)

// nextElement implements next_element(state): true iff the next two
// tokens are ',' then something that is neither '}' nor, for a non
// CURRENT state, a designator opener ('.'). A designator at the current
// level "belongs" only to a CURRENT parent; DESIGNATOR/MEMBER contexts
// stop and let the outer level reinterpret it (original lines 128-146).
func nextElement(cur *token.Cursor, state objectState) bool {
	if !cur.Is(",") {
		return false
	}
	switch {
	case cur.IsN(2, "}"):
		return false
	case cur.IsN(2, ".") && state != stateCurrent:
		return false
	default:
		cur.Next()
		return true
	}
}

// hasNextArrayElement implements has_next_array_element: ',' followed by
// '[' continues only when state == CURRENT (and reports isDesignator);
// ',' followed by '.' or '}' always terminates; anything else after the
// comma continues as a plain element (original lines 344-368).
func hasNextArrayElement(cur *token.Cursor, state objectState) (cont bool, isDesignator bool) {
	if !cur.Is(",") {
		return false, false
	}
	switch {
	case cur.IsN(2, "}"), cur.IsN(2, "."):
		return false, false
	case cur.IsN(2, "["):
		if state != stateCurrent {
			return false, false
		}
		return true, true
	default:
		return true, false
	}
}

// Package ctype is the C type system the initializer package treats as
// an external collaborator (spec.md ?1, ?6). Type and Member are
// adapted from the teacher's ctypes.go (CType) and ast.go (Member),
// trimmed to aggregate-initializer concerns and renamed to the spec's
// vocabulary: BitOffset/BitWidth become FieldOffset/FieldWidth, and the
// query surface spec.md ?6 lists (IsArray, IsStruct, NumMembers, ...) is
// exposed as methods instead of free functions.
package ctype

type Kind uint8

const (
	Void Kind = iota
	Bool
	Char
	SChar
	UChar
	Short
	Int
	Long
	Float
	Double
	Ptr
	Func
	Array
	Struct
	Union
)

// Member is one field of a struct or union type. Offset and
// FieldOffset/FieldWidth mirror spec.md ?3's object-reference quadruple
// fields of the same name.
type Member struct {
	Name        string
	Type        *Type
	Index       int
	Offset      int64 // byte offset from the start of the enclosing aggregate
	IsBitField  bool
	FieldOffset int64 // bit offset within Type, valid when IsBitField
	FieldWidth  int64 // bit width within Type, valid when IsBitField

	// BitFieldBlockFirst points at the first member of the run of
	// adjacent bit-fields sharing this member's storage unit. Nil for
	// non-bitfield members. NewStructType does not set it and the
	// post-processor does not read it: the post-processor tracks the
	// unit width from the field types it sees.
	BitFieldBlockFirst *Member
}

// Type is a (possibly incomplete) C type.
type Type struct {
	Kind       Kind
	size       int64 // -1 means incomplete (flexible array)
	Align      int64
	IsUnsigned bool

	Elem    *Type    // array element type, or pointee
	Len     int64    // array length; meaningless unless Kind == Array
	Members []Member // struct/union members, in declaration order
	Tag     string   // struct/union tag, for compatibility checks
}

func NewScalar(k Kind, size, align int64, unsigned bool) *Type {
	return &Type{Kind: k, size: size, Align: align, IsUnsigned: unsigned}
}

var (
	Void_   = &Type{Kind: Void, size: 1, Align: 1}
	CharT   = &Type{Kind: Char, size: 1, Align: 1}
	UCharT  = &Type{Kind: UChar, size: 1, Align: 1, IsUnsigned: true}
	ShortT  = &Type{Kind: Short, size: 2, Align: 2}
	UShortT = &Type{Kind: Short, size: 2, Align: 2, IsUnsigned: true}
	IntT    = &Type{Kind: Int, size: 4, Align: 4}
	UIntT   = &Type{Kind: Int, size: 4, Align: 4, IsUnsigned: true}
	LongT   = &Type{Kind: Long, size: 8, Align: 8}
	ULongT  = &Type{Kind: Long, size: 8, Align: 8, IsUnsigned: true}
)

func NewPointer(base *Type) *Type {
	return &Type{Kind: Ptr, size: 8, Align: 8, Elem: base}
}

// NewArrayType is the "type_create_array" collaborator of spec.md ?6. A
// negative length produces an incomplete (flexible) array type.
func NewArrayType(elem *Type, length int64) *Type {
	t := &Type{Kind: Array, Elem: elem, Len: length, Align: elem.Align}
	if length >= 0 {
		t.size = elem.Size() * length
	} else {
		t.size = -1
	}
	return t
}

func NewStructType(tag string, members []Member, align int64) *Type {
	var size int64
	for _, m := range members {
		end := m.Offset + m.Type.Size()
		if end > size {
			size = end
		}
	}
	return &Type{Kind: Struct, Tag: tag, Members: members, size: alignUp(size, align), Align: align}
}

func NewUnionType(tag string, members []Member, align int64) *Type {
	var size int64
	for _, m := range members {
		if m.Type.Size() > size {
			size = m.Type.Size()
		}
	}
	return &Type{Kind: Union, Tag: tag, Members: members, size: alignUp(size, align), Align: align}
}

func alignUp(n, align int64) int64 {
	if align <= 0 {
		return n
	}
	return (n + align - 1) / align * align
}

// Size is "size_of": the declared byte size, or 0 for an incomplete
// (flexible) array -- spec.md's zero-fill and post-processing code
// treats size 0 as "not yet known", matching original_source's
// size_of()==0 check at line 472.
func (t *Type) Size() int64 {
	if t.size < 0 {
		return 0
	}
	return t.size
}

// IsComplete reports whether the type has a known size.
func (t *Type) IsComplete() bool { return t.size >= 0 }

func (t *Type) IsArray() bool  { return t.Kind == Array }
func (t *Type) IsStruct() bool { return t.Kind == Struct }
func (t *Type) IsUnion() bool  { return t.Kind == Union }
func (t *Type) IsStructOrUnion() bool {
	return t.Kind == Struct || t.Kind == Union
}
func (t *Type) IsChar() bool {
	return t.Kind == Char || t.Kind == SChar || t.Kind == UChar
}
func (t *Type) IsInteger() bool {
	switch t.Kind {
	case Bool, Char, SChar, UChar, Short, Int, Long:
		return true
	}
	return false
}
func (t *Type) IsVoid() bool     { return t.Kind == Void }
func (t *Type) IsFunction() bool { return t.Kind == Func }
func (t *Type) IsScalar() bool {
	switch t.Kind {
	case Struct, Union, Array, Void:
		return false
	}
	return true
}

// Elem/type_next: the array element type.
func (t *Type) ElemType() *Type { return t.Elem }

// ArrayLen is type_array_len: the declared element count, or -1 if
// incomplete.
func (t *Type) ArrayLen() int64 {
	if !t.IsComplete() {
		return -1
	}
	return t.Len
}

// SetArrayLength completes a flexible array type in place, the way
// set_array_length mutates the symbol's type after counting braced
// elements (spec.md ?4.2 initialize_array step 6).
func (t *Type) SetArrayLength(n int64) {
	t.Len = n
	t.size = t.Elem.Size() * n
}

func (t *Type) NumMembers() int { return len(t.Members) }

func (t *Type) MemberAt(i int) *Member {
	if i < 0 || i >= len(t.Members) {
		return nil
	}
	return &t.Members[i]
}

// FindMember is find_type_member: lookup by name, reporting the member
// and its index.
func (t *Type) FindMember(name string) (*Member, int) {
	for i := range t.Members {
		if t.Members[i].Name == name {
			return &t.Members[i], i
		}
	}
	return nil, -1
}

// IsCompatibleUnqualified implements the structural-compatibility check
// spec.md's initialize_struct_or_union needs to decide whether a sibling
// expression may whole-assign into an aggregate target.
func (a *Type) IsCompatibleUnqualified(b *Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Array:
		return a.Len == b.Len && a.Elem.IsCompatibleUnqualified(b.Elem)
	case Struct, Union:
		if a.Tag != "" && b.Tag != "" && a.Tag != b.Tag {
			return false
		}
		if len(a.Members) != len(b.Members) {
			return false
		}
		for i := range a.Members {
			ma, mb := a.Members[i], b.Members[i]
			if ma.Name != mb.Name || ma.IsBitField != mb.IsBitField {
				return false
			}
			if ma.IsBitField && (ma.FieldOffset != mb.FieldOffset || ma.FieldWidth != mb.FieldWidth) {
				return false
			}
			if !ma.Type.IsCompatibleUnqualified(mb.Type) {
				return false
			}
		}
		return true
	default:
		return a.Size() == b.Size() && a.IsUnsigned == b.IsUnsigned
	}
}

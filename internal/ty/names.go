package ty

import "fmt"

// Identifiers of declared items. They are opaque to the classifier.
type (
	AdtID       string
	ClosureID   string
	FnDefID     string
	AssocTypeID string
	OpaqueID    string
	ForeignID   string
	GeneratorID string
	AliasID     string
)

// Mutability of references and raw pointers.
type Mutability int

const (
	Not Mutability = iota
	Mut
)

// Scalar enumerates the primitive scalar types.
type Scalar int

const (
	Bool Scalar = iota
	Char
	I8
	I16
	I32
	I64
	I128
	Isize
	U8
	U16
	U32
	U64
	U128
	Usize
	F32
	F64
)

var scalarNames = [...]string{
	Bool: "bool", Char: "char",
	I8: "i8", I16: "i16", I32: "i32", I64: "i64", I128: "i128", Isize: "isize",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64", U128: "u128", Usize: "usize",
	F32: "f32", F64: "f64",
}

func (s Scalar) String() string {
	if s < 0 || int(s) >= len(scalarNames) {
		return fmt.Sprintf("Scalar(%d)", int(s))
	}
	return scalarNames[s]
}

// ScalarByName looks a scalar up by its source spelling.
func ScalarByName(name string) (Scalar, bool) {
	for i, n := range scalarNames {
		if n == name {
			return Scalar(i), true
		}
	}
	return 0, false
}

// TypeName is the constructor of an Apply type.
type TypeName interface {
	isTypeName()
}

type (
	TupleName            struct{ Arity int }
	ArrayName            struct{}
	FnPointerName        struct{}
	FnDefName            struct{ ID FnDefID }
	ClosureName          struct{ ID ClosureID }
	RefName              struct{ Mutability Mutability }
	RawName              struct{ Mutability Mutability }
	ScalarName           struct{ Kind Scalar }
	NeverName            struct{}
	StrName              struct{}
	AdtName              struct{ ID AdtID }
	AssociatedTypeName   struct{ ID AssocTypeID }
	SliceName            struct{}
	OpaqueTypeName       struct{ ID OpaqueID }
	ForeignName          struct{ ID ForeignID }
	GeneratorName        struct{ ID GeneratorID }
	GeneratorWitnessName struct{ ID GeneratorID }
	ErrorName            struct{}
)

func (TupleName) isTypeName()            {}
func (ArrayName) isTypeName()            {}
func (FnPointerName) isTypeName()        {}
func (FnDefName) isTypeName()            {}
func (ClosureName) isTypeName()          {}
func (RefName) isTypeName()              {}
func (RawName) isTypeName()              {}
func (ScalarName) isTypeName()           {}
func (NeverName) isTypeName()            {}
func (StrName) isTypeName()              {}
func (AdtName) isTypeName()              {}
func (AssociatedTypeName) isTypeName()   {}
func (SliceName) isTypeName()            {}
func (OpaqueTypeName) isTypeName()       {}
func (ForeignName) isTypeName()          {}
func (GeneratorName) isTypeName()        {}
func (GeneratorWitnessName) isTypeName() {}
func (ErrorName) isTypeName()            {}

// =============================================================================
// BINDERS
// =============================================================================

// VariableKind is the declared kind of a variable bound by a quantifier.
type VariableKind interface {
	isVariableKind()
	String() string
}

// TyKind declares a type variable, possibly restricted to numeric types.
type TyKind struct {
	Kind TyVariableKind
}

// ConstKind declares a const parameter of the given type.
type ConstKind struct {
	Ty Ty
}

// LifetimeKind declares a lifetime parameter.
type LifetimeKind struct{}

func (TyKind) isVariableKind()       {}
func (ConstKind) isVariableKind()    {}
func (LifetimeKind) isVariableKind() {}

func (k TyKind) String() string {
	switch k.Kind {
	case Integer:
		return "int"
	case Float:
		return "float"
	default:
		return "ty"
	}
}

func (k ConstKind) String() string {
	if k.Ty == nil {
		return "const"
	}
	return "const " + k.Ty.String()
}

func (LifetimeKind) String() string { return "lifetime" }

// Binders is the ordered list of variable kinds declared by the quantifier
// scope a goal lives in. It is never mutated after construction.
type Binders []VariableKind

// At returns the declared kind of the index-th bound variable.
func (b Binders) At(index int) VariableKind {
	if index < 0 || index >= len(b) {
		panic(fmt.Sprintf("ty: bound variable ^%d outside binder scope of %d variables", index, len(b)))
	}
	return b[index]
}

func (b Binders) String() string {
	s := "["
	for i, k := range b {
		if i > 0 {
			s += ", "
		}
		s += k.String()
	}
	return s + "]"
}

// ParseBinders reads a comma separated list such as "int,float,ty,const,lifetime".
func ParseBinders(src string) (Binders, error) {
	var out Binders
	for _, field := range splitTopLevel(src) {
		switch field {
		case "":
			continue
		case "int", "integer":
			out = append(out, TyKind{Kind: Integer})
		case "float":
			out = append(out, TyKind{Kind: Float})
		case "ty", "type":
			out = append(out, TyKind{Kind: General})
		case "const":
			out = append(out, ConstKind{})
		case "lifetime":
			out = append(out, LifetimeKind{})
		default:
			return nil, fmt.Errorf("unknown variable kind %q", field)
		}
	}
	return out, nil
}

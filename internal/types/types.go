// Package types defines Hexen's type universe (spec §3, §4.A) and the
// conversion engine that is the single authority for "may X become Y?"
// (spec §4.C). The shape follows the reference type system in
// github.com/sunholo/ailang/internal/types/types.go: a small Type
// interface implemented by a handful of concrete struct kinds, each with
// its own String()/Equals(), rather than one tagged-union struct.
package types

import (
	"fmt"
	"strings"
)

// Type is the interface every Hexen type value implements.
type Type interface {
	String() string
	Equals(Type) bool
}

// Concrete is a fixed, runtime-representable scalar: i32, i64, f32, f64,
// bool, string, or void (void is legal only as a function return type;
// the analyzer enforces that, not this type).
type Concrete struct {
	Name string
}

func (c *Concrete) String() string { return c.Name }

func (c *Concrete) Equals(other Type) bool {
	o, ok := other.(*Concrete)
	return ok && o.Name == c.Name
}

var (
	I32    = &Concrete{Name: "i32"}
	I64    = &Concrete{Name: "i64"}
	F32    = &Concrete{Name: "f32"}
	F64    = &Concrete{Name: "f64"}
	Bool   = &Concrete{Name: "bool"}
	String = &Concrete{Name: "string"}
	Void   = &Concrete{Name: "void"}
)

func concreteByName(name string) (*Concrete, bool) {
	switch name {
	case "i32":
		return I32, true
	case "i64":
		return I64, true
	case "f32":
		return F32, true
	case "f64":
		return F64, true
	case "bool":
		return Bool, true
	case "string":
		return String, true
	case "void":
		return Void, true
	default:
		return nil, false
	}
}

// ConcreteByName resolves a surface type name to its Concrete singleton.
// Used by the expression analyzer when it walks an ast.NameType.
func ConcreteByName(name string) (*Concrete, bool) {
	return concreteByName(name)
}

// ComptimeFamily distinguishes the two comptime scalar families.
type ComptimeFamily int

const (
	FamilyInt ComptimeFamily = iota
	FamilyFloat
)

// Comptime is a placeholder type for a literal expression not yet forced
// to a concrete type by a target context (spec §3, glossary "comptime type").
type Comptime struct {
	Family ComptimeFamily
}

func (c *Comptime) String() string {
	if c.Family == FamilyFloat {
		return "comptime_float"
	}
	return "comptime_int"
}

func (c *Comptime) Equals(other Type) bool {
	o, ok := other.(*Comptime)
	return ok && o.Family == c.Family
}

var (
	ComptimeInt   = &Comptime{Family: FamilyInt}
	ComptimeFloat = &Comptime{Family: FamilyFloat}
)

// Dim is one dimension of an array type: either a concrete size or the
// inferred wildcard `_`.
type Dim struct {
	Size     int
	Inferred bool
}

func (d Dim) String() string {
	if d.Inferred {
		return "[_]"
	}
	return fmt.Sprintf("[%d]", d.Size)
}

// dimsEqual compares two dimension lists. allowWildcardMatch treats an
// Inferred entry on either side as matching any size at that position —
// used when one side is a formal-parameter type (spec §3 "Type equality").
func dimsEqual(a, b []Dim, allowWildcardMatch bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if allowWildcardMatch && (a[i].Inferred || b[i].Inferred) {
			continue
		}
		if a[i].Inferred != b[i].Inferred {
			return false
		}
		if !a[i].Inferred && a[i].Size != b[i].Size {
			return false
		}
	}
	return true
}

// Array is a concrete array type: fixed dimensions (or, in a formal
// parameter, wildcards) over a never-comptime element type.
type Array struct {
	Elem Type
	Dims []Dim
}

func (a *Array) String() string {
	var sb strings.Builder
	for _, d := range a.Dims {
		sb.WriteString(d.String())
	}
	sb.WriteString(a.Elem.String())
	return sb.String()
}

func (a *Array) Equals(other Type) bool {
	o, ok := other.(*Array)
	if !ok {
		return false
	}
	return a.Elem.Equals(o.Elem) && dimsEqual(a.Dims, o.Dims, true)
}

// SameShape reports identity equality (no wildcard leniency): the same
// dimension count, every size matching exactly, same element type. This
// is the §4.C rule-7 "identity" test, which is stricter than Equals'
// parameter-position wildcard matching.
func (a *Array) SameShape(other *Array) bool {
	if !a.Elem.Equals(other.Elem) {
		return false
	}
	return dimsEqual(a.Dims, other.Dims, false)
}

// Product returns the product of all dimension sizes. Only meaningful
// when every dimension is concrete; callers must check that first.
func (a *Array) Product() int {
	p := 1
	for _, d := range a.Dims {
		p *= d.Size
	}
	return p
}

// FullyConcrete reports whether every dimension has a known size.
func (a *Array) FullyConcrete() bool {
	for _, d := range a.Dims {
		if d.Inferred {
			return false
		}
	}
	return true
}

// ComptimeArray is the type of an array literal all of whose leaves are
// comptime scalars (spec §3, §4.I). Its dimensions are always concrete:
// they come entirely from the literal's shape, never from a declaration.
type ComptimeArray struct {
	Family ComptimeFamily
	Dims   []int
}

func (c *ComptimeArray) String() string {
	var sb strings.Builder
	for _, d := range c.Dims {
		fmt.Fprintf(&sb, "[%d]", d)
	}
	if c.Family == FamilyFloat {
		sb.WriteString("comptime_float")
	} else {
		sb.WriteString("comptime_int")
	}
	return sb.String()
}

func (c *ComptimeArray) Equals(other Type) bool {
	o, ok := other.(*ComptimeArray)
	if !ok || o.Family != c.Family || len(o.Dims) != len(c.Dims) {
		return false
	}
	for i := range c.Dims {
		if c.Dims[i] != o.Dims[i] {
			return false
		}
	}
	return true
}

// Product returns the product of all dimension sizes.
func (c *ComptimeArray) Product() int {
	p := 1
	for _, d := range c.Dims {
		p *= d
	}
	return p
}

// Unknown is the internal, never user-facing sentinel type emitted after a
// diagnosed error to suppress cascades (spec §3, §7). Unknown is treated
// as compatible with anything by the conversion engine.
type unknownType struct{}

func (unknownType) String() string    { return "<unknown>" }
func (unknownType) Equals(Type) bool  { return true }

// Unknown is the single Unknown value; compare with ==.
var Unknown Type = unknownType{}

// IsUnknown reports whether t is the Unknown sentinel.
func IsUnknown(t Type) bool {
	_, ok := t.(unknownType)
	return ok
}

// IsComptime reports whether t is a comptime scalar (not a comptime array).
func IsComptime(t Type) bool {
	_, ok := t.(*Comptime)
	return ok
}

// IsComptimeArray reports whether t is a comptime array.
func IsComptimeArray(t Type) bool {
	_, ok := t.(*ComptimeArray)
	return ok
}

// IsNumeric reports whether t is any numeric type, comptime or concrete.
func IsNumeric(t Type) bool {
	return IsInteger(t) || IsFloat(t)
}

// IsInteger reports whether t is i32, i64, or comptime_int.
func IsInteger(t Type) bool {
	switch v := t.(type) {
	case *Concrete:
		return v == I32 || v == I64
	case *Comptime:
		return v.Family == FamilyInt
	}
	return false
}

// IsFloat reports whether t is f32, f64, or comptime_float.
func IsFloat(t Type) bool {
	switch v := t.(type) {
	case *Concrete:
		return v == F32 || v == F64
	case *Comptime:
		return v.Family == FamilyFloat
	}
	return false
}

// ElementFamily returns the comptime family of a comptime array's elements,
// or false if t is not a comptime array (spec §4.A element_family(t)).
func ElementFamily(t Type) (ComptimeFamily, bool) {
	ca, ok := t.(*ComptimeArray)
	if !ok {
		return 0, false
	}
	return ca.Family, true
}

// Format renders t the way diagnostics should show it to a user: no
// "comptime_int" text leaks into a diagnostic that has a concrete
// resolved type available — callers pass that resolved type instead of t
// when one exists (spec §4.A). Format itself just canonicalizes t's own
// String(); callers own the "prefer the resolved type" policy.
func Format(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

package types

import "fmt"

// Verdict classifies how a source type may become a target type. The
// conversion engine never mutates its input (spec §4.C): it always
// returns one of these three verdicts plus enough detail for the caller
// to build a diagnostic.
type Verdict int

const (
	// Implicit means the conversion happens with no syntax at all (identity,
	// or comptime adapting to a concrete numeric).
	Implicit Verdict = iota
	// ExplicitRequired means `value:target_type` is accepted but mandatory.
	ExplicitRequired
	// Forbidden means no syntax, implicit or explicit, bridges source to target.
	Forbidden
)

// Conversion is the full result of asking the engine "may source become
// target?". Adapted is only meaningful when Verdict == Implicit.
type Conversion struct {
	Verdict    Verdict
	Adapted    Type
	Suggestion string // populated for ExplicitRequired
	Reason     string
}

// IntRange returns the representable [min, max] range for a concrete
// integer type (spec §4.C rule 2). ok is false for non-integer types.
func IntRange(t Type) (min, max int64, ok bool) {
	c, isConcrete := t.(*Concrete)
	if !isConcrete {
		return 0, 0, false
	}
	switch c {
	case I32:
		return -2147483648, 2147483647, true
	case I64:
		return -9223372036854775808, 9223372036854775807, true
	}
	return 0, 0, false
}

// Engine answers "may X become Y?" uniformly for every call site that
// needs a conversion decision: declarations, assignments, returns,
// arguments, and operators (spec §4.C).
type Engine struct{}

// NewEngine constructs the (stateless) conversion engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Classify is the single entry point. It implements rules 1-5 of spec
// §4.C; array rules (6-9) live in Engine.ArrayAdapt and ClassifyArrayCopy
// (conversion_arrays.go) since they need dimension information the scalar
// path doesn't carry.
func (e *Engine) Classify(source, target Type) Conversion {
	if IsUnknown(source) || IsUnknown(target) {
		return Conversion{Verdict: Implicit, Adapted: target}
	}

	// Rule 1: identity.
	if source.Equals(target) {
		return Conversion{Verdict: Implicit, Adapted: target}
	}

	srcConcrete, srcIsConcrete := source.(*Concrete)
	tgtConcrete, tgtIsConcrete := target.(*Concrete)
	srcComptime, srcIsComptime := source.(*Comptime)

	// Rule 4: comptime -> bool/string is forbidden outright.
	if srcIsComptime && tgtIsConcrete && (tgtConcrete == Bool || tgtConcrete == String) {
		return Conversion{
			Verdict: Forbidden,
			Reason:  fmt.Sprintf("%s can never convert to %s, implicitly or explicitly", source, target),
		}
	}

	// bool/string never convert to/from anything numeric, not even explicitly.
	if (srcIsConcrete && (srcConcrete == Bool || srcConcrete == String)) && tgtIsConcrete && tgtConcrete != srcConcrete {
		if tgtConcrete == Bool || tgtConcrete == String {
			// bool<->string: still forbidden (rule 5 excludes bool/string entirely).
			return Conversion{Verdict: Forbidden, Reason: fmt.Sprintf("%s and %s are never convertible", source, target)}
		}
		return Conversion{Verdict: Forbidden, Reason: fmt.Sprintf("%s cannot convert to numeric type %s", source, target)}
	}
	if tgtIsConcrete && (tgtConcrete == Bool || tgtConcrete == String) && srcIsConcrete && srcConcrete != tgtConcrete {
		return Conversion{Verdict: Forbidden, Reason: fmt.Sprintf("%s cannot convert to %s", source, target)}
	}

	// Rule 2: comptime scalar -> concrete numeric.
	if srcIsComptime && tgtIsConcrete && IsNumeric(target) {
		if srcComptime.Family == FamilyInt {
			// comptime_int adapts to any of i32 i64 f32 f64.
			return Conversion{Verdict: Implicit, Adapted: target}
		}
		// comptime_float adapts only to f32/f64.
		if tgtConcrete == F32 || tgtConcrete == F64 {
			return Conversion{Verdict: Implicit, Adapted: target}
		}
		return Conversion{
			Verdict: Forbidden,
			Reason:  fmt.Sprintf("comptime_float cannot adapt to integer type %s", target),
		}
	}

	// Rule 3: comptime scalar -> comptime scalar (widening only).
	if srcIsComptime {
		if tgtComptime, ok := target.(*Comptime); ok {
			if srcComptime.Family == FamilyInt && tgtComptime.Family == FamilyFloat {
				return Conversion{Verdict: Implicit, Adapted: ComptimeFloat}
			}
			if srcComptime.Family == tgtComptime.Family {
				return Conversion{Verdict: Implicit, Adapted: target}
			}
			// comptime_float -> comptime_int never happens implicitly (narrowing).
			return Conversion{
				Verdict: Forbidden,
				Reason:  "comptime_float cannot narrow to comptime_int",
			}
		}
	}

	// Rule 5: concrete numeric -> different concrete numeric.
	if srcIsConcrete && tgtIsConcrete && IsNumeric(source) && IsNumeric(target) {
		return Conversion{
			Verdict:    ExplicitRequired,
			Suggestion: fmt.Sprintf(":%s", target),
			Reason:     fmt.Sprintf("%s and %s are distinct concrete numeric types", source, target),
		}
	}

	return Conversion{
		Verdict: Forbidden,
		Reason:  fmt.Sprintf("%s cannot become %s", source, target),
	}
}

// CanImplicitlyAdapt reports whether source may become target with no
// syntax at all.
func (e *Engine) CanImplicitlyAdapt(source, target Type) bool {
	return e.Classify(source, target).Verdict == Implicit
}

// RequiresExplicitConversion reports whether source can only become target
// via `:target` syntax.
func (e *Engine) RequiresExplicitConversion(source, target Type) bool {
	return e.Classify(source, target).Verdict == ExplicitRequired
}

// OverflowCheck reports whether a comptime_int literal value overflows the
// target integer type's representable range (spec §4.C rule 2). Only
// integer targets are checked; float targets never overflow for literal
// materialization (spec §9 Open Question), and non-integer/non-literal
// inputs simply report no overflow.
func OverflowCheck(value int64, target Type) (overflowed bool, min, max int64) {
	lo, hi, ok := IntRange(target)
	if !ok {
		return false, 0, 0
	}
	return value < lo || value > hi, lo, hi
}

// WidenComptimeResult implements spec §4.C rule 3 / §4.E pattern 1: when
// combining two comptime scalars in an arithmetic expression, the result
// widens to comptime_float if either operand is comptime_float.
func WidenComptimeResult(left, right *Comptime) *Comptime {
	if left.Family == FamilyFloat || right.Family == FamilyFloat {
		return ComptimeFloat
	}
	return ComptimeInt
}

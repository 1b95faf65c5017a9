package types

import "testing"

func TestConversionSymmetryProperty(t *testing.T) {
	e := NewEngine()

	// can_implicitly_adapt(T, T) is true for every T.
	for _, ty := range []Type{I32, I64, F32, F64, Bool, String, ComptimeInt, ComptimeFloat} {
		if !e.CanImplicitlyAdapt(ty, ty) {
			t.Errorf("identity should be implicit for %s", ty)
		}
	}

	// can_implicitly_adapt(comptime_int, concrete numeric) iff concrete in {i32,i64,f32,f64}.
	numerics := []Type{I32, I64, F32, F64}
	for _, ty := range numerics {
		if !e.CanImplicitlyAdapt(ComptimeInt, ty) {
			t.Errorf("comptime_int should adapt to %s", ty)
		}
	}
	if e.CanImplicitlyAdapt(ComptimeInt, Bool) || e.CanImplicitlyAdapt(ComptimeInt, String) {
		t.Fatal("comptime_int must never adapt to bool/string")
	}

	// Between distinct concrete numerics, never implicit.
	if e.CanImplicitlyAdapt(I32, I64) {
		t.Fatal("i32 -> i64 must not be implicit")
	}
	if !e.RequiresExplicitConversion(I32, I64) {
		t.Fatal("i32 -> i64 should require explicit conversion")
	}
}

func TestComptimeFloatAdaptsOnlyToFloatTargets(t *testing.T) {
	e := NewEngine()
	if e.CanImplicitlyAdapt(ComptimeFloat, I32) {
		t.Fatal("comptime_float must not adapt to i32")
	}
	if e.Classify(ComptimeFloat, I32).Verdict != Forbidden {
		t.Fatal("comptime_float -> i32 should be Forbidden, not requiring explicit syntax")
	}
	if !e.CanImplicitlyAdapt(ComptimeFloat, F64) {
		t.Fatal("comptime_float should adapt to f64")
	}
}

func TestComptimeToBoolStringForbidden(t *testing.T) {
	e := NewEngine()
	for _, target := range []Type{Bool, String} {
		c := e.Classify(ComptimeInt, target)
		if c.Verdict != Forbidden {
			t.Fatalf("comptime_int -> %s must be Forbidden, got %v", target, c.Verdict)
		}
	}
}

func TestBoolStringNeverConvert(t *testing.T) {
	e := NewEngine()
	if e.Classify(Bool, String).Verdict != Forbidden {
		t.Fatal("bool <-> string must be forbidden")
	}
	if e.Classify(I32, Bool).Verdict != Forbidden {
		t.Fatal("numeric -> bool must be forbidden")
	}
	if e.Classify(String, I32).Verdict != Forbidden {
		t.Fatal("string -> numeric must be forbidden")
	}
}

func TestConcreteNumericRequiresExplicitBothDirections(t *testing.T) {
	e := NewEngine()
	pairs := [][2]Type{{I32, I64}, {I64, F64}, {F32, I32}, {F64, F32}}
	for _, p := range pairs {
		c := e.Classify(p[0], p[1])
		if c.Verdict != ExplicitRequired {
			t.Errorf("%s -> %s should require explicit conversion, got %v", p[0], p[1], c.Verdict)
		}
		if c.Suggestion == "" {
			t.Errorf("%s -> %s should carry a suggested fix", p[0], p[1])
		}
	}
}

func TestOverflowCheckTable(t *testing.T) {
	tests := []struct {
		value      int64
		target     Type
		overflowed bool
	}{
		{2147483647, I32, false},
		{2147483648, I32, true},
		{-2147483648, I32, false},
		{-2147483649, I32, true},
		{9223372036854775807, I64, false},
	}
	for _, tt := range tests {
		got, _, _ := OverflowCheck(tt.value, tt.target)
		if got != tt.overflowed {
			t.Errorf("OverflowCheck(%d, %s) = %v, want %v", tt.value, tt.target, got, tt.overflowed)
		}
	}
}

func TestOverflowCheckNeverFlagsFloatTargets(t *testing.T) {
	overflowed, _, _ := OverflowCheck(1<<62, F64)
	if overflowed {
		t.Fatal("overflow must never be diagnosed against a float target (spec §9 open question)")
	}
}

func TestWidenComptimeResult(t *testing.T) {
	if WidenComptimeResult(ComptimeInt, ComptimeInt) != ComptimeInt {
		t.Fatal("int ⊕ int should stay comptime_int")
	}
	if WidenComptimeResult(ComptimeInt, ComptimeFloat) != ComptimeFloat {
		t.Fatal("int ⊕ float should widen to comptime_float")
	}
	if WidenComptimeResult(ComptimeFloat, ComptimeFloat) != ComptimeFloat {
		t.Fatal("float ⊕ float should stay comptime_float")
	}
}

func TestArrayAdaptWildcardDims(t *testing.T) {
	e := NewEngine()
	lit := &ComptimeArray{Family: FamilyInt, Dims: []int{2, 3}}
	target := &Array{Elem: I32, Dims: []Dim{{Inferred: true}, {Size: 3}}}

	ok, conv := e.ArrayAdapt(lit, target)
	if !ok {
		t.Fatalf("expected comptime array to adapt, elem conversion: %+v", conv)
	}

	mismatched := &Array{Elem: I32, Dims: []Dim{{Size: 2}, {Size: 99}}}
	if ok, _ := e.ArrayAdapt(lit, mismatched); ok {
		t.Fatal("mismatched concrete dim should reject adaptation")
	}
}

func TestClassifyArrayCopyKinds(t *testing.T) {
	same := &Array{Elem: I32, Dims: []Dim{{Size: 2}, {Size: 3}}}
	sameShape := &Array{Elem: I32, Dims: []Dim{{Size: 2}, {Size: 3}}}
	diffElem := &Array{Elem: F64, Dims: []Dim{{Size: 2}, {Size: 3}}}
	flattened := &Array{Elem: I32, Dims: []Dim{{Size: 6}}}

	if ClassifyArrayCopy(same, sameShape) != ArrayIdentity {
		t.Fatal("identical shape+element should classify as ArrayIdentity")
	}
	if ClassifyArrayCopy(same, diffElem) != ArrayCopyConvert {
		t.Fatal("same dim count, different element type should classify as ArrayCopyConvert")
	}
	if ClassifyArrayCopy(same, flattened) != ArrayFlatten {
		t.Fatal("different dim count should classify as ArrayFlatten")
	}
}

func TestSolveSingleWildcard(t *testing.T) {
	target := []Dim{{Inferred: true}}
	resolved, ok := SolveSingleWildcard(target, 6)
	if !ok || resolved[0].Size != 6 {
		t.Fatalf("expected single wildcard to resolve to 6, got %+v ok=%v", resolved, ok)
	}

	multi := []Dim{{Inferred: true}, {Inferred: true}}
	if _, ok := SolveSingleWildcard(multi, 6); ok {
		t.Fatal("multiple wildcards must not resolve (spec §9 ambiguous dims)")
	}

	uneven := []Dim{{Size: 4}, {Inferred: true}}
	if _, ok := SolveSingleWildcard(uneven, 6); ok {
		t.Fatal("6 is not evenly divisible by 4 — must not resolve")
	}
}

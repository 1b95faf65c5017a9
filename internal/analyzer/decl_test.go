package analyzer

import (
	"testing"

	"github.com/hexen-lang/hexen/internal/ast"
	"github.com/hexen-lang/hexen/internal/errors"
	"github.com/hexen-lang/hexen/internal/symbols"
	"github.com/hexen-lang/hexen/internal/types"
)

func TestValPreservesComptimeWithoutAnnotation(t *testing.T) {
	a := newTestAnalyzer()
	a.analyzeValDecl(valDecl("x", nil, intLit(42)))
	sym := a.symtab.Lookup("x")
	if sym == nil {
		t.Fatal("x should be declared")
	}
	if !sym.DeclaredType.Equals(types.ComptimeInt) {
		t.Fatalf("val x = 42 should preserve comptime_int, got %s", sym.DeclaredType)
	}
	if a.sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", a.sink.Reports())
	}
}

func TestValWithAnnotationMaterializes(t *testing.T) {
	a := newTestAnalyzer()
	a.analyzeValDecl(valDecl("x", nameType("i64"), intLit(42)))
	sym := a.symtab.Lookup("x")
	if !sym.DeclaredType.Equals(types.I64) {
		t.Fatalf("val x: i64 = 42 should be i64, got %s", sym.DeclaredType)
	}
}

func TestValFromCallRequiresAnnotation(t *testing.T) {
	a := newTestAnalyzer()
	a.symtab.DeclareFunction(&symbols.Function{Name: "f", ReturnType: types.I32})
	a.analyzeValDecl(valDecl("x", nil, call("f")))
	if !hasCode(a.sink.Reports(), errors.AN002) {
		t.Fatalf("expected AN002, got %+v", a.sink.Reports())
	}
}

func TestValFromConditionalRequiresAnnotation(t *testing.T) {
	a := newTestAnalyzer()
	cond := ifExpr(boolLit(true), block(yield(intLit(1))), block(yield(intLit(2))))
	a.analyzeValDecl(valDecl("x", nil, cond))
	if !hasCode(a.sink.Reports(), errors.AN002) {
		t.Fatalf("expected AN002, got %+v", a.sink.Reports())
	}
}

func TestValFromExpressionBlockRequiresAnnotation(t *testing.T) {
	a := newTestAnalyzer()
	be := blockExpr(yield(intLit(1)))
	a.analyzeValDecl(valDecl("x", nil, be))
	if !hasCode(a.sink.Reports(), errors.AN002) {
		t.Fatalf("expected AN002, got %+v", a.sink.Reports())
	}
}

func TestValFromNestedCallDoesNotRequireAnnotation(t *testing.T) {
	a := newTestAnalyzer()
	a.symtab.DeclareFunction(&symbols.Function{Name: "f", ReturnType: types.I32})
	// val x = f() + 1 — the call is nested inside a BinaryExpr, not the
	// top-level initializer, so no annotation is mandated.
	a.analyzeValDecl(valDecl("x", nil, bin("+", call("f"), intLit(1))))
	if hasCode(a.sink.Reports(), errors.AN002) {
		t.Fatalf("nested call should not require annotation: %+v", a.sink.Reports())
	}
}

func TestMutRequiresDeclaredType(t *testing.T) {
	a := newTestAnalyzer()
	a.analyzeMutDecl(mutDecl("x", nil, intLit(1)))
	if !hasCode(a.sink.Reports(), errors.AN001) {
		t.Fatalf("expected AN001, got %+v", a.sink.Reports())
	}
}

func TestMutWithUndefIsUninitialized(t *testing.T) {
	a := newTestAnalyzer()
	a.analyzeMutDecl(mutDecl("x", nameType("i32"), &ast.Undef{Pos: p()}))
	sym := a.symtab.Lookup("x")
	if sym.IsInitialized {
		t.Fatal("mut x: i32 = undef should leave x uninitialized")
	}
}

func TestReadBeforeAssignIsDiagnosed(t *testing.T) {
	a := newTestAnalyzer()
	a.analyzeMutDecl(mutDecl("x", nameType("i32"), &ast.Undef{Pos: p()}))
	got := a.analyzeExpr(ident("x"), nil)
	if !types.IsUnknown(got) {
		t.Fatal("reading an uninitialized mut should yield Unknown")
	}
	if !hasCode(a.sink.Reports(), errors.SY003) {
		t.Fatalf("expected SY003, got %+v", a.sink.Reports())
	}
}

func TestSameScopeRedeclarationRejected(t *testing.T) {
	a := newTestAnalyzer()
	a.analyzeValDecl(valDecl("x", nil, intLit(1)))
	a.analyzeValDecl(valDecl("x", nil, intLit(2)))
	if !hasCode(a.sink.Reports(), errors.SY002) {
		t.Fatalf("expected SY002 on redeclaration, got %+v", a.sink.Reports())
	}
}

func TestAssignToImmutableValRejected(t *testing.T) {
	a := newTestAnalyzer()
	a.analyzeValDecl(valDecl("x", nil, intLit(1)))
	a.analyzeAssign(assign(ident("x"), intLit(2)))
	if !hasCode(a.sink.Reports(), errors.SY004) {
		t.Fatalf("expected SY004 assigning to a val, got %+v", a.sink.Reports())
	}
}

func TestAssignToMutOfDifferentConcreteTypeRequiresConversion(t *testing.T) {
	a := newTestAnalyzer()
	a.analyzeMutDecl(mutDecl("x", nameType("i32"), intLit(1)))
	a.declareSymbol("y", types.I64, false, true, p())
	a.analyzeAssign(assign(ident("x"), ident("y")))
	if !hasCode(a.sink.Reports(), errors.CV001) {
		t.Fatalf("expected CV001 assigning i64 to an i32 mut, got %+v", a.sink.Reports())
	}
}

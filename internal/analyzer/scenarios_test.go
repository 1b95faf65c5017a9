package analyzer

import (
	"testing"

	"github.com/hexen-lang/hexen/internal/ast"
	"github.com/hexen-lang/hexen/internal/errors"
	"github.com/hexen-lang/hexen/internal/types"
)

// TestScenarioComptimeFlexibility: a val with no annotation preserves its
// comptime type, and the same literal value adapts independently to two
// different concrete contexts at its two separate materialization sites.
func TestScenarioComptimeFlexibility(t *testing.T) {
	a := newTestAnalyzer()
	prog := program(fn("main", nil, nameType("void"), block(
		valDecl("value", nil, intLit(42)),
		mutDecl("as_i32", nameType("i32"), ident("value")),
		mutDecl("as_f64", nameType("f64"), ident("value")),
		ret(nil),
	)))
	result := a.AnalyzeProgram(prog)
	if !result.Accepted {
		t.Fatalf("expected acceptance, got %+v", result.Diagnostics)
	}
}

// TestScenarioMixedConcreteRefusal: two variables of distinct concrete
// types can never combine without an explicit conversion, even though
// each is individually a valid numeric type.
func TestScenarioMixedConcreteRefusal(t *testing.T) {
	a := newTestAnalyzer()
	prog := program(fn("main", nil, nameType("void"), block(
		mutDecl("a", nameType("i32"), intLit(1)),
		mutDecl("b", nameType("i64"), intLit(2)),
		valDecl("sum", nameType("i64"), bin("+", ident("a"), ident("b"))),
		ret(nil),
	)))
	result := a.AnalyzeProgram(prog)
	if result.Accepted {
		t.Fatal("i32 + i64 must be rejected without an explicit conversion")
	}
	diffCodes(t, result.Diagnostics, []string{errors.TY002})
}

// TestScenarioMandatoryMutType: mut never infers its type from its
// initializer, even when the initializer alone would be unambiguous.
func TestScenarioMandatoryMutType(t *testing.T) {
	a := newTestAnalyzer()
	prog := program(fn("main", nil, nameType("void"), block(
		mutDecl("counter", nil, intLit(0)),
		ret(nil),
	)))
	result := a.AnalyzeProgram(prog)
	if result.Accepted {
		t.Fatal("mut without a declared type must be rejected")
	}
	if !hasCode(result.Diagnostics, errors.AN001) {
		t.Fatalf("expected AN001, got %+v", result.Diagnostics)
	}
}

// TestScenarioExpressionBlockRequiresDeclaredType: val initialized
// directly by an expression block must declare its type, regardless of
// whether the block's yielded type would otherwise be unambiguous.
func TestScenarioExpressionBlockRequiresDeclaredType(t *testing.T) {
	a := newTestAnalyzer()
	prog := program(fn("main", nil, nameType("void"), block(
		valDecl("computed", nil, blockExpr(
			valDecl("step", nil, intLit(10)),
			yield(bin("*", ident("step"), intLit(2))),
		)),
		ret(nil),
	)))
	result := a.AnalyzeProgram(prog)
	if result.Accepted {
		t.Fatal("val from an expression block with no annotation must be rejected")
	}
	if !hasCode(result.Diagnostics, errors.AN002) {
		t.Fatalf("expected AN002, got %+v", result.Diagnostics)
	}
}

// TestScenarioArrayFlattening: a 2D comptime array literal copies and
// flattens into a declared 1D array whose size is the product of the
// source's dimensions.
func TestScenarioArrayFlattening(t *testing.T) {
	a := newTestAnalyzer()
	matrix := arrLit(arrLit(intLit(1), intLit(2), intLit(3)), arrLit(intLit(4), intLit(5), intLit(6)))
	flatType := arrType(nameType("i32"), 6)
	prog := program(fn("main", nil, nameType("void"), block(
		mutDecl("grid", arrType(nameType("i32"), 2, 3), &ast.ArrayCopy{Array: matrix, Pos: p()}),
		valDecl("flat", flatType, &ast.ArrayCopy{Array: ident("grid"), Pos: p()}),
		ret(nil),
	)))
	result := a.AnalyzeProgram(prog)
	if !result.Accepted {
		t.Fatalf("expected the flatten to succeed, got %+v", result.Diagnostics)
	}
	sym := a.symtab.Lookup("flat")
	diffType(t, sym.DeclaredType, &types.Array{Elem: types.I32, Dims: []types.Dim{{Size: 6}}})
}

// TestScenarioConditionalExpressionType: an if-expression used as a val's
// initializer must supply an else branch, and the joined branch type
// becomes the binding's type when no annotation narrows it further.
func TestScenarioConditionalExpressionType(t *testing.T) {
	a := newTestAnalyzer()
	prog := program(fn("main", nil, nameType("void"), block(
		valDecl("flag", nil, boolLit(true)),
		valDecl("label", nameType("i64"),
			ifExpr(ident("flag"), block(yield(intLit(1))), block(yield(intLit(0)))),
		),
		ret(nil),
	)))
	result := a.AnalyzeProgram(prog)
	if !result.Accepted {
		t.Fatalf("expected acceptance, got %+v", result.Diagnostics)
	}
}

package analyzer

import (
	"testing"

	"github.com/hexen-lang/hexen/internal/errors"
	"github.com/hexen-lang/hexen/internal/types"
)

func TestConditionalExpressionRequiresElse(t *testing.T) {
	a := newTestAnalyzer()
	ie := ifExpr(boolLit(true), block(yield(intLit(1))), nil)
	got := a.analyzeExpr(ie, nil)
	if !types.IsUnknown(got) {
		t.Fatal("if-expression without else should be rejected")
	}
	if !hasCode(a.sink.Reports(), errors.CF003) {
		t.Fatalf("expected CF003, got %+v", a.sink.Reports())
	}
}

func TestConditionalExpressionWithoutContextRejectsDifferingComptimeBranches(t *testing.T) {
	a := newTestAnalyzer()
	ie := ifExpr(boolLit(true), block(yield(intLit(1))), block(yield(floatLit(2.5))))
	got := a.analyzeExpr(ie, nil)
	if !types.IsUnknown(got) {
		t.Fatalf("comptime_int vs comptime_float branches with no outward context must be rejected (no implicit lub), got %s", got)
	}
	if !hasCode(a.sink.Reports(), errors.CF003) {
		t.Fatalf("expected CF003, got %+v", a.sink.Reports())
	}
}

func TestConditionalExpressionWithContextMaterializesBothBranches(t *testing.T) {
	a := newTestAnalyzer()
	ie := ifExpr(boolLit(true), block(yield(intLit(1))), block(yield(intLit(2))))
	got := a.analyzeExpr(ie, types.I64)
	if !got.Equals(types.I64) {
		t.Fatalf("both comptime branches should adapt to the i64 context, got %s", got)
	}
}

func TestConditionalExpressionIncompatibleBranchesRejected(t *testing.T) {
	a := newTestAnalyzer()
	ie := ifExpr(boolLit(true), block(yield(boolLit(true))), block(yield(strLit("x"))))
	got := a.analyzeExpr(ie, nil)
	if !types.IsUnknown(got) {
		t.Fatal("bool vs string branches should be rejected")
	}
	if !hasCode(a.sink.Reports(), errors.CF003) {
		t.Fatalf("expected CF003, got %+v", a.sink.Reports())
	}
}

func TestConditionEvaluationDisqualifiesEnclosingBlock(t *testing.T) {
	a := newTestAnalyzer()
	a.declareSymbol("flag", types.Bool, false, true, p())
	be := blockExpr(yield(ifExpr(ident("flag"), block(yield(intLit(1))), block(yield(intLit(2))))))
	// The if-expression's branches are both comptime_int and agree, but
	// evaluating the condition itself must mark the enclosing block
	// runtime, forcing materialization against an outward context.
	got := a.analyzeBlockExpr(be, types.I32)
	if !got.Equals(types.I32) {
		t.Fatalf("a block whose value depends on a runtime condition must materialize against its context, got %s", got)
	}
}

func TestConditionEvaluationDisqualifiesEnclosingBlockWithNoContextIsRejected(t *testing.T) {
	a := newTestAnalyzer()
	a.declareSymbol("flag", types.Bool, false, true, p())
	be := blockExpr(yield(ifExpr(ident("flag"), block(yield(intLit(1))), block(yield(intLit(2))))))
	got := a.analyzeBlockExpr(be, nil)
	if !types.IsUnknown(got) {
		t.Fatalf("a runtime-classified block with no outward context to materialize against must be rejected, got %s", got)
	}
	if !hasCode(a.sink.Reports(), errors.AN002) {
		t.Fatalf("expected AN002, got %+v", a.sink.Reports())
	}
}

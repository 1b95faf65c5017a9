package analyzer

import (
	"github.com/hexen-lang/hexen/internal/ast"
	"github.com/hexen-lang/hexen/internal/errors"
	"github.com/hexen-lang/hexen/internal/types"
)

// analyzeConditionalExpr analyzes `if cond { -> e } else { -> e }` used in
// a value position (spec §4.E "Conditional expression"). Unlike the
// statement form, an expression-form `if` is mandatory-else: every branch
// must produce a value, and evaluating the condition always disqualifies
// every enclosing expression block from compile-time classification,
// since branch selection is inherently a runtime decision.
func (a *Analyzer) analyzeConditionalExpr(ie *ast.IfExpr, ctx types.Type) types.Type {
	a.checkCondition(ie.Cond)

	thenType := a.analyzeExprBranch(ie.Then, ctx, ie.Pos)

	var elseType types.Type
	switch {
	case ie.ElseIf != nil:
		elseType = a.analyzeConditionalExpr(ie.ElseIf, ctx)
	case ie.Else != nil:
		elseType = a.analyzeExprBranch(ie.Else, ctx, ie.Pos)
	default:
		a.sink.Add(errors.New(errors.CF003, errors.PhaseBlock,
			"if used as an expression must have an else branch", span(ie.Pos)))
		return types.Unknown
	}

	return a.joinBranchTypes(thenType, elseType, ctx, ie.Pos)
}

// analyzeExprBranch analyzes one branch of a conditional expression as an
// expression-role block in its own scope, requiring it to terminate in `->`.
func (a *Analyzer) analyzeExprBranch(block *ast.Block, ctx types.Type, pos ast.Pos) types.Type {
	a.symtab.EnterScope()
	defer a.symtab.LeaveScope()

	yieldType, terminated := a.analyzeExprBlockBody(block, ctx)
	if !terminated {
		a.sink.Add(errors.New(errors.CF003, errors.PhaseBlock,
			"every branch of a conditional expression must produce a value with ->", span(pos)))
		return types.Unknown
	}
	return yieldType
}

// joinBranchTypes unifies two branch result types against an optional
// outward context (spec §4.H): if ctx is given, both branches must convert
// to it; otherwise the branches' types must be identical — no implicit
// lub. A comptime branch only adapts to a concrete or differently-familied
// comptime partner when an outward context forces it; left to themselves,
// comptime_int and comptime_float (or comptime_int and i32) are rejected.
func (a *Analyzer) joinBranchTypes(thenType, elseType, ctx types.Type, pos ast.Pos) types.Type {
	if types.IsUnknown(thenType) || types.IsUnknown(elseType) {
		return types.Unknown
	}

	if ctx != nil && !types.IsUnknown(ctx) {
		a.checkContextConversion(branchPosNode{pos}, thenType, ctx, errors.CF003)
		a.checkContextConversion(branchPosNode{pos}, elseType, ctx, errors.CF003)
		return ctx
	}

	if thenType.Equals(elseType) {
		return thenType
	}

	a.sink.Add(errors.New(errors.CF003, errors.PhaseBlock,
		"branches of a conditional expression produce incompatible types: "+types.Format(thenType)+" and "+types.Format(elseType),
		span(pos)))
	return types.Unknown
}

// branchPosNode adapts a bare Pos to the ast.Node interface required by
// checkContextConversion, for diagnostics anchored to the `if` itself
// rather than to one specific branch expression.
type branchPosNode struct{ pos ast.Pos }

func (b branchPosNode) Position() ast.Pos { return b.pos }
func (b branchPosNode) ID() ast.NodeID    { return 0 }

package analyzer

import (
	"github.com/hexen-lang/hexen/internal/ast"
	"github.com/hexen-lang/hexen/internal/errors"
	"github.com/hexen-lang/hexen/internal/types"
)

// analyzeFunctionBody analyzes a function's top-level block (spec §4.G
// "function body" role of the unified block construct): every statement
// runs in a fresh scope already pushed by the caller, `return` is legal
// anywhere, and `->` is not (a function body never yields a value, it
// returns one). It reports whether every control path reaches a return.
func (a *Analyzer) analyzeFunctionBody(body *ast.Block) bool {
	return a.analyzeStmts(body.Stmts, blockRoleFunction)
}

type blockRole int

const (
	blockRoleFunction blockRole = iota
	blockRoleExpression
	blockRoleStatement
)

// analyzeStmts walks one block's statements in order, diagnosing misplaced
// `->`/`return` for the block's role and reporting whether the block is
// guaranteed to leave via return/yield on every path. A `return` or `->`
// counts wherever it appears; a nested block or `if` counts only when it
// is the last statement. Statements after a return are still analyzed and
// are not reported as unreachable.
func (a *Analyzer) analyzeStmts(stmts []ast.Stmt, role blockRole) bool {
	terminated := false
	for i, stmt := range stmts {
		isLast := i == len(stmts)-1
		switch s := stmt.(type) {
		case *ast.ValDecl:
			a.analyzeValDecl(s)
		case *ast.MutDecl:
			a.analyzeMutDecl(s)
		case *ast.Assign:
			a.analyzeAssign(s)
		case *ast.ExprStmt:
			a.analyzeExpr(s.Value, nil)
		case *ast.Return:
			if s.Value != nil {
				a.analyzeExpr(s.Value, a.currentReturnType)
			} else if a.currentReturnType != nil && !a.currentReturnType.Equals(types.Void) {
				a.sink.Add(errors.New(errors.CF001, errors.PhaseFunction,
					"bare return is only allowed in a void function", span(s.Pos)))
			}
			terminated = true
		case *ast.Yield:
			if role != blockRoleExpression {
				a.sink.Add(errors.New(errors.CF002, errors.PhaseBlock,
					"-> is only valid as the last statement of an expression block", span(s.Pos)))
			} else if !isLast {
				a.sink.Add(errors.New(errors.CF002, errors.PhaseBlock,
					"-> must be the last statement in its block", span(s.Pos)))
			}
			terminated = true
		case *ast.BlockStmt:
			a.symtab.EnterScope()
			nested := a.analyzeStmts(s.Body.Stmts, blockRoleStatement)
			a.symtab.LeaveScope()
			if nested && isLast {
				terminated = true
			}
		case *ast.IfStmt:
			allBranches := a.analyzeIfStmt(s)
			if allBranches && isLast {
				terminated = true
			}
		default:
			a.sink.Add(errors.New(errors.CF001, errors.PhaseBlock,
				"unrecognized statement", span(stmt.Position())))
		}
	}
	return terminated
}

// analyzeBlockExpr analyzes `{ ... }` used in a value position (spec
// §4.G): it must terminate in `->` (or an always-returning `return`), its
// evaluability is classified by whether any disqualifying construct was
// seen while analyzing it, and a block classified runtime must materialize
// any comptime result before leaving the block.
func (a *Analyzer) analyzeBlockExpr(be *ast.BlockExpr, ctx types.Type) types.Type {
	a.symtab.EnterScope()
	defer a.symtab.LeaveScope()

	runtime := false
	a.runtimeFlags = append(a.runtimeFlags, &runtime)
	defer func() { a.runtimeFlags = a.runtimeFlags[:len(a.runtimeFlags)-1] }()

	yieldType, terminated := a.analyzeExprBlockBody(be.Body, ctx)
	if !terminated {
		a.sink.Add(errors.New(errors.CF002, errors.PhaseBlock,
			"expression block must end in -> or return", span(be.Pos)))
		return types.Unknown
	}
	if types.IsUnknown(yieldType) {
		return types.Unknown
	}

	if runtime {
		return a.materialize(yieldType, ctx, be.Pos)
	}
	return yieldType
}

// analyzeExprBlockBody runs a value-position block's statements, returning
// the type yielded by its `->` plus whether the block reached a terminator
// at all. A `return` also counts as terminating the block, but it exits
// the function rather than supplying the block's value, so a block with no
// `->` yields Unknown.
func (a *Analyzer) analyzeExprBlockBody(body *ast.Block, ctx types.Type) (types.Type, bool) {
	var yieldType types.Type = types.Unknown
	terminated := false
	for i, stmt := range body.Stmts {
		isLast := i == len(body.Stmts)-1
		switch s := stmt.(type) {
		case *ast.ValDecl:
			a.analyzeValDecl(s)
		case *ast.MutDecl:
			a.analyzeMutDecl(s)
		case *ast.Assign:
			a.analyzeAssign(s)
		case *ast.ExprStmt:
			a.analyzeExpr(s.Value, nil)
		case *ast.Return:
			if s.Value != nil {
				a.analyzeExpr(s.Value, a.currentReturnType)
			}
			terminated = true
		case *ast.Yield:
			if !isLast {
				a.sink.Add(errors.New(errors.CF002, errors.PhaseBlock,
					"-> must be the last statement in its block", span(s.Pos)))
			}
			yieldType = a.analyzeExpr(s.Value, ctx)
			terminated = true
		case *ast.BlockStmt:
			a.symtab.EnterScope()
			a.analyzeStmts(s.Body.Stmts, blockRoleStatement)
			a.symtab.LeaveScope()
		case *ast.IfStmt:
			a.analyzeIfStmt(s)
		default:
			a.sink.Add(errors.New(errors.CF002, errors.PhaseBlock,
				"unrecognized statement in expression block", span(stmt.Position())))
		}
	}
	return yieldType, terminated
}

// materialize forces a comptime result produced by a runtime-classified
// block to a concrete type using the context type it is required against.
// Hexen does not default comptime types without a context (spec §4.A): a
// runtime-classified block with no outward context to materialize against
// is diagnosed rather than silently assigned a default concrete type.
func (a *Analyzer) materialize(t types.Type, ctx types.Type, pos ast.Pos) types.Type {
	comptime, isComptime := t.(*types.Comptime)
	if !isComptime {
		return t
	}
	if ctx == nil || types.IsUnknown(ctx) {
		a.sink.Add(errors.New(errors.AN002, errors.PhaseBlock,
			"this block's value depends on runtime control flow and has no target type to materialize against; add a declared type",
			span(pos)))
		return types.Unknown
	}
	conv := a.engine.Classify(comptime, ctx)
	if conv.Verdict == types.Implicit {
		return ctx
	}
	a.sink.Add(errors.New(errors.TY001, errors.PhaseTypes,
		"this block's value depends on runtime control flow and cannot adapt to the expected type here",
		span(pos)))
	return types.Unknown
}

// analyzeIfStmt analyzes `if` used as a statement: the condition must be
// bool, each branch is its own statement-role block, and the construct
// never yields a value. It reports whether every branch (including all
// chained else-ifs and a trailing else) is guaranteed to return, used by
// the caller to decide if this `if` can terminate its enclosing block.
func (a *Analyzer) analyzeIfStmt(stmt *ast.IfStmt) bool {
	a.checkCondition(stmt.Cond)

	a.symtab.EnterScope()
	thenTerminates := a.analyzeStmts(stmt.Then.Stmts, blockRoleStatement)
	a.symtab.LeaveScope()

	if stmt.ElseIf != nil {
		elseTerminates := a.analyzeIfStmt(stmt.ElseIf)
		return thenTerminates && elseTerminates
	}
	if stmt.Else != nil {
		a.symtab.EnterScope()
		elseTerminates := a.analyzeStmts(stmt.Else.Stmts, blockRoleStatement)
		a.symtab.LeaveScope()
		return thenTerminates && elseTerminates
	}
	return false
}

// checkCondition analyzes a condition expression, diagnosing anything not
// exactly bool (spec §4.E, conditions never accept comptime/numeric
// truthiness). Used by both the statement and expression forms of `if`.
func (a *Analyzer) checkCondition(cond ast.Expr) {
	// A condition is itself a disqualifying, runtime-only construct (spec
	// §4.G): evaluating it always marks every enclosing expression block
	// as runtime, independent of whatever type it turns out to have.
	a.markRuntime()
	t := a.analyzeExpr(cond, types.Bool)
	if types.IsUnknown(t) {
		return
	}
	if !t.Equals(types.Bool) {
		a.sink.Add(errors.New(errors.TY003, errors.PhaseTypes,
			"condition must be bool, got "+types.Format(t), span(cond.Position())))
	}
}

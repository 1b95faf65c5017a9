package analyzer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hexen-lang/hexen/internal/ast"
	"github.com/hexen-lang/hexen/internal/errors"
	"github.com/hexen-lang/hexen/internal/types"
)

// Small AST-builder helpers shared by every analyzer test file. Position
// information is not exercised by these tests, so every node gets the
// same placeholder Pos unless a test specifically needs to distinguish
// nodes by location.

func p() ast.Pos { return ast.Pos{File: "test.hxn", Line: 1, Column: 1} }

func intLit(v int64) *ast.Literal  { return &ast.Literal{Kind: ast.IntLit, Int: v, Pos: p()} }
func floatLit(v float64) *ast.Literal {
	return &ast.Literal{Kind: ast.FloatLit, Float: v, Pos: p()}
}
func boolLit(v bool) *ast.Literal  { return &ast.Literal{Kind: ast.BoolLit, Bool: v, Pos: p()} }
func strLit(s string) *ast.Literal { return &ast.Literal{Kind: ast.StringLit, Str: s, Pos: p()} }

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name, Pos: p()} }

func bin(op string, l, r ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Op: op, Left: l, Right: r, Pos: p()}
}

func unary(op string, operand ast.Expr) *ast.UnaryExpr {
	return &ast.UnaryExpr{Op: op, Operand: operand, Pos: p()}
}

func conv(e ast.Expr, target ast.TypeRef) *ast.ConversionExpr {
	return &ast.ConversionExpr{Value: e, Target: target, Pos: p()}
}

func nameType(name string) *ast.NameType { return &ast.NameType{Name: name, Pos: p()} }

func arrType(elem ast.TypeRef, dims ...int) *ast.ArrayType {
	refs := make([]ast.DimRef, len(dims))
	for i, d := range dims {
		if d < 0 {
			refs[i] = ast.DimRef{Inferred: true}
		} else {
			refs[i] = ast.DimRef{Size: d}
		}
	}
	return &ast.ArrayType{Dims: refs, Elem: elem, Pos: p()}
}

func valDecl(name string, declared ast.TypeRef, init ast.Expr) *ast.ValDecl {
	return &ast.ValDecl{Name: name, DeclaredType: declared, Init: init, Pos: p()}
}

func mutDecl(name string, declared ast.TypeRef, init ast.Expr) *ast.MutDecl {
	return &ast.MutDecl{Name: name, DeclaredType: declared, Init: init, Pos: p()}
}

func assign(target, value ast.Expr) *ast.Assign {
	return &ast.Assign{Target: target, Value: value, Pos: p()}
}

func ret(value ast.Expr) *ast.Return    { return &ast.Return{Value: value, Pos: p()} }
func yield(value ast.Expr) *ast.Yield   { return &ast.Yield{Value: value, Pos: p()} }
func exprStmt(e ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Value: e, Pos: p()} }

func block(stmts ...ast.Stmt) *ast.Block { return &ast.Block{Stmts: stmts, Pos: p()} }

func blockStmt(stmts ...ast.Stmt) *ast.BlockStmt {
	return &ast.BlockStmt{Body: block(stmts...), Pos: p()}
}

func blockExpr(stmts ...ast.Stmt) *ast.BlockExpr {
	return &ast.BlockExpr{Body: block(stmts...), Pos: p()}
}

func ifStmt(cond ast.Expr, then *ast.Block, els *ast.Block) *ast.IfStmt {
	return &ast.IfStmt{Cond: cond, Then: then, Else: els, Pos: p()}
}

func ifExpr(cond ast.Expr, then *ast.Block, els *ast.Block) *ast.IfExpr {
	return &ast.IfExpr{Cond: cond, Then: then, Else: els, Pos: p()}
}

func call(callee string, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{Callee: callee, Args: args, Pos: p()}
}

func param(name string, t ast.TypeRef, mut bool) *ast.Param {
	return &ast.Param{Name: name, Type: t, IsMut: mut, Pos: p()}
}

func fn(name string, params []*ast.Param, retType ast.TypeRef, body *ast.Block) *ast.Func {
	return &ast.Func{Name: name, Params: params, ReturnType: retType, Body: body, Pos: p()}
}

func program(funcs ...*ast.Func) *ast.Program {
	return &ast.Program{Funcs: funcs, Pos: p()}
}

// newTestAnalyzer returns a fresh Analyzer with one scope already pushed,
// the way symbols.New leaves it — tests that analyze a single statement or
// expression in isolation don't need a full AnalyzeProgram run.
func newTestAnalyzer() *Analyzer {
	return New(DefaultConfig())
}

// codesOf extracts just the error codes from a diagnostic slice, keeping
// their emission order, for tests that care which rules fired and in what
// sequence rather than about message text.
func codesOf(reports []*errors.Report) []string {
	out := make([]string, len(reports))
	for i, r := range reports {
		out[i] = r.Code
	}
	return out
}

// hasCode reports whether any report in reports carries the given code.
func hasCode(reports []*errors.Report, code string) bool {
	for _, r := range reports {
		if r.Code == code {
			return true
		}
	}
	return false
}

// diffCodes fails the test with a structural diff if the codes carried by
// reports don't match want exactly, in order. Used where a scenario is
// expected to produce a precise diagnostic sequence rather than just "one
// of these codes fired somewhere".
func diffCodes(t *testing.T, reports []*errors.Report, want []string) {
	t.Helper()
	if diff := cmp.Diff(want, codesOf(reports)); diff != "" {
		t.Errorf("diagnostic codes mismatch (-want +got):\n%s", diff)
	}
}

// diffType fails the test with a structural diff of the resolved type
// trees if got and want aren't identical, including nested Array/Dim
// shape — useful for array-copy and flatten results where Equals alone
// would hide a mismatched Dims slice.
func diffType(t *testing.T, got, want types.Type) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved type mismatch (-want +got):\n%s", diff)
	}
}

package analyzer

import (
	"fmt"

	"github.com/hexen-lang/hexen/internal/ast"
	"github.com/hexen-lang/hexen/internal/errors"
	"github.com/hexen-lang/hexen/internal/symbols"
	"github.com/hexen-lang/hexen/internal/types"
)

// analyzeValDecl handles `val name [: Type] = init` (spec §4.F). val may
// preserve a comptime type when no annotation is given, except for the
// three initializer shapes that mandate one: a function call, a
// conditional expression, or an expression block, checked structurally
// (the top-level AST node of Init, not anything nested inside it).
func (a *Analyzer) analyzeValDecl(decl *ast.ValDecl) {
	declaredType := a.resolveTypeRef(decl.DeclaredType)

	if declaredType == nil && requiresExplicitAnnotation(decl.Init) {
		a.sink.Add(errors.New(errors.AN002, errors.PhaseSymbols,
			fmt.Sprintf("val %q must declare its type because its initializer is %s", decl.Name, initializerKindName(decl.Init)),
			span(decl.Pos)))
		declaredType = types.Unknown
	}

	finalType := a.analyzeDeclInit(decl.Init, declaredType)
	if declaredType == nil {
		declaredType = finalType
	}

	a.declareSymbol(decl.Name, declaredType, false, true, decl.Pos)
}

// analyzeMutDecl handles `mut name : Type = init` (or `= undef`). The
// declared type is always mandatory; a mut binding never preserves a
// comptime type regardless of its initializer (spec §4.F).
func (a *Analyzer) analyzeMutDecl(decl *ast.MutDecl) {
	declaredType := a.resolveTypeRef(decl.DeclaredType)
	if declaredType == nil {
		a.sink.Add(errors.New(errors.AN001, errors.PhaseSymbols,
			fmt.Sprintf("mut %q must declare its type", decl.Name), span(decl.Pos)))
		declaredType = types.Unknown
	}

	initialized := true
	if _, isUndef := decl.Init.(*ast.Undef); isUndef {
		initialized = false
	} else {
		a.analyzeDeclInit(decl.Init, declaredType)
	}

	a.declareSymbol(decl.Name, declaredType, true, initialized, decl.Pos)
}

// analyzeDeclInit analyzes a declaration's initializer against an optional
// declared-type context and returns the type the binding should carry:
// the declared type when one was given (after checking the initializer
// converts to it), otherwise the initializer's own inferred type.
func (a *Analyzer) analyzeDeclInit(init ast.Expr, declaredType types.Type) types.Type {
	if copyExpr, ok := init.(*ast.ArrayCopy); ok {
		if declaredType == nil {
			a.sink.Add(errors.New(errors.AN002, errors.PhaseSymbols,
				"a[..] initializer needs a declared array type to copy into", span(copyExpr.Pos)))
			a.analyzeExpr(copyExpr.Array, nil)
			return types.Unknown
		}
		return a.analyzeArrayCopySource(copyExpr, declaredType)
	}

	inferred := a.analyzeExpr(init, declaredType)
	if declaredType == nil || types.IsUnknown(inferred) || types.IsUnknown(declaredType) {
		return inferred
	}

	// A concrete array value is never implicitly copied (spec §4.C rule 6
	// preface), even when source and target happen to be the exact same
	// shape — this check must run before the general identity shortcut.
	if arr, isArr := inferred.(*types.Array); isArr {
		if target, targetIsArr := declaredType.(*types.Array); targetIsArr {
			a.requireArrayCopy(init, arr, target)
			return declaredType
		}
	}

	if inferred.Equals(declaredType) {
		return declaredType
	}

	conv := a.engine.Classify(inferred, declaredType)
	switch conv.Verdict {
	case types.Implicit:
		return declaredType
	case types.ExplicitRequired:
		a.sink.Add(errors.New(errors.CV001, errors.PhaseTypes,
			fmt.Sprintf("%s does not convert to declared type %s", types.Format(inferred), types.Format(declaredType)),
			span(init.Position())).WithFix("add an explicit conversion", conv.Suggestion))
	default:
		a.sink.Add(errors.New(errors.TY001, errors.PhaseTypes,
			fmt.Sprintf("%s is incompatible with declared type %s", types.Format(inferred), types.Format(declaredType)),
			span(init.Position())))
	}
	return declaredType
}

// declareSymbol registers name in the current scope, diagnosing a
// same-scope redeclaration (spec §4.B) without overwriting the prior
// binding.
func (a *Analyzer) declareSymbol(name string, t types.Type, mutable, initialized bool, pos ast.Pos) {
	ok, existing := a.symtab.Declare(&symbols.Symbol{
		Name:          name,
		DeclaredType:  t,
		IsMutable:     mutable,
		IsInitialized: initialized,
		DeclPos:       pos,
	})
	if !ok {
		a.sink.Add(errors.New(errors.SY002, errors.PhaseSymbols,
			fmt.Sprintf("%q is already declared in this scope", name), span(pos)).
			WithData("first_declared_at", existing.DeclPos.String()))
	}
}

// requiresExplicitAnnotation reports whether init's top-level AST shape is
// one of the three that mandate a val type annotation (spec §4.F): a
// function call, a conditional expression, or an expression block. A
// call/conditional/block nested inside some other expression (e.g. as an
// operand of a binary operator) does not count.
func requiresExplicitAnnotation(init ast.Expr) bool {
	switch init.(type) {
	case *ast.CallExpr, *ast.IfExpr, *ast.BlockExpr:
		return true
	default:
		return false
	}
}

func initializerKindName(init ast.Expr) string {
	switch init.(type) {
	case *ast.CallExpr:
		return "a function call"
	case *ast.IfExpr:
		return "a conditional expression"
	case *ast.BlockExpr:
		return "an expression block"
	default:
		return "this form"
	}
}

// analyzeAssign handles `lhs = rhs` (spec §4.B "Assignment"). The target
// must resolve to a mutable lvalue: a mut-bound identifier, an index into
// a mut-bound array, or (reserved for a future record feature) a property
// of one.
func (a *Analyzer) analyzeAssign(asn *ast.Assign) {
	targetType, mutable := a.analyzeLValue(asn.Target)
	if !mutable {
		if copyExpr, ok := asn.Value.(*ast.ArrayCopy); ok {
			a.analyzeExpr(copyExpr.Array, nil)
		} else {
			a.analyzeExpr(asn.Value, nil)
		}
		return
	}

	if copyExpr, ok := asn.Value.(*ast.ArrayCopy); ok {
		if !types.IsUnknown(targetType) {
			a.analyzeArrayCopySource(copyExpr, targetType)
		} else {
			a.analyzeExpr(copyExpr.Array, nil)
		}
	} else {
		a.analyzeDeclInit(asn.Value, targetType)
	}

	if id, ok := asn.Target.(*ast.Identifier); ok {
		a.symtab.MarkInitialized(id.Name)
	}
}

// analyzeLValue resolves an assignment target, returning its element type
// and whether it is mutable. Any failure is diagnosed and reports
// mutable=false so the caller skips the RHS-conversion check (the RHS is
// still visited, just without a target type to check against).
func (a *Analyzer) analyzeLValue(target ast.Expr) (types.Type, bool) {
	switch t := target.(type) {
	case *ast.Identifier:
		sym := a.symtab.Lookup(t.Name)
		if sym == nil {
			a.sink.Add(errors.New(errors.SY001, errors.PhaseSymbols,
				fmt.Sprintf("undeclared name %q", t.Name), span(t.Pos)))
			return types.Unknown, false
		}
		if !sym.IsMutable {
			a.sink.Add(errors.New(errors.SY004, errors.PhaseSymbols,
				fmt.Sprintf("%q is not mutable; declare it with mut to assign to it", t.Name), span(t.Pos)))
			return types.Unknown, false
		}
		return sym.DeclaredType, true
	case *ast.ArrayAccess:
		baseType, baseMutable := a.analyzeLValue(t.Array)
		idxType := a.analyzeExpr(t.Index, types.I64)
		if !types.IsUnknown(idxType) && !types.IsInteger(idxType) {
			a.sink.Add(errors.New(errors.TY001, errors.PhaseTypes,
				"array index must be an integer type", span(t.Index.Position())))
		}
		if !baseMutable {
			return types.Unknown, false
		}
		arr, isArr := baseType.(*types.Array)
		if !isArr {
			a.sink.Add(errors.New(errors.AR007, errors.PhaseArray,
				fmt.Sprintf("cannot index %s, it is not an array", types.Format(baseType)), span(t.Pos)))
			return types.Unknown, false
		}
		return elementTypeAfterOneIndex(arr), true
	default:
		a.sink.Add(errors.New(errors.SY004, errors.PhaseSymbols,
			"assignment target must be a mutable variable or array element", span(target.Position())))
		a.analyzeExpr(target, nil)
		return types.Unknown, false
	}
}

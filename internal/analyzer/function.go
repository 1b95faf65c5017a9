package analyzer

import (
	"fmt"

	"github.com/hexen-lang/hexen/internal/ast"
	"github.com/hexen-lang/hexen/internal/errors"
	"github.com/hexen-lang/hexen/internal/symbols"
	"github.com/hexen-lang/hexen/internal/types"
)

// collectFunctions is the pre-pass of spec §4.J / §9: every top-level
// function is registered before any body is analyzed, so forward
// references between functions resolve regardless of declaration order.
func (a *Analyzer) collectFunctions(prog *ast.Program) {
	for _, fn := range prog.Funcs {
		params := make([]symbols.Param, len(fn.Params))
		for i, p := range fn.Params {
			pt := a.resolveTypeRef(p.Type)
			if pt == nil {
				a.sink.Add(errors.New(errors.AN003, errors.PhaseFunction,
					fmt.Sprintf("parameter %q is missing its type annotation", p.Name), span(p.Pos)))
				pt = types.Unknown
			}
			params[i] = symbols.Param{Name: p.Name, Type: pt, IsMut: p.IsMut}
		}

		retType := a.resolveTypeRef(fn.ReturnType)
		if retType == nil {
			a.sink.Add(errors.New(errors.AN003, errors.PhaseFunction,
				fmt.Sprintf("function %q is missing its return type annotation", fn.Name), span(fn.Pos)))
			retType = types.Unknown
		}

		ok, existing := a.symtab.DeclareFunction(&symbols.Function{
			Name: fn.Name, Params: params, ReturnType: retType, DeclPos: fn.Pos,
		})
		if !ok {
			a.sink.Add(errors.New(errors.SY002, errors.PhaseFunction,
				fmt.Sprintf("function %q is already declared", fn.Name), span(fn.Pos)).
				WithData("first_declared_at", existing.DeclPos.String()))
		}
	}
}

// analyzeFunction analyzes one function body as a function-context block
// (spec §4.G): params are declared in a fresh scope, the body is checked
// against the declared return type, and a void function is exempted from
// the "every path returns" requirement.
func (a *Analyzer) analyzeFunction(fn *ast.Func) {
	sym := a.symtab.LookupFunction(fn.Name)
	if sym == nil {
		// No function of this name is registered in the function table
		// (collectFunctions registers every function it sees, using Unknown
		// for a missing annotation); nothing more to check.
		return
	}

	prevReturn := a.currentReturnType
	a.currentReturnType = sym.ReturnType
	defer func() { a.currentReturnType = prevReturn }()

	a.symtab.EnterScope()
	defer a.symtab.LeaveScope()

	for _, p := range sym.Params {
		a.symtab.Declare(&symbols.Symbol{
			Name: p.Name, DeclaredType: p.Type, IsMutable: p.IsMut, IsInitialized: true,
		})
	}

	if fn.Body == nil {
		return
	}

	allPathsReturn := a.analyzeFunctionBody(fn.Body)
	if !allPathsReturn && !types.Void.Equals(sym.ReturnType) {
		a.sink.Add(errors.New(errors.CF001, errors.PhaseFunction,
			fmt.Sprintf("function %q does not return a value on every path", fn.Name), span(fn.Body.Pos)))
	}
}

// analyzeCall validates arity and per-argument convertibility (spec §4.J).
// The call's own target-type context is ignored for resolving the result
// (the callee's declared return type is authoritative); ctx is only used
// afterward, by the caller of analyzeCall, to check the result converts.
func (a *Analyzer) analyzeCall(call *ast.CallExpr) types.Type {
	fn := a.symtab.LookupFunction(call.Callee)
	if fn == nil {
		a.sink.Add(errors.New(errors.FN001, errors.PhaseFunction,
			fmt.Sprintf("call to undeclared function %q", call.Callee), span(call.Pos)))
		for _, arg := range call.Args {
			a.analyzeExpr(arg, nil)
		}
		return types.Unknown
	}

	if len(call.Args) != len(fn.Params) {
		a.sink.Add(errors.New(errors.FN002, errors.PhaseFunction,
			fmt.Sprintf("%q expects %d argument(s), got %d", call.Callee, len(fn.Params), len(call.Args)),
			span(call.Pos)).WithData("expected", len(fn.Params)).WithData("got", len(call.Args)))
		for _, arg := range call.Args {
			a.analyzeExpr(arg, nil)
		}
		return fn.ReturnType
	}

	for i, arg := range call.Args {
		param := fn.Params[i]
		a.analyzeArgument(arg, param.Type)
	}

	return fn.ReturnType
}

// analyzeArgument analyzes one call argument against its parameter type,
// applying the same array-copy requirements as any other conversion site
// (spec §4.I "Argument to a function").
func (a *Analyzer) analyzeArgument(arg ast.Expr, paramType types.Type) {
	if copyExpr, ok := arg.(*ast.ArrayCopy); ok {
		a.analyzeArrayCopySource(copyExpr, paramType)
		return
	}

	argType := a.analyzeExpr(arg, paramType)
	if types.IsUnknown(argType) || types.IsUnknown(paramType) {
		return
	}

	if arr, isArr := argType.(*types.Array); isArr {
		if target, targetIsArr := paramType.(*types.Array); targetIsArr {
			a.requireArrayCopy(arg, arr, target)
			return
		}
	}

	conv := a.engine.Classify(argType, paramType)
	switch conv.Verdict {
	case types.Implicit:
		// ok
	case types.ExplicitRequired:
		a.sink.Add(errors.New(errors.FN003, errors.PhaseFunction,
			fmt.Sprintf("argument of type %s does not convert to parameter type %s", types.Format(argType), types.Format(paramType)),
			span(arg.Position())).WithFix("add an explicit conversion", conv.Suggestion))
	default:
		a.sink.Add(errors.New(errors.FN003, errors.PhaseFunction,
			fmt.Sprintf("argument of type %s cannot convert to parameter type %s", types.Format(argType), types.Format(paramType)),
			span(arg.Position())))
	}
}

package analyzer

import (
	"fmt"

	"github.com/hexen-lang/hexen/internal/ast"
	"github.com/hexen-lang/hexen/internal/errors"
	"github.com/hexen-lang/hexen/internal/types"
)

// analyzeExpr is the uniform expression-analyzer entry point (spec §4.D):
// `analyze(expr, context) -> Type`. ctx is an optional downward hint; it
// never forces the result and is never mutated by callees. On any
// diagnosed error the function returns types.Unknown and does not recurse
// further into the offending subtree, but sibling expressions are still
// visited by their own analyzeExpr calls (spec §7 "Propagation").
func (a *Analyzer) analyzeExpr(expr ast.Expr, ctx types.Type) types.Type {
	if expr == nil {
		return types.Unknown
	}

	switch e := expr.(type) {
	case *ast.Literal:
		return a.analyzeLiteral(e, ctx)
	case *ast.Undef:
		a.sink.Add(errors.New(errors.SY003, errors.PhaseSymbols,
			"undef may only initialize a mut declaration", span(e.Pos)))
		return types.Unknown
	case *ast.Identifier:
		return a.analyzeIdentifier(e)
	case *ast.BinaryExpr:
		return a.analyzeBinary(e, ctx)
	case *ast.UnaryExpr:
		return a.analyzeUnary(e, ctx)
	case *ast.ConversionExpr:
		return a.analyzeConversion(e)
	case *ast.ArrayLiteral:
		return a.analyzeArrayLiteral(e, ctx)
	case *ast.ArrayAccess:
		return a.analyzeArrayAccess(e)
	case *ast.ArrayCopy:
		a.sink.Add(errors.New(errors.AR007, errors.PhaseArray,
			"a[..] may only appear as the source of an assignment, argument, or conversion", span(e.Pos)))
		a.analyzeExpr(e.Array, nil)
		return types.Unknown
	case *ast.PropertyAccess:
		return a.analyzePropertyAccess(e)
	case *ast.BlockExpr:
		return a.analyzeBlockExpr(e, ctx)
	case *ast.IfExpr:
		return a.analyzeConditionalExpr(e, ctx)
	case *ast.CallExpr:
		// A function call is always a disqualifying construct for block
		// evaluability classification (spec §4.G), regardless of what the
		// callee returns.
		a.markRuntime()
		result := a.analyzeCall(e)
		if ctx != nil && !types.IsUnknown(result) {
			a.checkContextConversion(expr, result, ctx, errors.TY001)
		}
		return result
	default:
		a.sink.Add(errors.New(errors.TY001, errors.PhaseTypes,
			fmt.Sprintf("internal: unrecognized expression node %T", expr), span(expr.Position())))
		return types.Unknown
	}
}

func (a *Analyzer) analyzeLiteral(lit *ast.Literal, ctx types.Type) types.Type {
	switch lit.Kind {
	case ast.IntLit:
		if target, ok := ctx.(*types.Concrete); ok && a.config.DiagnoseOverflow {
			if overflowed, lo, hi := types.OverflowCheck(lit.Int, target); overflowed {
				a.sink.Add(errors.New(errors.CV003, errors.PhaseTypes,
					fmt.Sprintf("literal %d overflows %s (valid range [%d, %d])", lit.Int, target, lo, hi),
					span(lit.Pos)).WithData("value", lit.Int).WithData("min", lo).WithData("max", hi))
				return types.Unknown
			}
		}
		return types.ComptimeInt
	case ast.FloatLit:
		return types.ComptimeFloat
	case ast.StringLit:
		return types.String
	case ast.BoolLit:
		return types.Bool
	default:
		return types.Unknown
	}
}

func (a *Analyzer) analyzeIdentifier(id *ast.Identifier) types.Type {
	sym := a.symtab.Lookup(id.Name)
	if sym == nil {
		a.sink.Add(errors.New(errors.SY001, errors.PhaseSymbols,
			fmt.Sprintf("undeclared name %q", id.Name), span(id.Pos)))
		return types.Unknown
	}
	if !sym.IsInitialized {
		a.sink.Add(errors.New(errors.SY003, errors.PhaseSymbols,
			fmt.Sprintf("%q is used before it is ever assigned", id.Name), span(id.Pos)))
		return types.Unknown
	}

	// A reference to a concrete (non-comptime) variable disqualifies any
	// enclosing expression block from being compile-time evaluable
	// (spec §4.G). Comptime-typed bindings (val preserving comptime_int,
	// comptime_float, or a ComptimeArray) do not disqualify anything.
	if !types.IsComptime(sym.DeclaredType) && !types.IsComptimeArray(sym.DeclaredType) {
		a.markRuntime()
	}

	return sym.DeclaredType
}

func (a *Analyzer) analyzeConversion(conv *ast.ConversionExpr) types.Type {
	target := a.resolveTypeRef(conv.Target)
	if target == nil {
		target = types.Unknown
	}

	if arrLit, ok := conv.Value.(*ast.ArrayCopy); ok {
		return a.analyzeArrayCopySource(arrLit, target)
	}

	source := a.analyzeExpr(conv.Value, target)
	if types.IsUnknown(source) || types.IsUnknown(target) {
		return target
	}

	if srcArr, isSrcArr := source.(*types.Array); isSrcArr {
		if _, targetIsArr := target.(*types.Array); targetIsArr {
			a.sink.Add(errors.New(errors.AR006, errors.PhaseArray,
				"converting a concrete array requires the copy operator: a[..]:"+types.Format(target),
				span(conv.Pos)).WithFix("add the copy operator", "[..]"))
			_ = srcArr
			return types.Unknown
		}
	}

	conversion := a.engine.Classify(source, target)
	switch conversion.Verdict {
	case types.Implicit, types.ExplicitRequired:
		return target
	default:
		a.sink.Add(errors.New(errors.CV002, errors.PhaseTypes,
			fmt.Sprintf("%s can never convert to %s", types.Format(source), types.Format(target)),
			span(conv.Pos)))
		return types.Unknown
	}
}

// checkContextConversion validates that a computed type converts to a
// downward context, used by call expressions and other sites where the
// context does not participate in resolving the result but still
// constrains it afterward (spec §4.J "the result is then checked against
// the context via the conversion engine").
func (a *Analyzer) checkContextConversion(node ast.Node, got, ctx types.Type, code string) {
	if types.IsUnknown(got) || types.IsUnknown(ctx) {
		return
	}
	if got.Equals(ctx) {
		return
	}
	conv := a.engine.Classify(got, ctx)
	switch conv.Verdict {
	case types.Implicit:
		return
	case types.ExplicitRequired:
		a.sink.Add(errors.New(errors.CV001, errors.PhaseTypes,
			fmt.Sprintf("%s does not convert to %s", types.Format(got), types.Format(ctx)),
			span(node.Position())).WithFix("add an explicit conversion", conv.Suggestion))
	default:
		a.sink.Add(errors.New(code, errors.PhaseTypes,
			fmt.Sprintf("%s is incompatible with expected type %s", types.Format(got), types.Format(ctx)),
			span(node.Position())))
	}
}

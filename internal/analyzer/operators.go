package analyzer

import (
	"fmt"

	"github.com/hexen-lang/hexen/internal/ast"
	"github.com/hexen-lang/hexen/internal/errors"
	"github.com/hexen-lang/hexen/internal/types"
)

// operatorKind partitions operators into the four families of spec §4.E.
type operatorKind int

const (
	opArithmetic operatorKind = iota
	opFloatDiv
	opIntDiv
	opComparison
	opLogical
	opUnknown
)

func classifyOperator(op string) operatorKind {
	switch op {
	case "+", "-", "*", "%":
		return opArithmetic
	case "/":
		return opFloatDiv
	case "\\":
		return opIntDiv
	case "<", ">", "<=", ">=", "==", "!=":
		return opComparison
	case "&&", "||":
		return opLogical
	default:
		return opUnknown
	}
}

// analyzeBinary applies the four-pattern rule uniformly across arithmetic
// and comparison operators (spec §4.E). Logical operators (&&, ||) are
// handed to analyzeLogicalBinary, which requires two bool operands.
func (a *Analyzer) analyzeBinary(bin *ast.BinaryExpr, ctx types.Type) types.Type {
	kind := classifyOperator(bin.Op)

	if kind == opLogical {
		return a.analyzeLogicalBinary(bin)
	}

	// For arithmetic/comparison the operand context is the expression's own
	// context only when the operator preserves the operand type (arithmetic);
	// comparisons always yield bool, so their operands get no outward context.
	var operandCtx types.Type
	if kind == opArithmetic || kind == opFloatDiv || kind == opIntDiv {
		operandCtx = ctx
	}

	left := a.analyzeExpr(bin.Left, operandCtx)
	right := a.analyzeExpr(bin.Right, operandCtx)

	if types.IsUnknown(left) || types.IsUnknown(right) {
		return types.Unknown
	}

	if kind == opIntDiv {
		if !types.IsInteger(left) || !types.IsInteger(right) {
			a.sink.Add(errors.New(errors.TY001, errors.PhaseTypes,
				"\\ (integer division) requires both operands to be integers", span(bin.Pos)))
			return types.Unknown
		}
	}
	if !types.IsNumeric(left) || !types.IsNumeric(right) {
		if left.Equals(types.Bool) && right.Equals(types.Bool) && kind == opComparison {
			// strict equality on bool is allowed for ==/!= only.
			if bin.Op == "==" || bin.Op == "!=" {
				return types.Bool
			}
		}
		if left.Equals(types.String) && right.Equals(types.String) && kind == opComparison {
			if bin.Op == "==" || bin.Op == "!=" {
				return types.Bool
			}
		}
		a.sink.Add(errors.New(errors.TY001, errors.PhaseTypes,
			fmt.Sprintf("operator %s requires numeric operands, got %s and %s", bin.Op, types.Format(left), types.Format(right)),
			span(bin.Pos)))
		return types.Unknown
	}

	result, ok := a.fourPatternResult(bin, left, right, kind)
	if !ok {
		return types.Unknown
	}

	if kind == opComparison {
		return types.Bool
	}
	return result
}

// fourPatternResult implements the four patterns of spec §4.E uniformly:
// 1. comptime ⊕ comptime -> comptime result (widened per §4.C rule 3)
// 2. comptime ⊕ concrete -> the comptime operand adapts to the concrete type
// 3. concrete_T ⊕ concrete_T -> T
// 4. concrete_T ⊕ concrete_U, T != U -> diagnosed, explicit conversion suggested
func (a *Analyzer) fourPatternResult(bin *ast.BinaryExpr, left, right types.Type, kind operatorKind) (types.Type, bool) {
	leftComptime, leftIsComptime := left.(*types.Comptime)
	rightComptime, rightIsComptime := right.(*types.Comptime)

	// Pattern 1: comptime ⊕ comptime.
	if leftIsComptime && rightIsComptime {
		if kind == opIntDiv {
			return types.ComptimeInt, true
		}
		if kind == opFloatDiv {
			return types.ComptimeFloat, true
		}
		return types.WidenComptimeResult(leftComptime, rightComptime), true
	}

	// Pattern 2: comptime ⊕ concrete.
	if leftIsComptime && !rightIsComptime {
		return a.adaptComptimeOperand(bin, leftComptime, right, kind)
	}
	if rightIsComptime && !leftIsComptime {
		return a.adaptComptimeOperand(bin, rightComptime, left, kind)
	}

	// Pattern 3 / 4: concrete ⊕ concrete.
	if left.Equals(right) {
		if kind == opFloatDiv {
			// float division of two concrete integers still requires the
			// concrete types to already be float (no implicit int->float).
			if types.IsInteger(left) {
				a.sink.Add(errors.New(errors.TY002, errors.PhaseTypes,
					fmt.Sprintf("/ (float division) requires float operands; %s needs an explicit conversion", left),
					span(bin.Pos)).WithFix("convert to a float type", fmt.Sprintf("%s:f64", nodeText(bin.Left))))
				return types.Unknown, false
			}
		}
		return left, true
	}

	suggestion := fmt.Sprintf("%s:%s", nodeText(bin.Left), right)
	a.sink.Add(errors.New(errors.TY002, errors.PhaseTypes,
		fmt.Sprintf("mixed concrete types in %s: %s and %s require an explicit conversion", bin.Op, left, right),
		span(bin.Pos)).WithFix("convert the left operand", suggestion))
	return types.Unknown, false
}

// adaptComptimeOperand is pattern 2: the comptime operand adapts to the
// concrete partner's type, or the operator is diagnosed if it cannot.
func (a *Analyzer) adaptComptimeOperand(bin *ast.BinaryExpr, comptimeOperand *types.Comptime, concreteType types.Type, kind operatorKind) (types.Type, bool) {
	conv := a.engine.Classify(comptimeOperand, concreteType)
	if conv.Verdict != types.Implicit {
		a.sink.Add(errors.New(errors.TY001, errors.PhaseTypes,
			fmt.Sprintf("%s cannot adapt to %s in this expression", comptimeOperand, concreteType),
			span(bin.Pos)))
		return types.Unknown, false
	}
	if kind == opFloatDiv && types.IsInteger(concreteType) {
		a.sink.Add(errors.New(errors.TY002, errors.PhaseTypes,
			fmt.Sprintf("/ (float division) requires a float operand; %s is integer", concreteType),
			span(bin.Pos)))
		return types.Unknown, false
	}
	return concreteType, true
}

// analyzeLogicalBinary handles &&, ||: both operands must be exactly bool.
func (a *Analyzer) analyzeLogicalBinary(bin *ast.BinaryExpr) types.Type {
	left := a.analyzeExpr(bin.Left, types.Bool)
	right := a.analyzeExpr(bin.Right, types.Bool)
	ok := true
	if !types.IsUnknown(left) && !left.Equals(types.Bool) {
		a.sink.Add(errors.New(errors.TY003, errors.PhaseTypes,
			fmt.Sprintf("operator %s requires bool operands, got %s", bin.Op, types.Format(left)), span(bin.Left.Position())))
		ok = false
	}
	if !types.IsUnknown(right) && !right.Equals(types.Bool) {
		a.sink.Add(errors.New(errors.TY003, errors.PhaseTypes,
			fmt.Sprintf("operator %s requires bool operands, got %s", bin.Op, types.Format(right)), span(bin.Right.Position())))
		ok = false
	}
	if !ok {
		return types.Unknown
	}
	return types.Bool
}

// analyzeUnary handles unary `-` (numerics) and `!` (bool).
func (a *Analyzer) analyzeUnary(u *ast.UnaryExpr, ctx types.Type) types.Type {
	switch u.Op {
	case "-":
		operand := a.analyzeExpr(u.Operand, ctx)
		if types.IsUnknown(operand) {
			return types.Unknown
		}
		if !types.IsNumeric(operand) {
			a.sink.Add(errors.New(errors.TY001, errors.PhaseTypes,
				fmt.Sprintf("unary - requires a numeric operand, got %s", types.Format(operand)), span(u.Pos)))
			return types.Unknown
		}
		return operand
	case "!":
		operand := a.analyzeExpr(u.Operand, types.Bool)
		if types.IsUnknown(operand) {
			return types.Unknown
		}
		if !operand.Equals(types.Bool) {
			a.sink.Add(errors.New(errors.TY003, errors.PhaseTypes,
				fmt.Sprintf("unary ! requires a bool operand, got %s", types.Format(operand)), span(u.Pos)))
			return types.Unknown
		}
		return types.Bool
	default:
		a.sink.Add(errors.New(errors.TY001, errors.PhaseTypes,
			fmt.Sprintf("internal: unrecognized unary operator %q", u.Op), span(u.Pos)))
		return types.Unknown
	}
}

// nodeText renders a best-effort source-like fragment for a fix suggestion.
// It only needs to handle identifiers and literals well; anything more
// complex falls back to a placeholder since the suggestion is illustrative.
func nodeText(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Identifier:
		return v.Name
	case *ast.Literal:
		return v.Text
	default:
		return "value"
	}
}

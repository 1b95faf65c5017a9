package analyzer

import (
	"fmt"

	"github.com/hexen-lang/hexen/internal/ast"
	"github.com/hexen-lang/hexen/internal/errors"
	"github.com/hexen-lang/hexen/internal/types"
)

// analyzeArrayLiteral classifies `[e1, e2, ...]` as either a ComptimeArray
// (every leaf a comptime scalar of one family) or a concrete Array (spec
// §4.I "Array literals"), enforcing rectangularity across nested literals.
func (a *Analyzer) analyzeArrayLiteral(lit *ast.ArrayLiteral, ctx types.Type) types.Type {
	if len(lit.Elements) == 0 {
		if arrCtx, ok := ctx.(*types.Array); ok {
			return arrCtx
		}
		a.sink.Add(errors.New(errors.CF004, errors.PhaseArray,
			"empty array literal needs a target type to infer its element type and size", span(lit.Pos)))
		return types.Unknown
	}

	elemCtx := elementContext(ctx)

	elemTypes := make([]types.Type, len(lit.Elements))
	for i, e := range lit.Elements {
		elemTypes[i] = a.analyzeExpr(e, elemCtx)
	}

	// Nested literal: every element must itself be an array of identical
	// shape (rectangularity) and compatible element kind.
	if nested, ok := elemTypes[0].(*types.ComptimeArray); ok {
		dims := append([]int{len(lit.Elements)}, nested.Dims...)
		family := nested.Family
		for i, t := range elemTypes {
			sub, isNested := t.(*types.ComptimeArray)
			if !isNested || len(sub.Dims) != len(nested.Dims) {
				a.sink.Add(errors.New(errors.AR001, errors.PhaseArray,
					"array literal is not rectangular: every row must have the same shape", span(lit.Elements[i].Position())))
				return types.Unknown
			}
			for d := range sub.Dims {
				if sub.Dims[d] != nested.Dims[d] {
					a.sink.Add(errors.New(errors.AR001, errors.PhaseArray,
						"array literal is not rectangular: every row must have the same shape", span(lit.Elements[i].Position())))
					return types.Unknown
				}
			}
			if sub.Family == types.FamilyFloat {
				family = types.FamilyFloat
			}
		}
		return &types.ComptimeArray{Family: family, Dims: dims}
	}
	if nestedArr, ok := elemTypes[0].(*types.Array); ok {
		dims := append([]types.Dim{{Size: len(lit.Elements)}}, nestedArr.Dims...)
		for i, t := range elemTypes {
			sub, isNested := t.(*types.Array)
			if !isNested || !sub.SameShape(nestedArr) {
				a.sink.Add(errors.New(errors.AR001, errors.PhaseArray,
					"array literal is not rectangular: every row must have the same shape", span(lit.Elements[i].Position())))
				return types.Unknown
			}
		}
		return &types.Array{Elem: nestedArr.Elem, Dims: dims}
	}

	// Leaf-level literal: all elements must be comptime scalars of a common
	// family, or already-concrete scalars of the same type.
	family, allComptime := commonComptimeFamily(elemTypes)
	if allComptime {
		return &types.ComptimeArray{Family: family, Dims: []int{len(lit.Elements)}}
	}

	first := elemTypes[0]
	for i, t := range elemTypes[1:] {
		if types.IsUnknown(t) {
			return types.Unknown
		}
		if !t.Equals(first) {
			a.sink.Add(errors.New(errors.AR001, errors.PhaseArray,
				fmt.Sprintf("array literal mixes element types %s and %s", types.Format(first), types.Format(t)),
				span(lit.Elements[i+1].Position())))
			return types.Unknown
		}
	}
	return &types.Array{Elem: first, Dims: []types.Dim{{Size: len(lit.Elements)}}}
}

// elementContext derives the context an array literal's elements should be
// analyzed under, from the literal's own declared-type context.
func elementContext(ctx types.Type) types.Type {
	arr, ok := ctx.(*types.Array)
	if !ok {
		return nil
	}
	if len(arr.Dims) <= 1 {
		return arr.Elem
	}
	return &types.Array{Elem: arr.Elem, Dims: arr.Dims[1:]}
}

// commonComptimeFamily reports whether every type in elems is a comptime
// scalar, and if so the widened family across all of them.
func commonComptimeFamily(elems []types.Type) (types.ComptimeFamily, bool) {
	sawFloat := false
	for _, t := range elems {
		c, ok := t.(*types.Comptime)
		if !ok {
			return 0, false
		}
		if c.Family == types.FamilyFloat {
			sawFloat = true
		}
	}
	if sawFloat {
		return types.FamilyFloat, true
	}
	return types.FamilyInt, true
}

// analyzeArrayAccess handles `a[i]` (spec §4.I "Indexing"): the base must
// be an array, the index must be integer-typed, and the result is the
// element type one rank down (a scalar for a rank-1 array, a smaller
// array for a higher-rank one).
func (a *Analyzer) analyzeArrayAccess(acc *ast.ArrayAccess) types.Type {
	baseType := a.analyzeExpr(acc.Array, nil)
	idxType := a.analyzeExpr(acc.Index, types.I64)
	if !types.IsUnknown(idxType) && !types.IsInteger(idxType) {
		a.sink.Add(errors.New(errors.TY001, errors.PhaseTypes,
			"array index must be an integer type", span(acc.Index.Position())))
	}

	if types.IsUnknown(baseType) {
		return types.Unknown
	}

	switch arr := baseType.(type) {
	case *types.Array:
		return elementTypeAfterOneIndex(arr)
	case *types.ComptimeArray:
		return comptimeElementAfterOneIndex(arr)
	default:
		a.sink.Add(errors.New(errors.AR007, errors.PhaseArray,
			fmt.Sprintf("cannot index %s, it is not an array", types.Format(baseType)), span(acc.Pos)))
		return types.Unknown
	}
}

// elementTypeAfterOneIndex returns the type of arr[i]: the element type
// itself if arr is rank 1, otherwise a same-element array one rank lower.
func elementTypeAfterOneIndex(arr *types.Array) types.Type {
	if len(arr.Dims) <= 1 {
		return arr.Elem
	}
	return &types.Array{Elem: arr.Elem, Dims: arr.Dims[1:]}
}

func comptimeElementAfterOneIndex(arr *types.ComptimeArray) types.Type {
	if len(arr.Dims) <= 1 {
		if arr.Family == types.FamilyFloat {
			return types.ComptimeFloat
		}
		return types.ComptimeInt
	}
	return &types.ComptimeArray{Family: arr.Family, Dims: arr.Dims[1:]}
}

// analyzePropertyAccess handles `a.name`. Only `.length` is meaningful
// (spec §4.I "Array properties"); it yields i64 and requires an array base.
func (a *Analyzer) analyzePropertyAccess(pa *ast.PropertyAccess) types.Type {
	baseType := a.analyzeExpr(pa.Object, nil)
	if types.IsUnknown(baseType) {
		return types.Unknown
	}
	if pa.Name != "length" {
		a.sink.Add(errors.New(errors.AR007, errors.PhaseArray,
			fmt.Sprintf("unknown property %q", pa.Name), span(pa.Pos)))
		return types.Unknown
	}
	switch baseType.(type) {
	case *types.Array, *types.ComptimeArray:
		return types.I64
	default:
		a.sink.Add(errors.New(errors.AR007, errors.PhaseArray,
			fmt.Sprintf(".length requires an array, got %s", types.Format(baseType)), span(pa.Pos)))
		return types.Unknown
	}
}

// analyzeArrayCopySource analyzes `a[..]` at a conversion/assignment/
// argument site against a concrete target array type (spec §4.C rules
// 7-9, §4.I "Explicit array copy"). It dispatches on whether the copy
// source is itself a comptime array literal or an already-concrete array
// variable.
func (a *Analyzer) analyzeArrayCopySource(copyExpr *ast.ArrayCopy, target types.Type) types.Type {
	targetArr, targetIsArr := target.(*types.Array)
	if !targetIsArr {
		a.sink.Add(errors.New(errors.AR003, errors.PhaseArray,
			fmt.Sprintf("a[..] requires an array target type, got %s", types.Format(target)), span(copyExpr.Pos)))
		a.analyzeExpr(copyExpr.Array, nil)
		return types.Unknown
	}

	sourceType := a.analyzeExpr(copyExpr.Array, nil)
	if types.IsUnknown(sourceType) {
		return types.Unknown
	}

	if comptimeArr, ok := sourceType.(*types.ComptimeArray); ok {
		ok, elemConv := a.engine.ArrayAdapt(comptimeArr, targetArr)
		if !ok {
			a.sink.Add(errors.New(errors.AR002, errors.PhaseArray,
				fmt.Sprintf("array literal of shape %s cannot adapt to %s: %s", comptimeArr, targetArr, elemConv.Reason),
				span(copyExpr.Pos)))
			return types.Unknown
		}
		resolved := types.ResolveInferredDims(targetArr.Dims, comptimeArr.Dims)
		return &types.Array{Elem: targetArr.Elem, Dims: resolved}
	}

	sourceArr, ok := sourceType.(*types.Array)
	if !ok {
		a.sink.Add(errors.New(errors.AR007, errors.PhaseArray,
			fmt.Sprintf("a[..] requires an array, got %s", types.Format(sourceType)), span(copyExpr.Pos)))
		return types.Unknown
	}
	return a.classifyConcreteArrayCopy(sourceArr, targetArr, copyExpr.Pos)
}

// requireArrayCopy diagnoses a concrete-array-to-concrete-array conversion
// site where the source expression was written without `[..]` (spec §4.C
// rule 6 preface: "a concrete array value is never implicitly copied").
func (a *Analyzer) requireArrayCopy(src ast.Expr, source, target *types.Array) {
	kind := types.ClassifyArrayCopy(source, target)
	if kind == types.ArrayIdentity {
		a.sink.Add(errors.New(errors.AR006, errors.PhaseArray,
			"assigning one array variable to another still requires the explicit copy operator: "+nodeText(src)+"[..]",
			span(src.Position())).WithFix("add the copy operator", "[..]"))
		return
	}
	a.sink.Add(errors.New(errors.AR006, errors.PhaseArray,
		fmt.Sprintf("converting %s to %s requires %s[..]:%s", source, target, nodeText(src), target),
		span(src.Position())).WithFix("add the copy operator and target annotation", nodeText(src)+"[..]:"+target.String()))
}

// classifyConcreteArrayCopy implements spec §4.C rules 7-9 once both sides
// of a[..] are known concrete array types.
func (a *Analyzer) classifyConcreteArrayCopy(source, target *types.Array, pos ast.Pos) types.Type {
	kind := types.ClassifyArrayCopy(source, target)
	switch kind {
	case types.ArrayIdentity:
		return target
	case types.ArrayCopyConvert:
		if !source.Elem.Equals(target.Elem) {
			conv := a.engine.Classify(source.Elem, target.Elem)
			if conv.Verdict == types.Forbidden {
				a.sink.Add(errors.New(errors.AR003, errors.PhaseArray,
					fmt.Sprintf("element type %s cannot adapt to %s", source.Elem, target.Elem), span(pos)))
				return types.Unknown
			}
		}
		return target
	default: // ArrayFlatten
		return a.classifyFlatten(source, target, pos)
	}
}

// classifyFlatten implements rule 9's product-equality / single-wildcard
// resolution for a dimension-changing array copy (spec §4.C, §9 "single
// wildcard only" Open Question decision).
func (a *Analyzer) classifyFlatten(source, target *types.Array, pos ast.Pos) types.Type {
	if !source.Elem.Equals(target.Elem) {
		conv := a.engine.Classify(source.Elem, target.Elem)
		if conv.Verdict == types.Forbidden {
			a.sink.Add(errors.New(errors.AR003, errors.PhaseArray,
				fmt.Sprintf("element type %s cannot adapt to %s", source.Elem, target.Elem), span(pos)))
			return types.Unknown
		}
	}

	wildcards := types.CountWildcards(target.Dims)
	if wildcards > 1 {
		a.sink.Add(errors.New(errors.AR005, errors.PhaseArray,
			"a flatten/reshape target may have at most one _ wildcard dimension", span(pos)))
		return types.Unknown
	}

	if !source.FullyConcrete() {
		a.sink.Add(errors.New(errors.AR004, errors.PhaseArray,
			"cannot flatten an array whose own shape is not fully known", span(pos)))
		return types.Unknown
	}

	if wildcards == 1 {
		resolved, ok := types.SolveSingleWildcard(target.Dims, source.Product())
		if !ok {
			a.sink.Add(errors.New(errors.AR004, errors.PhaseArray,
				fmt.Sprintf("%d elements do not divide evenly into the remaining dimensions", source.Product()), span(pos)))
			return types.Unknown
		}
		return &types.Array{Elem: target.Elem, Dims: resolved}
	}

	if !target.FullyConcrete() {
		a.sink.Add(errors.New(errors.AR004, errors.PhaseArray,
			"flatten target dimensions must be concrete or a single _ wildcard", span(pos)))
		return types.Unknown
	}
	if source.Product() != target.Product() {
		a.sink.Add(errors.New(errors.AR004, errors.PhaseArray,
			fmt.Sprintf("element count mismatch: source has %d elements, target has %d", source.Product(), target.Product()),
			span(pos)))
		return types.Unknown
	}
	return target
}

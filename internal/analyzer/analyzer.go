// Package analyzer is Hexen's semantic analysis core: it consumes a
// parsed internal/ast.Program and decides, for every construct, whether
// the program is well-typed and well-formed (spec §1, §2).
//
// The top-level shape — a struct holding a symbol table, a diagnostic
// sink, and per-run configuration, with one exported entry point that
// returns a result plus accumulated diagnostics rather than failing fast
// — follows github.com/sunholo/ailang/internal/types.CoreTypeChecker
// (internal/types/typechecker_core.go): instantiate, run, read back
// tc.errors.
package analyzer

import (
	"fmt"
	"os"

	"github.com/hexen-lang/hexen/internal/ast"
	"github.com/hexen-lang/hexen/internal/errors"
	"github.com/hexen-lang/hexen/internal/symbols"
	"github.com/hexen-lang/hexen/internal/types"
)

// Analyzer holds all per-run state. It is not safe to share across
// goroutines (spec §5): instantiate one Analyzer per module/file being
// analyzed, the way each reference CoreTypeChecker owns its own env.
type Analyzer struct {
	symtab *symbols.Table
	engine *types.Engine
	sink   *errors.Sink
	config *Config

	// currentReturnType is the enclosing function's declared return type,
	// threaded down as the context for `return` statements (spec §4.J).
	currentReturnType types.Type

	// runtimeFlags is a stack of "has this expression block seen a
	// disqualifying construct" markers, one entry per expression block
	// currently being analyzed (spec §4.G evaluability classification).
	// markRuntime sets every active entry, because a disqualifying
	// construct inside a nested block disqualifies every enclosing block
	// that is still being classified, not just the innermost one.
	runtimeFlags []*bool

	debugMode bool
}

// New creates an Analyzer with the given configuration (nil for defaults).
func New(config *Config) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Analyzer{
		symtab: symbols.New(),
		engine: types.NewEngine(),
		sink:   errors.NewSink(),
		config: config,
	}
}

// SetDebugMode enables trace output on os.Stderr (reference:
// CoreTypeChecker.SetDebugMode in internal/types/typechecker_core.go).
func (a *Analyzer) SetDebugMode(debug bool) {
	a.debugMode = debug
}

func (a *Analyzer) trace(format string, args ...interface{}) {
	if a.debugMode {
		fmt.Fprintf(os.Stderr, "[hexen] "+format+"\n", args...)
	}
}

// Result is what AnalyzeProgram returns: the collected diagnostics plus
// a best-effort indication of success. A non-empty Diagnostics list means
// the program is rejected (spec §7 "User-visible behavior").
type Result struct {
	Diagnostics []*errors.Report
	Accepted    bool
}

// AnalyzeProgram is the single entry point. It runs the function pre-pass
// (spec §4.J, §9 "Cyclic references") so forward references resolve, then
// analyzes every function body in declaration order.
func (a *Analyzer) AnalyzeProgram(prog *ast.Program) *Result {
	if prog == nil {
		return &Result{Accepted: true}
	}

	a.collectFunctions(prog)

	for _, fn := range prog.Funcs {
		a.analyzeFunction(fn)
	}

	reports := a.sink.Reports()
	return &Result{
		Diagnostics: reports,
		Accepted:    len(reports) == 0,
	}
}

// markRuntime flags every expression block currently being classified as
// containing a disqualifying construct.
func (a *Analyzer) markRuntime() {
	for _, f := range a.runtimeFlags {
		*f = true
	}
}

// resolveTypeRef converts the parser's small type-reference ADT into the
// analyzer's internal Type (spec §6 TypeRef contract, §4.A type model).
// A nil input means "no annotation" and resolves to nil, not Unknown —
// callers use nil to mean "context absent", distinct from a type error.
func (a *Analyzer) resolveTypeRef(tr ast.TypeRef) types.Type {
	if tr == nil {
		return nil
	}
	switch t := tr.(type) {
	case *ast.NameType:
		if c, ok := types.ConcreteByName(t.Name); ok {
			return c
		}
		a.sink.Add(errors.New(errors.TY001, errors.PhaseTypes,
			fmt.Sprintf("unknown type name %q", t.Name), span(t.Pos)))
		return types.Unknown
	case *ast.ArrayType:
		elem := a.resolveTypeRef(t.Elem)
		if elem == nil {
			elem = types.Unknown
		}
		dims := make([]types.Dim, len(t.Dims))
		for i, d := range t.Dims {
			dims[i] = types.Dim{Size: d.Size, Inferred: d.Inferred}
		}
		return &types.Array{Elem: elem, Dims: dims}
	default:
		return types.Unknown
	}
}

// span wraps a single position as a zero-width Span, the common case for
// diagnostics anchored to one node.
func span(p ast.Pos) *ast.Span {
	return &ast.Span{Start: p, End: p}
}

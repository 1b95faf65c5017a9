// Package symbols implements Hexen's lexical scope stack (spec §4.B): a
// chain of scopes supporting shadowing, variable/function declaration and
// lookup, mutability, and initialization-state tracking.
//
// The shape follows the reference environment in
// github.com/sunholo/ailang/internal/types/env.go (a binding map with a
// parent pointer, Lookup walking outward) but is mutable in place rather
// than copy-on-extend: Hexen's analyzer pushes/pops scopes around blocks
// and needs mark-initialized to mutate an existing binding it already
// returned to a caller.
package symbols

import (
	"github.com/hexen-lang/hexen/internal/ast"
	"github.com/hexen-lang/hexen/internal/types"
)

// Symbol is one declared name (spec §3 "Symbols").
type Symbol struct {
	Name          string
	DeclaredType  types.Type
	IsMutable     bool
	IsInitialized bool
	DefiningScope int // depth at which this symbol was declared
	DeclPos       ast.Pos
}

// Param describes one formal parameter of a Function symbol.
type Param struct {
	Name  string
	Type  types.Type
	IsMut bool
}

// Function is a symbol for a top-level function declaration, visible at
// program scope regardless of declaration order (spec §4.B, §4.J).
type Function struct {
	Name       string
	Params     []Param
	ReturnType types.Type
	DeclPos    ast.Pos
}

// scope is one lexical level: a flat map of names declared directly in it.
type scope struct {
	bindings map[string]*Symbol
}

func newScope() *scope {
	return &scope{bindings: make(map[string]*Symbol)}
}

// Table is the scope stack plus the separate, flat function namespace.
// Functions live outside the scope stack because they are collected in a
// pre-pass and are visible everywhere in the module (spec §4.B, §9).
type Table struct {
	scopes    []*scope
	functions map[string]*Function
}

// New creates a table with a single, program-level scope pushed.
func New() *Table {
	t := &Table{functions: make(map[string]*Function)}
	t.EnterScope()
	return t
}

// EnterScope pushes a new, empty scope. Children inherit visibility of
// every outer binding through Lookup's outward walk (spec §3 "Lifecycle").
func (t *Table) EnterScope() {
	t.scopes = append(t.scopes, newScope())
}

// LeaveScope pops the innermost scope. Every name declared in it vanishes.
func (t *Table) LeaveScope() {
	if len(t.scopes) == 0 {
		return
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Depth returns the current scope nesting depth (1 at program scope).
func (t *Table) Depth() int {
	return len(t.scopes)
}

// Declare adds a new binding to the innermost scope. It fails (returns
// false, existing) when name is already bound in that same scope — shadowing
// an outer scope is fine and is not a redeclaration (spec §4.B).
func (t *Table) Declare(sym *Symbol) (ok bool, existing *Symbol) {
	top := t.scopes[len(t.scopes)-1]
	if prior, found := top.bindings[sym.Name]; found {
		return false, prior
	}
	sym.DefiningScope = len(t.scopes)
	top.bindings[sym.Name] = sym
	return true, nil
}

// Lookup walks outward from the innermost scope and returns the nearest
// binding for name, or nil if none is visible.
func (t *Table) Lookup(name string) *Symbol {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].bindings[name]; ok {
			return sym
		}
	}
	return nil
}

// MarkInitialized transitions a symbol from declared-uninitialized to
// initialized. This transition never runs backward (spec §9 "State machines").
func (t *Table) MarkInitialized(name string) {
	if sym := t.Lookup(name); sym != nil {
		sym.IsInitialized = true
	}
}

// DeclareFunction registers a function in the flat, program-wide function
// namespace. It fails when the name is already registered (functions don't
// shadow; spec §4.B "no cyclic references beyond function-to-function by name"
// implies a single flat namespace, not per-scope functions).
func (t *Table) DeclareFunction(fn *Function) (ok bool, existing *Function) {
	if prior, found := t.functions[fn.Name]; found {
		return false, prior
	}
	t.functions[fn.Name] = fn
	return true, nil
}

// LookupFunction returns the function named name, or nil.
func (t *Table) LookupFunction(name string) *Function {
	return t.functions[name]
}

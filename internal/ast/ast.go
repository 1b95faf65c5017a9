// Package ast defines the node shapes the semantic analyzer consumes.
//
// The analyzer treats this tree as an immutable, already-parsed input
// (spec §6): lexing, parsing, and concrete syntax are a parser's
// problem. Every node carries a Pos for diagnostic rendering and a
// NodeID so the analyzer can attach diagnostics to a specific node
// without walking back through parent pointers.
package ast

import "fmt"

// Pos is a source position. The analyzer never interprets File/Line/Column;
// it only threads them through to diagnostics.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open source range used for diagnostics and for "first
// declared at" pointers on redeclaration errors.
type Span struct {
	Start Pos
	End   Pos
}

// NodeID identifies an AST node uniquely within one Program. The parser
// (out of scope) is expected to assign these; the analyzer only reads them.
type NodeID uint64

// Node is the base contract every AST node satisfies.
type Node interface {
	Position() Pos
	ID() NodeID
}

// Program is the root of the tree: a flat list of function declarations.
// Hexen has no module system in scope for this analyzer (spec §1).
type Program struct {
	Funcs []*Func
	Pos   Pos
	NID   NodeID
}

func (p *Program) Position() Pos { return p.Pos }
func (p *Program) ID() NodeID    { return p.NID }

// Param is one formal parameter of a function.
type Param struct {
	Name    string
	Type    TypeRef
	IsMut   bool
	Pos     Pos
	NID     NodeID
}

func (p *Param) Position() Pos { return p.Pos }
func (p *Param) ID() NodeID    { return p.NID }

// Func is a top-level function declaration:
//
//	func name(params) : ret = { body }
type Func struct {
	Name       string
	Params     []*Param
	ReturnType TypeRef
	Body       *Block
	Pos        Pos
	NID        NodeID
}

func (f *Func) Position() Pos { return f.Pos }
func (f *Func) ID() NodeID    { return f.NID }

// ---------------------------------------------------------------------------
// Type references (surface syntax for types, distinct from internal/types.Type)
// ---------------------------------------------------------------------------

// TypeRef is the small ADT the parser produces for type annotations.
type TypeRef interface {
	Node
	typeRefNode()
}

// NameType is a bare type name: i32, i64, f32, f64, bool, string, void.
type NameType struct {
	Name string
	Pos  Pos
	NID  NodeID
}

func (n *NameType) Position() Pos  { return n.Pos }
func (n *NameType) ID() NodeID     { return n.NID }
func (n *NameType) typeRefNode()   {}

// DimRef is one dimension entry in an array type reference: either a
// concrete size or the inferred wildcard `_`.
type DimRef struct {
	Size      int // valid only if !Inferred
	Inferred  bool
}

// ArrayType is `[N]elem`, `[_]elem`, or nested `[N1][N2]...elem`. A
// multi-dimensional type is a single ArrayType whose Dims hold every
// level's size in source order (outermost first) and whose Elem is the
// innermost scalar type.
type ArrayType struct {
	Dims []DimRef
	Elem TypeRef
	Pos  Pos
	NID  NodeID
}

func (a *ArrayType) Position() Pos { return a.Pos }
func (a *ArrayType) ID() NodeID    { return a.NID }
func (a *ArrayType) typeRefNode()  {}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// Stmt is any node that may appear directly inside a Block's statement list.
type Stmt interface {
	Node
	stmtNode()
}

// ValDecl is `val name [: Type] = init`.
type ValDecl struct {
	Name        string
	DeclaredType TypeRef // nil if omitted
	Init        Expr
	Pos         Pos
	NID         NodeID
}

func (v *ValDecl) Position() Pos { return v.Pos }
func (v *ValDecl) ID() NodeID    { return v.NID }
func (v *ValDecl) stmtNode()     {}

// MutDecl is `mut name : Type = init` (or `= undef`). The declared type is
// mandatory at the syntax level already, but the analyzer re-validates it
// (spec §4.F) since a hand-built test AST may omit it.
type MutDecl struct {
	Name        string
	DeclaredType TypeRef
	Init        Expr // may be an *Undef
	Pos         Pos
	NID         NodeID
}

func (m *MutDecl) Position() Pos { return m.Pos }
func (m *MutDecl) ID() NodeID    { return m.NID }
func (m *MutDecl) stmtNode()     {}

// Assign is `lhs = rhs`.
type Assign struct {
	Target Expr // Identifier, ArrayAccess, or PropertyAccess
	Value  Expr
	Pos    Pos
	NID    NodeID
}

func (a *Assign) Position() Pos { return a.Pos }
func (a *Assign) ID() NodeID    { return a.NID }
func (a *Assign) stmtNode()     {}

// Return is `return` or `return expr`.
type Return struct {
	Value Expr // nil for bare `return`
	Pos   Pos
	NID   NodeID
}

func (r *Return) Position() Pos { return r.Pos }
func (r *Return) ID() NodeID    { return r.NID }
func (r *Return) stmtNode()     {}

// Yield is `-> expr`, the block-value production form.
type Yield struct {
	Value Expr
	Pos   Pos
	NID   NodeID
}

func (y *Yield) Position() Pos { return y.Pos }
func (y *Yield) ID() NodeID    { return y.NID }
func (y *Yield) stmtNode()     {}

// ExprStmt wraps an expression used purely for effect (a call, typically).
type ExprStmt struct {
	Value Expr
	Pos   Pos
	NID   NodeID
}

func (e *ExprStmt) Position() Pos { return e.Pos }
func (e *ExprStmt) ID() NodeID    { return e.NID }
func (e *ExprStmt) stmtNode()     {}

// BlockStmt is a nested `{ ... }` appearing as a statement (no `-> e`, its
// own scope, may contain `return`).
type BlockStmt struct {
	Body *Block
	Pos  Pos
	NID  NodeID
}

func (b *BlockStmt) Position() Pos { return b.Pos }
func (b *BlockStmt) ID() NodeID    { return b.NID }
func (b *BlockStmt) stmtNode()     {}

// IfStmt is `if cond { ... } else if ... else { ... }` used as a statement.
type IfStmt struct {
	Cond   Expr
	Then   *Block
	Else   *Block   // nil if no else
	ElseIf *IfStmt  // nil unless this chains to `else if`
	Pos    Pos
	NID    NodeID
}

func (i *IfStmt) Position() Pos { return i.Pos }
func (i *IfStmt) ID() NodeID    { return i.NID }
func (i *IfStmt) stmtNode()     {}

// Block is the one `{ ... }` construct (spec §4.G); its role (function
// body / expression block / statement block) is decided by where it is
// attached in the tree, not by anything recorded on Block itself.
type Block struct {
	Stmts []Stmt
	Pos   Pos
	NID   NodeID
}

func (b *Block) Position() Pos { return b.Pos }
func (b *Block) ID() NodeID    { return b.NID }

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Expr is any node usable in a value position.
type Expr interface {
	Node
	exprNode()
}

// LiteralKind distinguishes the handful of leaf literal forms.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	BoolLit
)

// Literal is an integer/float/string/bool literal.
type Literal struct {
	Kind  LiteralKind
	Text  string // original lexeme, for overflow/precision diagnostics
	Int   int64
	Float float64
	Str   string
	Bool  bool
	Pos   Pos
	NID   NodeID
}

func (l *Literal) Position() Pos { return l.Pos }
func (l *Literal) ID() NodeID    { return l.NID }
func (l *Literal) exprNode()     {}

// Undef is the `undef` initializer, legal only for `mut`.
type Undef struct {
	Pos Pos
	NID NodeID
}

func (u *Undef) Position() Pos { return u.Pos }
func (u *Undef) ID() NodeID    { return u.NID }
func (u *Undef) exprNode()     {}

// Identifier is a name reference.
type Identifier struct {
	Name string
	Pos  Pos
	NID  NodeID
}

func (i *Identifier) Position() Pos { return i.Pos }
func (i *Identifier) ID() NodeID    { return i.NID }
func (i *Identifier) exprNode()     {}

// BinaryExpr is `left op right`.
type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
	Pos   Pos
	NID   NodeID
}

func (b *BinaryExpr) Position() Pos { return b.Pos }
func (b *BinaryExpr) ID() NodeID    { return b.NID }
func (b *BinaryExpr) exprNode()     {}

// UnaryExpr is `-operand` or `!operand`.
type UnaryExpr struct {
	Op      string
	Operand Expr
	Pos     Pos
	NID     NodeID
}

func (u *UnaryExpr) Position() Pos { return u.Pos }
func (u *UnaryExpr) ID() NodeID    { return u.NID }
func (u *UnaryExpr) exprNode()     {}

// ConversionExpr is `e:T`, the only syntax for an explicit conversion.
type ConversionExpr struct {
	Value  Expr
	Target TypeRef
	Pos    Pos
	NID    NodeID
}

func (c *ConversionExpr) Position() Pos { return c.Pos }
func (c *ConversionExpr) ID() NodeID    { return c.NID }
func (c *ConversionExpr) exprNode()     {}

// ArrayLiteral is `[e1, e2, ...]`, possibly nested for multi-dimensional
// literals (each element itself an ArrayLiteral).
type ArrayLiteral struct {
	Elements []Expr
	Pos      Pos
	NID      NodeID
}

func (a *ArrayLiteral) Position() Pos { return a.Pos }
func (a *ArrayLiteral) ID() NodeID    { return a.NID }
func (a *ArrayLiteral) exprNode()     {}

// ArrayAccess is `a[i]`.
type ArrayAccess struct {
	Array Expr
	Index Expr
	Pos   Pos
	NID   NodeID
}

func (a *ArrayAccess) Position() Pos { return a.Pos }
func (a *ArrayAccess) ID() NodeID    { return a.NID }
func (a *ArrayAccess) exprNode()     {}

// ArrayCopy is `a[..]`, the explicit-copy marker. The parser guarantees it
// only appears in RHS/argument/conversion-source position (spec §6); the
// analyzer re-checks this as defense in depth.
type ArrayCopy struct {
	Array Expr
	Pos   Pos
	NID   NodeID
}

func (a *ArrayCopy) Position() Pos { return a.Pos }
func (a *ArrayCopy) ID() NodeID    { return a.NID }
func (a *ArrayCopy) exprNode()     {}

// PropertyAccess is `a.name` (currently only `.length` is meaningful).
type PropertyAccess struct {
	Object Expr
	Name   string
	Pos    Pos
	NID    NodeID
}

func (p *PropertyAccess) Position() Pos { return p.Pos }
func (p *PropertyAccess) ID() NodeID    { return p.NID }
func (p *PropertyAccess) exprNode()     {}

// BlockExpr is `{ ... }` used in a value position; must end in Yield or
// Return (spec §4.G).
type BlockExpr struct {
	Body *Block
	Pos  Pos
	NID  NodeID
}

func (b *BlockExpr) Position() Pos { return b.Pos }
func (b *BlockExpr) ID() NodeID    { return b.NID }
func (b *BlockExpr) exprNode()     {}

// IfExpr is `if cond { -> e } else { -> e }` used in a value position.
type IfExpr struct {
	Cond   Expr
	Then   *Block
	Else   *Block // nil is a syntax error for expression form; analyzer diagnoses
	ElseIf *IfExpr
	Pos    Pos
	NID    NodeID
}

func (i *IfExpr) Position() Pos { return i.Pos }
func (i *IfExpr) ID() NodeID    { return i.NID }
func (i *IfExpr) exprNode()     {}

// CallExpr is `name(args...)`.
type CallExpr struct {
	Callee string
	Args   []Expr
	Pos    Pos
	NID    NodeID
}

func (c *CallExpr) Position() Pos { return c.Pos }
func (c *CallExpr) ID() NodeID    { return c.NID }
func (c *CallExpr) exprNode()     {}

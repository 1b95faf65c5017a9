// Package errors provides the structured diagnostic taxonomy for Hexen's
// semantic analyzer. All error builders return *Report, never a bare
// error string, so a Sink can be inspected programmatically by tests and
// by tooling downstream of the analyzer.
package errors

// Error codes are grouped by the taxonomy in spec.md §7. Each constant is
// a stable identifier a test or external tool can match on without
// depending on message text.
const (
	// ----------------------------------------------------------------
	// Type mismatch (TY###)
	// ----------------------------------------------------------------

	// TY001 indicates a source type is incompatible with a required target type.
	TY001 = "TY001"

	// TY002 indicates a binary/unary/comparison operator was applied to two
	// distinct concrete numeric types with no implicit path between them.
	TY002 = "TY002"

	// TY003 indicates a non-bool condition in an if/while predicate or in
	// a logical operator operand.
	TY003 = "TY003"

	// ----------------------------------------------------------------
	// Conversion (CV###)
	// ----------------------------------------------------------------

	// CV001 indicates a conversion is possible but requires explicit `:type` syntax.
	CV001 = "CV001"

	// CV002 indicates a conversion is forbidden in both implicit and explicit form
	// (comptime<->bool/string, bool<->string, bool/string<->numeric).
	CV002 = "CV002"

	// CV003 indicates a comptime_int literal overflows the target integer's range.
	CV003 = "CV003"

	// ----------------------------------------------------------------
	// Symbols (SY###)
	// ----------------------------------------------------------------

	// SY001 indicates a reference to a name with no visible declaration.
	SY001 = "SY001"

	// SY002 indicates a name was declared twice in the same scope.
	SY002 = "SY002"

	// SY003 indicates a read of a variable before it was ever assigned.
	SY003 = "SY003"

	// SY004 indicates an assignment whose target is not a mutable lvalue.
	SY004 = "SY004"

	// ----------------------------------------------------------------
	// Mandatory annotations (AN###)
	// ----------------------------------------------------------------

	// AN001 indicates a `mut` declaration is missing its required declared type.
	AN001 = "AN001"

	// AN002 indicates a `val` initialized by a function call, conditional
	// expression, or expression block is missing its required declared type.
	AN002 = "AN002"

	// AN003 indicates a function parameter or return type annotation is missing.
	AN003 = "AN003"

	// ----------------------------------------------------------------
	// Control flow (CF###)
	// ----------------------------------------------------------------

	// CF001 indicates a non-void function has a path with no `return`.
	CF001 = "CF001"

	// CF002 indicates `->` appears outside an expression-block context.
	CF002 = "CF002"

	// CF003 indicates an `if` used as an expression is missing `else`, or a
	// branch does not produce a value on every path.
	CF003 = "CF003"

	// CF004 indicates an empty array literal `[]` with no target type context.
	CF004 = "CF004"

	// ----------------------------------------------------------------
	// Arrays (AR###)
	// ----------------------------------------------------------------

	// AR001 indicates a non-rectangular array literal.
	AR001 = "AR001"

	// AR002 indicates a declared array dimension does not match the literal's
	// inferred size.
	AR002 = "AR002"

	// AR003 indicates an array copy `a[..]` whose target is not an array
	// type, or whose source element type can never convert to the target's.
	AR003 = "AR003"

	// AR004 indicates a flatten/reshape where product(source) != product(target).
	AR004 = "AR004"

	// AR005 indicates more than one `_` wildcard in a flatten target, which
	// this analyzer treats as ambiguous rather than solving a system of
	// factorizations (spec §9 Open Question).
	AR005 = "AR005"

	// AR006 indicates a concrete array used where the copy operator `[..]`
	// is syntactically required.
	AR006 = "AR006"

	// AR007 indicates a call/index/property access applied to a non-array type.
	AR007 = "AR007"

	// ----------------------------------------------------------------
	// Functions (FN###)
	// ----------------------------------------------------------------

	// FN001 indicates a call to an undeclared function.
	FN001 = "FN001"

	// FN002 indicates an argument-count mismatch at a call site.
	FN002 = "FN002"

	// FN003 indicates a call argument's type cannot convert to its parameter's type.
	FN003 = "FN003"
)

// Phase names used in Report.Phase.
const (
	PhaseTypes    = "types"
	PhaseSymbols  = "symbols"
	PhaseBlock    = "block"
	PhaseArray    = "array"
	PhaseFunction = "function"
)

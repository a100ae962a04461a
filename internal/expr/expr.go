// Package expr implements the assembler's expression tree: literals, label
// and symbol references, and binary +/- compounds, together with the
// reduction and operand-validation logic that turns them into encoded bits.
package expr

import "github.com/cisasm/assembler/internal/debugcontext"

// Expr is a sum type over the expression grammar. Every variant carries the
// source location of its first token for diagnostics. The marker method
// exprNode() prevents unrelated types from satisfying the interface.
type Expr interface {
	exprNode()
	// Loc returns the source location of the expression's first token.
	Loc() debugcontext.Location
	// IsReduced reports whether this expression is fully resolved to a
	// value (Integer, String, SymbolRef, or a Compound whose both sides
	// are themselves reduced).
	IsReduced() bool
}

// Integer is a fully-resolved numeric value.
type Integer struct {
	Value    uint32
	Location debugcontext.Location
}

func (e *Integer) exprNode()                       {}
func (e *Integer) Loc() debugcontext.Location       { return e.Location }
func (e *Integer) IsReduced() bool                  { return true }

// String is a zero-terminated sequence of 16-bit code units.
type String struct {
	Units    []uint16
	Location debugcontext.Location
}

func (e *String) exprNode()                 {}
func (e *String) Loc() debugcontext.Location { return e.Location }
func (e *String) IsReduced() bool            { return true }

// LabelRef is an unresolved bare identifier that names a label. During
// reduction it is rewritten to a SymbolRef (if the name is a known
// symbolic operand) or an Integer (once the label's address is known).
type LabelRef struct {
	Name     string
	Location debugcontext.Location
}

func (e *LabelRef) exprNode()                 {}
func (e *LabelRef) Loc() debugcontext.Location { return e.Location }
func (e *LabelRef) IsReduced() bool            { return false }

// SymbolRef is a resolved reference to a named symbolic operand (e.g. a
// register). It is a terminal, reduced node.
type SymbolRef struct {
	Name     string
	Location debugcontext.Location
}

func (e *SymbolRef) exprNode()                 {}
func (e *SymbolRef) Loc() debugcontext.Location { return e.Location }
func (e *SymbolRef) IsReduced() bool            { return true }

// Op is a binary operator in a Compound expression.
type Op int

const (
	Add Op = iota
	Sub
)

// Compound is a binary +/- combination of two expressions.
type Compound struct {
	Lhs, Rhs Expr
	Operator Op
	Location debugcontext.Location
}

func (e *Compound) exprNode()                 {}
func (e *Compound) Loc() debugcontext.Location { return e.Location }
func (e *Compound) IsReduced() bool            { return e.Lhs.IsReduced() && e.Rhs.IsReduced() }

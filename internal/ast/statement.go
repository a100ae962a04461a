// Package ast implements the assembler's statement set - Label, Instruction,
// Macro, and Data - and the reduction logic that turns a parsed statement
// stream into encoded machine words.
package ast

import (
	"github.com/cisasm/assembler/internal/debugcontext"
	"github.com/cisasm/assembler/internal/expr"
)

// Statement is a sum type representing one top-level construct in the
// assembly source. Every statement carries the source location of its
// first token for diagnostics. The marker method statementNode() prevents
// unrelated types from satisfying the interface.
type Statement interface {
	statementNode()
	// Loc returns the source location of the statement's first token.
	Loc() debugcontext.Location
}

// Label declares a code or local label at the current emission address.
type Label struct {
	Name          string
	Preregistered bool
	Location      debugcontext.Location
}

func (s *Label) statementNode()                 {}
func (s *Label) Loc() debugcontext.Location { return s.Location }

// Instruction is a mnemonic with its (not necessarily yet reduced)
// argument expressions.
type Instruction struct {
	Mnemonic string
	Args     []expr.Expr
	Location debugcontext.Location
}

func (s *Instruction) statementNode()                 {}
func (s *Instruction) Loc() debugcontext.Location { return s.Location }

// MacroOp names the four built-in pseudo-ops.
type MacroOp int

const (
	MacroString MacroOp = iota
	MacroVar
	MacroAlloc
	MacroStatic
)

// Macro is one of the four built-in pseudo-ops. Validated tracks whether
// the argument-count check has already run, so retries do not re-raise it.
type Macro struct {
	Op        MacroOp
	Args      []expr.Expr
	Validated bool
	Location  debugcontext.Location
}

func (s *Macro) statementNode()                 {}
func (s *Macro) Loc() debugcontext.Location { return s.Location }

// Data is a fully-resolved sequence of 16-bit words ready for the image.
// FixedOffset, when non-nil, is the absolute address to write the words at
// without advancing the emission cursor (used by the "static" pseudo-op).
type Data struct {
	Words       []uint16
	FixedOffset *uint32
	Location    debugcontext.Location
}

func (s *Data) statementNode()                 {}
func (s *Data) Loc() debugcontext.Location { return s.Location }

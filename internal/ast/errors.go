package ast

import (
	"fmt"

	"github.com/cisasm/assembler/internal/debugcontext"
)

// ErrorKind classifies the fatal reduction errors a statement can raise.
type ErrorKind int

const (
	UnknownInstruction ErrorKind = iota
	ExpectedArgument
	UnexpectedArgument
	ExpectedType
	TypeError
	LabelRedeclaration
	InvalidLabel
	Unresolved
	StaticOutOfRange
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownInstruction:
		return "UnknownInstruction"
	case ExpectedArgument:
		return "ExpectedArgument"
	case UnexpectedArgument:
		return "UnexpectedArgument"
	case ExpectedType:
		return "ExpectedType"
	case TypeError:
		return "TypeError"
	case LabelRedeclaration:
		return "LabelRedeclaration"
	case InvalidLabel:
		return "InvalidLabel"
	case Unresolved:
		return "Unresolved"
	case StaticOutOfRange:
		return "StaticOutOfRange"
	default:
		return "UnknownError"
	}
}

// ReduceError is a fatal error raised while reducing a statement. It
// carries the source span of the offending token so a front-end can render
// a positioned diagnostic.
type ReduceError struct {
	Kind     ErrorKind
	Message  string
	Location debugcontext.Location
}

func (e *ReduceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, loc debugcontext.Location, format string, args ...any) *ReduceError {
	return &ReduceError{Kind: kind, Message: fmt.Sprintf(format, args...), Location: loc}
}

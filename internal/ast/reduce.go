package ast

import "github.com/cisasm/assembler/internal/context"

// Reduce advances stmt by one pass against ctx. It returns the replacement
// statement (nil if stmt is fully consumed and should be dropped from the
// stream, as happens for Label and the alloc pseudo-op), or a fatal
// *ReduceError.
func Reduce(stmt Statement, ctx *context.Context) (Statement, error) {
	switch s := stmt.(type) {
	case *Label:
		return reduceLabel(s, ctx)
	case *Instruction:
		return reduceInstruction(s, ctx)
	case *Macro:
		return reduceMacro(s, ctx)
	case *Data:
		return reduceData(s, ctx)
	default:
		return stmt, nil
	}
}

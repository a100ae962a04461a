package ast

import (
	"github.com/cisasm/assembler/internal/cis"
	"github.com/cisasm/assembler/internal/context"
	"github.com/cisasm/assembler/internal/expr"
)

// reduceInstruction looks up the mnemonic's encoding variants, advances
// the emission address by the instruction's fixed width, and either
// retries (rebuilding the Instruction with partially-reduced arguments) or
// encodes it to Data once every argument is reduced.
func reduceInstruction(s *Instruction, ctx *context.Context) (Statement, error) {
	variants, ok := ctx.InstructionSet().Instruction(s.Mnemonic)
	if !ok {
		return nil, newError(UnknownInstruction, s.Location, "unknown instruction %q", s.Mnemonic)
	}

	ctx.Advance(uint32(variants.Variants[0].LengthBits / 16))

	reducedArgs, allReduced, err := reduceArgs(s.Args, ctx)
	if err != nil {
		return nil, err
	}
	if !allReduced {
		return &Instruction{Mnemonic: s.Mnemonic, Args: reducedArgs, Location: s.Location}, nil
	}

	var firstErr error
	for _, v := range variants.Variants {
		if len(reducedArgs) != v.Argc() {
			if firstErr == nil {
				if len(reducedArgs) < v.Argc() {
					firstErr = newError(ExpectedArgument, s.Location, "instruction %q expects %d argument(s), found %d", s.Mnemonic, v.Argc(), len(reducedArgs))
				} else {
					firstErr = newError(UnexpectedArgument, s.Location, "instruction %q expects %d argument(s), found %d", s.Mnemonic, v.Argc(), len(reducedArgs))
				}
			}
			continue
		}

		word := v.BaseValue
		matched := true
		for _, slot := range v.Slots {
			arg := reducedArgs[slot.Index]
			contribution, verr := validateOperand(arg, slot, ctx)
			if verr != nil {
				if firstErr == nil {
					firstErr = newError(ExpectedType, s.Location, "%s", verr.Error())
				}
				matched = false
				break
			}
			word |= contribution
		}
		if matched {
			return &Data{Words: splitWords(word, v.LengthBits), Location: s.Location}, nil
		}
	}

	return nil, firstErr
}

// reduceArgs reduces every argument against ctx, reporting whether all of
// them are now fully reduced.
func reduceArgs(args []expr.Expr, ctx *context.Context) ([]expr.Expr, bool, error) {
	out := make([]expr.Expr, len(args))
	allReduced := true
	for i, a := range args {
		reduced, err := expr.Reduce(a, ctx)
		if err != nil {
			return nil, false, newError(InvalidLabel, a.Loc(), "%s", err.Error())
		}
		out[i] = reduced
		if !reduced.IsReduced() {
			allReduced = false
		}
	}
	return out, allReduced, nil
}

// validateOperand dispatches SymbolRef validation (which needs the
// instruction set's symbol table) separately from the generic Integer/
// String validation in the expr package.
func validateOperand(e expr.Expr, slot cis.Slot, ctx *context.Context) (uint32, error) {
	if sym, ok := e.(*expr.SymbolRef); ok {
		return expr.ValidateSymbol(sym, slot, ctx.InstructionSet())
	}
	return expr.Validate(e, slot)
}

// splitWords takes the low lengthBits of value and splits it into
// big-endian 16-bit words (the high bits occupy the lower address).
func splitWords(value uint32, lengthBits int) []uint16 {
	if lengthBits <= 16 {
		return []uint16{uint16(value & 0xFFFF)}
	}
	return []uint16{uint16((value >> 16) & 0xFFFF), uint16(value & 0xFFFF)}
}

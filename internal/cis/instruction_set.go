// Package cis loads and queries a configurable instruction set: the table
// of mnemonics, their bit-level encoding variants, and the named symbolic
// operands (registers, condition codes) an assembler targets.
package cis

import "strings"

// Symbol - a named symbolic operand (e.g. a register) with its encoded
// integer value and the set of operand type-tags it may satisfy.
type Symbol struct {
	// Value - the integer the symbol encodes to.
	Value uint32
	// Tags - ordered list of type-tag strings this symbol satisfies (e.g. "reg").
	Tags []string
}

// HasTag reports whether the symbol satisfies the given operand type-tag.
func (s Symbol) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Slot - the bit-level placement of one operand within an encoding variant.
type Slot struct {
	// TypeTag - the required operand type (e.g. "reg", "u8", "i16", "ptr16").
	TypeTag string
	// Index - the positional argument index this slot is filled from.
	Index int
	// BitOffset - the shift amount the operand's contribution is OR'd in at.
	BitOffset int
	// BitWidth - the number of bits of the operand consumed.
	BitWidth int
}

// Variant - one encoding form of an instruction.
type Variant struct {
	// BaseValue - the fixed bits present regardless of operands.
	BaseValue uint32
	// LengthBits - the total width of the encoded instruction, 16 or 32.
	LengthBits int
	// Slots - the operand placements for this variant, in declaration order.
	Slots []Slot
}

// Argc returns the number of operands this variant expects: 1 + the
// largest slot index, or 0 if the variant has no slots.
func (v Variant) Argc() int {
	max := -1
	for _, s := range v.Slots {
		if s.Index > max {
			max = s.Index
		}
	}
	return max + 1
}

// Instruction - a mnemonic's ordered, non-empty list of encoding variants.
// All variants of one instruction share the same LengthBits.
type Instruction struct {
	Variants []Variant
}

// InstructionSet - the complete, immutable-for-the-run instruction table:
// the symbol table and the instruction table, both keyed by lowercase name.
//
// Create an InstructionSet exclusively through Load() or New() so the
// lookup caches are always populated consistently with the entry maps.
type InstructionSet struct {
	Symbols      map[string]Symbol
	Instructions map[string]Instruction
}

// New builds an InstructionSet from already-decoded symbol and instruction
// maps, folding every key to lowercase. A key that repeats differing only
// in case collapses to a single entry; which of the colliding entries is
// kept follows Go map iteration order and is not defined.
func New(symbols map[string]Symbol, instructions map[string]Instruction) *InstructionSet {
	is := &InstructionSet{
		Symbols:      make(map[string]Symbol, len(symbols)),
		Instructions: make(map[string]Instruction, len(instructions)),
	}
	for name, sym := range symbols {
		is.Symbols[strings.ToLower(name)] = sym
	}
	for name, instr := range instructions {
		is.Instructions[strings.ToLower(name)] = instr
	}
	return is
}

// Symbol looks up a named symbolic operand case-insensitively.
func (is *InstructionSet) Symbol(name string) (Symbol, bool) {
	sym, ok := is.Symbols[strings.ToLower(name)]
	return sym, ok
}

// Instruction looks up a mnemonic's variant list case-insensitively.
func (is *InstructionSet) Instruction(mnemonic string) (Instruction, bool) {
	instr, ok := is.Instructions[strings.ToLower(mnemonic)]
	return instr, ok
}

package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cisasm/assembler/internal/cis"
)

// ErrorKind classifies why operand validation failed.
type ErrorKind int

const (
	// ErrTypeMismatch: a SymbolRef's tag set does not include the slot's
	// required type-tag.
	ErrTypeMismatch ErrorKind = iota
	// ErrUnsupportedType: an Integer/String operand's slot type-tag is not
	// of the form <kind><bits> with kind in {u, i, ptr}.
	ErrUnsupportedType
	// ErrNotReduced: the operand has not yet reduced to a value; the
	// caller should retry on a later pass.
	ErrNotReduced
)

// ValidationError reports why an operand failed to validate against a slot.
type ValidationError struct {
	Kind ErrorKind
	Slot cis.Slot
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ErrTypeMismatch:
		return fmt.Sprintf("operand does not satisfy required type %q", e.Slot.TypeTag)
	case ErrUnsupportedType:
		return fmt.Sprintf("unsupported operand type tag %q", e.Slot.TypeTag)
	case ErrNotReduced:
		return "operand is not yet reduced"
	default:
		return "operand validation failed"
	}
}

// Mask returns (1<<n)-1, wrapping to all-ones when n is 32.
func Mask(bitWidth int) uint32 {
	if bitWidth >= 32 {
		return 0xFFFFFFFF
	}
	return uint32(1<<uint(bitWidth)) - 1
}

// Format computes (value & mask(bitWidth)) << bitOffset.
func Format(value uint32, bitOffset, bitWidth int) uint32 {
	return (value & Mask(bitWidth)) << uint(bitOffset)
}

// isIntegerKindTag reports whether tag has the form <kind><bits> with
// kind in {u, i, ptr}, e.g. "u8", "i16", "ptr16".
func isIntegerKindTag(tag string) bool {
	for _, kind := range []string{"u", "i", "ptr"} {
		if strings.HasPrefix(tag, kind) {
			if _, err := strconv.Atoi(tag[len(kind):]); err == nil {
				return true
			}
		}
	}
	return false
}

// Validate checks e against slot and, on success, returns the bit
// contribution to OR into the encoding. It returns a *ValidationError on
// failure - ErrNotReduced signals the caller should retry on a later pass
// rather than treat the operand as malformed.
func Validate(e Expr, slot cis.Slot) (uint32, error) {
	switch n := e.(type) {
	case *SymbolRef:
		// SymbolRef validation needs the instruction set's symbol table
		// to check tag membership; see ValidateSymbol.
		return 0, &ValidationError{Kind: ErrTypeMismatch, Slot: slot}
	case *Integer:
		if !isIntegerKindTag(slot.TypeTag) {
			return 0, &ValidationError{Kind: ErrUnsupportedType, Slot: slot}
		}
		return Format(n.Value&0xFFFF, slot.BitOffset, slot.BitWidth), nil
	case *String:
		if !isIntegerKindTag(slot.TypeTag) {
			return 0, &ValidationError{Kind: ErrUnsupportedType, Slot: slot}
		}
		var first uint32
		if len(n.Units) > 0 {
			first = uint32(n.Units[0])
		}
		return Format(first&0xFFFF, slot.BitOffset, slot.BitWidth), nil
	default:
		return 0, &ValidationError{Kind: ErrNotReduced, Slot: slot}
	}
}

// ValidateSymbol validates a SymbolRef against slot using the instruction
// set's own symbol table to check tag membership, returning the encoded
// contribution on success.
func ValidateSymbol(n *SymbolRef, slot cis.Slot, is *cis.InstructionSet) (uint32, error) {
	sym, ok := is.Symbol(n.Name)
	if !ok || !sym.HasTag(slot.TypeTag) {
		return 0, &ValidationError{Kind: ErrTypeMismatch, Slot: slot}
	}
	return Format(sym.Value, slot.BitOffset, slot.BitWidth), nil
}

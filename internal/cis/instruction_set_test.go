package cis

import "testing"

func TestVariant_Argc(t *testing.T) {
	t.Run("no slots", func(t *testing.T) {
		v := Variant{}
		if v.Argc() != 0 {
			t.Errorf("Expected argc 0, got %d", v.Argc())
		}
	})

	t.Run("slots out of order", func(t *testing.T) {
		v := Variant{Slots: []Slot{{Index: 1}, {Index: 0}}}
		if v.Argc() != 2 {
			t.Errorf("Expected argc 2, got %d", v.Argc())
		}
	})
}

func TestSymbol_HasTag(t *testing.T) {
	s := Symbol{Value: 0, Tags: []string{"reg", "gpr"}}
	if !s.HasTag("reg") {
		t.Error("Expected HasTag(\"reg\") to be true")
	}
	if s.HasTag("cond") {
		t.Error("Expected HasTag(\"cond\") to be false")
	}
}

func TestNew_CaseFolding(t *testing.T) {
	symbols := map[string]Symbol{"R0": {Value: 0, Tags: []string{"reg"}}}
	instructions := map[string]Instruction{"MOV": {Variants: []Variant{{LengthBits: 16}}}}

	is := New(symbols, instructions)

	if _, ok := is.Symbol("r0"); !ok {
		t.Error("Expected lowercase lookup to find the folded key")
	}
	if _, ok := is.Instruction("mov"); !ok {
		t.Error("Expected lowercase lookup to find the folded key")
	}
}

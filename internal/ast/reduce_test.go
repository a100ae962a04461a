package ast

import (
	"testing"

	"github.com/cisasm/assembler/internal/cis"
	"github.com/cisasm/assembler/internal/context"
	"github.com/cisasm/assembler/internal/expr"
)

func toyInstructionSet() *cis.InstructionSet {
	symbols := map[string]cis.Symbol{
		"r0": {Value: 0, Tags: []string{"reg"}},
		"r1": {Value: 1, Tags: []string{"reg"}},
	}
	instructions := map[string]cis.Instruction{
		"nop": {Variants: []cis.Variant{{BaseValue: 0x0000, LengthBits: 16}}},
		"mov": {Variants: []cis.Variant{{
			BaseValue:  0x1000,
			LengthBits: 16,
			Slots: []cis.Slot{
				{TypeTag: "reg", Index: 0, BitOffset: 8, BitWidth: 8},
				{TypeTag: "u8", Index: 1, BitOffset: 0, BitWidth: 8},
			},
		}}},
	}
	return cis.New(symbols, instructions)
}

func TestReduceLabel_RegistersAtCurrentAddress(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	ctx.Advance(3)

	out, err := Reduce(&Label{Name: "start"}, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if out != nil {
		t.Error("Expected Label reduction to drop the statement")
	}

	addr, ok := ctx.Label("start")
	if !ok || addr != 3 {
		t.Errorf("Expected start=3, got addr=%d ok=%v", addr, ok)
	}
}

func TestReduceLabel_Redeclaration(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	Reduce(&Label{Name: "foo"}, ctx)

	_, err := Reduce(&Label{Name: "foo"}, ctx)
	re, ok := err.(*ReduceError)
	if !ok {
		t.Fatalf("Expected *ReduceError, got %T", err)
	}
	if re.Kind != LabelRedeclaration {
		t.Errorf("Expected LabelRedeclaration, got %v", re.Kind)
	}
}

func TestReduceInstruction_Nop(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	out, err := Reduce(&Instruction{Mnemonic: "nop"}, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	data, ok := out.(*Data)
	if !ok {
		t.Fatalf("Expected *Data, got %T", out)
	}
	if len(data.Words) != 1 || data.Words[0] != 0x0000 {
		t.Errorf("Expected [0x0000], got %v", data.Words)
	}
	if ctx.Address() != 1 {
		t.Errorf("Expected address advanced to 1, got %d", ctx.Address())
	}
}

func TestReduceInstruction_MovWithImmediate(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	instr := &Instruction{
		Mnemonic: "mov",
		Args:     []expr.Expr{&expr.LabelRef{Name: "r1"}, &expr.Integer{Value: 0x2A}},
	}
	out, err := Reduce(instr, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	data := out.(*Data)
	if data.Words[0] != 0x112A {
		t.Errorf("Expected 0x112A, got %#x", data.Words[0])
	}
}

func TestReduceInstruction_ForwardReference(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	instr := &Instruction{
		Mnemonic: "mov",
		Args:     []expr.Expr{&expr.LabelRef{Name: "r0"}, &expr.LabelRef{Name: "start"}},
	}
	out, err := Reduce(instr, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	rebuilt, ok := out.(*Instruction)
	if !ok {
		t.Fatalf("Expected rebuilt *Instruction while start is unresolved, got %T", out)
	}
	if _, ok := rebuilt.Args[1].(*expr.LabelRef); !ok {
		t.Errorf("Expected second arg to remain a LabelRef, got %T", rebuilt.Args[1])
	}
}

func TestReduceInstruction_SelfReferencingLabel(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	ctx.RegisterLabel("start", false) // placed at address 0

	instr := &Instruction{
		Mnemonic: "mov",
		Args:     []expr.Expr{&expr.LabelRef{Name: "r0"}, &expr.LabelRef{Name: "start"}},
	}
	out, err := Reduce(instr, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	data := out.(*Data)
	if data.Words[0] != 0x1000 {
		t.Errorf("Expected 0x1000, got %#x", data.Words[0])
	}
}

func TestReduceInstruction_UnknownInstruction(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	_, err := Reduce(&Instruction{Mnemonic: "xyz"}, ctx)
	re, ok := err.(*ReduceError)
	if !ok || re.Kind != UnknownInstruction {
		t.Fatalf("Expected UnknownInstruction, got %v", err)
	}
}

func TestReduceInstruction_ExpectedArgument(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	instr := &Instruction{Mnemonic: "mov", Args: []expr.Expr{&expr.LabelRef{Name: "r0"}}}
	_, err := Reduce(instr, ctx)
	re, ok := err.(*ReduceError)
	if !ok || re.Kind != ExpectedArgument {
		t.Fatalf("Expected ExpectedArgument, got %v", err)
	}
}

func TestReduceInstruction_UnexpectedArgument(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	instr := &Instruction{Mnemonic: "mov", Args: []expr.Expr{
		&expr.LabelRef{Name: "r0"}, &expr.LabelRef{Name: "r1"}, &expr.Integer{Value: 1},
	}}
	_, err := Reduce(instr, ctx)
	re, ok := err.(*ReduceError)
	if !ok || re.Kind != UnexpectedArgument {
		t.Fatalf("Expected UnexpectedArgument, got %v", err)
	}
}

func TestReduceMacro_String(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	m := &Macro{Op: MacroString, Args: []expr.Expr{&expr.String{Units: []uint16{'h', 'i', 0}}}}
	out, err := Reduce(m, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	data := out.(*Data)
	if len(data.Words) != 3 {
		t.Errorf("Expected 3 words, got %d", len(data.Words))
	}
	if ctx.Address() != 3 {
		t.Errorf("Expected address 3, got %d", ctx.Address())
	}
}

func TestReduceMacro_Var(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	m := &Macro{Op: MacroVar, Args: []expr.Expr{&expr.Integer{Value: 3}}}
	out, err := Reduce(m, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	data := out.(*Data)
	if len(data.Words) != 3 {
		t.Errorf("Expected 3 words, got %d", len(data.Words))
	}
	if ctx.Address() != 3 {
		t.Errorf("Expected address 3, got %d", ctx.Address())
	}
}

func TestReduceMacro_Alloc(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	m := &Macro{Op: MacroAlloc, Args: []expr.Expr{&expr.LabelRef{Name: "buf"}, &expr.Integer{Value: 16}}}
	out, err := Reduce(m, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if out != nil {
		t.Error("Expected alloc to emit no Data")
	}
	if ctx.Address() != 0 {
		t.Errorf("Expected alloc not to advance address, got %d", ctx.Address())
	}
}

func TestReduceMacro_Static(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	m := &Macro{Op: MacroStatic, Args: []expr.Expr{&expr.Integer{Value: 0x10}, &expr.Integer{Value: 0x99}}}
	out, err := Reduce(m, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	data := out.(*Data)
	if data.FixedOffset == nil || *data.FixedOffset != 0x10 {
		t.Fatalf("Expected fixed offset 0x10, got %v", data.FixedOffset)
	}
	if data.Words[0] != 0x99 {
		t.Errorf("Expected word 0x99, got %#x", data.Words[0])
	}
	if ctx.Address() != 0 {
		t.Errorf("Expected static not to advance address, got %d", ctx.Address())
	}
}

func TestReduceMacro_StaticOutOfRange(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	m := &Macro{Op: MacroStatic, Args: []expr.Expr{&expr.Integer{Value: 65536}, &expr.Integer{Value: 1}}}
	_, err := Reduce(m, ctx)
	re, ok := err.(*ReduceError)
	if !ok || re.Kind != StaticOutOfRange {
		t.Fatalf("Expected StaticOutOfRange, got %v", err)
	}
}

func TestReduceData_PassesThroughAndAdvances(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	d := &Data{Words: []uint16{1, 2}}
	out, err := Reduce(d, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if out != Statement(d) {
		t.Error("Expected Data to pass through unchanged")
	}
	if ctx.Address() != 2 {
		t.Errorf("Expected address advanced by 2, got %d", ctx.Address())
	}
}

func TestReduceData_FixedOffsetDoesNotAdvance(t *testing.T) {
	ctx := context.New(toyInstructionSet())
	offset := uint32(5)
	d := &Data{Words: []uint16{1}, FixedOffset: &offset}
	Reduce(d, ctx)
	if ctx.Address() != 0 {
		t.Errorf("Expected address unchanged for fixed-offset Data, got %d", ctx.Address())
	}
}

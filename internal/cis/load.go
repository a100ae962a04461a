package cis

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// document mirrors the on-disk TOML shape directly: two top-level tables,
// `symbols` (a map of named operands) and `instructions` (a map of mnemonic
// to an array of encoding variants).
type document struct {
	Symbols      map[string]symbolDoc          `toml:"symbols"`
	Instructions map[string][]instructionDoc   `toml:"instructions"`
}

type symbolDoc struct {
	Value uint32   `toml:"value"`
	Tags  []string `toml:"tags"`
}

type instructionDoc struct {
	Value     uint32       `toml:"value"`
	Length    int          `toml:"length"`
	Arguments []argumentDoc `toml:"arguments"`
}

type argumentDoc struct {
	Type   string `toml:"type"`
	Index  int    `toml:"index"`
	Offset int    `toml:"offset"`
	Length int    `toml:"length"`
}

// Load reads an instruction-set configuration file from path, decodes it
// as TOML, and returns a ready-to-use *InstructionSet with case-folded
// lookup caches built.
func Load(path string) (*InstructionSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cis: reading %s: %w", path, err)
	}
	return Decode(content)
}

// Decode parses raw TOML bytes into an *InstructionSet. Exposed separately
// from Load so the decoder can be exercised without touching the
// filesystem.
func Decode(content []byte) (*InstructionSet, error) {
	var doc document
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("cis: decoding instruction set: %w", err)
	}

	symbols := make(map[string]Symbol, len(doc.Symbols))
	for name, s := range doc.Symbols {
		symbols[name] = Symbol{Value: s.Value, Tags: s.Tags}
	}

	instructions := make(map[string]Instruction, len(doc.Instructions))
	for mnemonic, variantDocs := range doc.Instructions {
		variants := make([]Variant, 0, len(variantDocs))
		for _, vd := range variantDocs {
			slots := make([]Slot, 0, len(vd.Arguments))
			for _, a := range vd.Arguments {
				slots = append(slots, Slot{
					TypeTag:   a.Type,
					Index:     a.Index,
					BitOffset: a.Offset,
					BitWidth:  a.Length,
				})
			}
			variants = append(variants, Variant{
				BaseValue:  vd.Value,
				LengthBits: vd.Length,
				Slots:      slots,
			})
		}
		instructions[mnemonic] = Instruction{Variants: variants}
	}

	return New(symbols, instructions), nil
}

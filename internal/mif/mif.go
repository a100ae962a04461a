// Package mif renders an assembled image as Memory Initialization File
// text, a symbol listing, or raw hex words.
package mif

import (
	"fmt"
	"strings"

	"github.com/cisasm/assembler/internal/context"
	"github.com/cisasm/assembler/internal/image"
)

// Render writes a full MIF document for buf: a DEPTH/WIDTH/ADDRESS_RADIX/
// DATA_RADIX header, followed by one `address : data;` CONTENT line per
// run of identical non-default words, collapsing consecutive repeats into
// a `[start..end]` range.
func Render(buf [image.Size]uint16) string {
	var b strings.Builder

	fmt.Fprintf(&b, "DEPTH = %d;\n", image.Size)
	b.WriteString("WIDTH = 16;\n")
	b.WriteString("ADDRESS_RADIX = HEX;\n")
	b.WriteString("DATA_RADIX = BIN;\n")
	b.WriteString("CONTENT BEGIN\n")

	i := 0
	for i < image.Size {
		if buf[i] == 0 {
			i++
			continue
		}
		start := i
		value := buf[i]
		for i < image.Size && buf[i] == value {
			i++
		}
		end := i - 1

		if end == start {
			fmt.Fprintf(&b, "\t%04X : %016b;\n", start, value)
		} else {
			fmt.Fprintf(&b, "\t[%04X..%04X] : %016b;\n", start, end, value)
		}
	}

	b.WriteString("END;\n")
	return b.String()
}

// RenderRaw writes buf as newline-separated hex words, one per line, for
// callers that want a binary-adjacent text format instead of MIF.
func RenderRaw(buf [image.Size]uint16) string {
	var b strings.Builder
	for _, w := range buf {
		fmt.Fprintf(&b, "%04X\n", w)
	}
	return b.String()
}

// RenderSymbols writes one `name = 0xHEX` line per label resolved in ctx,
// in the order each was first placed.
func RenderSymbols(ctx *context.Context) string {
	var b strings.Builder
	for _, label := range ctx.OrderedLabels() {
		fmt.Fprintf(&b, "%s = %#04x\n", label.Name, label.Addr)
	}
	return b.String()
}

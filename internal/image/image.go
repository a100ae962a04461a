// Package image assembles a resolved statement stream into the fixed-size
// 16-bit word buffer the output formatters render.
package image

import (
	"fmt"

	"github.com/cisasm/assembler/internal/ast"
)

// Size is the fixed word count of every assembled image.
const Size = 65536

// Build folds stmts - which must all be *ast.Data - into a zero-filled
// Size-word buffer. Data without a fixed offset is copied at the current
// write cursor and advances it; Data with a fixed offset is copied at that
// address without moving the cursor.
func Build(stmts []ast.Statement) ([Size]uint16, error) {
	var buf [Size]uint16
	cursor := 0

	for _, s := range stmts {
		d, ok := s.(*ast.Data)
		if !ok {
			return buf, fmt.Errorf("image: statement at %s did not resolve to Data", s.Loc())
		}

		if d.FixedOffset != nil {
			if err := copyAt(&buf, int(*d.FixedOffset), d.Words); err != nil {
				return buf, err
			}
			continue
		}

		if err := copyAt(&buf, cursor, d.Words); err != nil {
			return buf, err
		}
		cursor += len(d.Words)
	}

	return buf, nil
}

func copyAt(buf *[Size]uint16, offset int, words []uint16) error {
	if offset < 0 || offset+len(words) > Size {
		return fmt.Errorf("image: write of %d word(s) at offset %d overflows the %d-word image", len(words), offset, Size)
	}
	copy(buf[offset:], words)
	return nil
}

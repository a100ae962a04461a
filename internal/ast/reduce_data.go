package ast

import "github.com/cisasm/assembler/internal/context"

// reduceData advances ctx's emission address by the statement's word
// count, unless it carries a fixed offset (a "static" directive), and
// returns itself unchanged. This keeps address bookkeeping consistent
// across passes: pass_once resets the address to 0 and replays every
// remaining statement in order, including ones already resolved to Data.
func reduceData(s *Data, ctx *context.Context) (Statement, error) {
	if s.FixedOffset == nil {
		ctx.Advance(uint32(len(s.Words)))
	}
	return s, nil
}

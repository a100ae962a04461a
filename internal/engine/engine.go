// Package engine drives the assembler's two-phase, fixed-point reduction
// of a parsed statement stream against a Context until every statement has
// resolved to Data or the iteration budget is exhausted.
package engine

import (
	"github.com/cisasm/assembler/internal/ast"
	"github.com/cisasm/assembler/internal/context"
	"github.com/cisasm/assembler/internal/debugcontext"
)

// Run executes the full two-phase driver described for this assembler:
// an initial pass that places code labels and queues allocations, a single
// allocation-offset placement, and a bounded fixed-point loop that retries
// forward references until every statement is Data.
//
// dbg, if non-nil, receives one trace entry per completed fixed-point
// iteration.
func Run(stmts []ast.Statement, ctx *context.Context, dbg *debugcontext.DebugContext) ([]ast.Statement, error) {
	if dbg != nil {
		dbg.SetPhase("pass-1")
	}
	ctx.ResetAddress()
	stmts, err := passOnce(stmts, ctx)
	if err != nil {
		return nil, err
	}

	if dbg != nil {
		dbg.SetPhase("allocation-offset")
	}
	ctx.SetAllocationOffset(ctx.Address())

	if dbg != nil {
		dbg.SetPhase("fixed-point")
	}
	for !allData(stmts) {
		if ctx.RemainingIterations() <= 0 {
			var loc debugcontext.Location
			for _, s := range stmts {
				if _, ok := s.(*ast.Data); !ok {
					loc = s.Loc()
					break
				}
			}
			return nil, &ast.ReduceError{
				Kind:     ast.Unresolved,
				Message:  "fixed-point iteration bound exceeded with unresolved statements remaining",
				Location: loc,
			}
		}
		ctx.ConsumeIteration()

		ctx.ResetAddress()
		stmts, err = passOnce(stmts, ctx)
		if err != nil {
			return nil, err
		}

		if dbg != nil {
			dbg.Trace(debugcontext.Location{}, "fixed-point iteration completed")
		}
	}

	return stmts, nil
}

// passOnce replaces every statement with its one-pass reduction, dropping
// statements that reduce to nil. The first reduction error aborts the
// entire assembly.
func passOnce(stmts []ast.Statement, ctx *context.Context) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(stmts))
	for _, s := range stmts {
		reduced, err := ast.Reduce(s, ctx)
		if err != nil {
			return nil, err
		}
		if reduced != nil {
			out = append(out, reduced)
		}
	}
	return out, nil
}

// allData reports whether every statement in stmts is a resolved *ast.Data.
func allData(stmts []ast.Statement) bool {
	for _, s := range stmts {
		if _, ok := s.(*ast.Data); !ok {
			return false
		}
	}
	return true
}

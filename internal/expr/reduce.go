package expr

import "github.com/cisasm/assembler/internal/cis"

// Resolver supplies the lookups Reduce needs without creating a dependency
// from this package onto the engine's Context type: a canonicalised label
// address table and the instruction set's symbol table.
type Resolver interface {
	// Label returns the resolved address for a canonical label path, or
	// ok=false if the label is unknown or declared but not yet placed.
	Label(canonicalPath string) (addr uint32, ok bool)
	// Canonicalise resolves a possibly dot-prefixed local label name
	// against the resolver's current scope. It returns an error if the
	// dot-prefix depth does not match the current scope depth.
	Canonicalise(name string) (string, error)
	// Symbol looks up a named symbolic operand case-insensitively.
	Symbol(name string) (cis.Symbol, bool)
}

// Reduce is a pure tree rewrite: it resolves what it can against r and
// returns a (possibly) new expression. It never mutates e in place.
func Reduce(e Expr, r Resolver) (Expr, error) {
	switch n := e.(type) {
	case *Integer, *String, *SymbolRef:
		return e, nil

	case *LabelRef:
		if sym, ok := r.Symbol(n.Name); ok {
			_ = sym
			return &SymbolRef{Name: n.Name, Location: n.Location}, nil
		}
		canonical, err := r.Canonicalise(n.Name)
		if err != nil {
			return nil, err
		}
		if addr, ok := r.Label(canonical); ok {
			return &Integer{Value: addr, Location: n.Location}, nil
		}
		// Forward reference: retried on the next pass.
		return n, nil

	case *Compound:
		lhs, err := Reduce(n.Lhs, r)
		if err != nil {
			return nil, err
		}
		rhs, err := Reduce(n.Rhs, r)
		if err != nil {
			return nil, err
		}

		li, lok := lhs.(*Integer)
		ri, rok := rhs.(*Integer)
		if lok && rok {
			var v uint32
			switch n.Operator {
			case Add:
				v = li.Value + ri.Value
			case Sub:
				v = li.Value - ri.Value
			}
			return &Integer{Value: v, Location: n.Location}, nil
		}
		return &Compound{Lhs: lhs, Rhs: rhs, Operator: n.Operator, Location: n.Location}, nil

	default:
		return e, nil
	}
}

package ast

import (
	"github.com/cisasm/assembler/internal/context"
	"github.com/cisasm/assembler/internal/expr"
)

// reduceMacro dispatches to the four built-in pseudo-ops. Each reduces its
// own arguments and either emits Data, rebuilds itself to retry on a later
// pass, or (alloc) registers an allocation and is dropped.
func reduceMacro(s *Macro, ctx *context.Context) (Statement, error) {
	switch s.Op {
	case MacroString:
		return reduceString(s, ctx)
	case MacroVar:
		return reduceVar(s, ctx)
	case MacroAlloc:
		return reduceAlloc(s, ctx)
	case MacroStatic:
		return reduceStatic(s, ctx)
	default:
		return nil, newError(TypeError, s.Location, "unknown pseudo-op")
	}
}

func reduceString(s *Macro, ctx *context.Context) (Statement, error) {
	if !s.Validated && len(s.Args) != 1 {
		return nil, newError(ExpectedArgument, s.Location, "'string' expects 1 argument, found %d", len(s.Args))
	}
	s.Validated = true

	str, ok := s.Args[0].(*expr.String)
	if !ok {
		return nil, newError(TypeError, s.Location, "'string' argument must be a string literal")
	}

	ctx.Advance(uint32(len(str.Units)))
	return &Data{Words: str.Units, Location: s.Location}, nil
}

func reduceVar(s *Macro, ctx *context.Context) (Statement, error) {
	if !s.Validated && len(s.Args) != 1 {
		return nil, newError(ExpectedArgument, s.Location, "'var' expects 1 argument, found %d", len(s.Args))
	}
	s.Validated = true

	reduced, err := expr.Reduce(s.Args[0], ctx)
	if err != nil {
		return nil, newError(InvalidLabel, s.Location, "%s", err.Error())
	}
	n, ok := reduced.(*expr.Integer)
	if !ok {
		if reduced.IsReduced() {
			return nil, newError(TypeError, s.Location, "'var' argument must be an integer")
		}
		return &Macro{Op: MacroVar, Args: []expr.Expr{reduced}, Validated: true, Location: s.Location}, nil
	}

	words := make([]uint16, n.Value)
	ctx.Advance(n.Value)
	return &Data{Words: words, Location: s.Location}, nil
}

func reduceAlloc(s *Macro, ctx *context.Context) (Statement, error) {
	if !s.Validated && len(s.Args) != 2 {
		return nil, newError(ExpectedArgument, s.Location, "'alloc' expects 2 arguments, found %d", len(s.Args))
	}
	s.Validated = true

	name, ok := s.Args[0].(*expr.LabelRef)
	if !ok {
		return nil, newError(TypeError, s.Location, "'alloc' first argument must be a label name")
	}

	reducedSize, err := expr.Reduce(s.Args[1], ctx)
	if err != nil {
		return nil, newError(InvalidLabel, s.Location, "%s", err.Error())
	}
	size, ok := reducedSize.(*expr.Integer)
	if !ok {
		if reducedSize.IsReduced() {
			return nil, newError(TypeError, s.Location, "'alloc' size must be an integer")
		}
		return &Macro{Op: MacroAlloc, Args: []expr.Expr{name, reducedSize}, Validated: true, Location: s.Location}, nil
	}

	ctx.Allocate(name.Name, size.Value)
	return nil, nil
}

func reduceStatic(s *Macro, ctx *context.Context) (Statement, error) {
	if !s.Validated && len(s.Args) != 2 {
		return nil, newError(ExpectedArgument, s.Location, "'static' expects 2 arguments, found %d", len(s.Args))
	}
	s.Validated = true

	reducedOffset, err := expr.Reduce(s.Args[0], ctx)
	if err != nil {
		return nil, newError(InvalidLabel, s.Location, "%s", err.Error())
	}
	reducedValue, err := expr.Reduce(s.Args[1], ctx)
	if err != nil {
		return nil, newError(InvalidLabel, s.Location, "%s", err.Error())
	}

	offset, ok := reducedOffset.(*expr.Integer)
	if !ok {
		if reducedOffset.IsReduced() {
			return nil, newError(TypeError, s.Location, "'static' offset must be an integer")
		}
		return &Macro{Op: MacroStatic, Args: []expr.Expr{reducedOffset, reducedValue}, Validated: true, Location: s.Location}, nil
	}
	if !reducedValue.IsReduced() {
		return &Macro{Op: MacroStatic, Args: []expr.Expr{reducedOffset, reducedValue}, Validated: true, Location: s.Location}, nil
	}

	if offset.Value >= 65536 {
		return nil, newError(StaticOutOfRange, s.Location, "'static' offset %d is out of range (0..65535)", offset.Value)
	}

	var word uint16
	switch v := reducedValue.(type) {
	case *expr.Integer:
		word = uint16(v.Value & 0xFFFF)
	case *expr.String:
		if len(v.Units) > 0 {
			word = v.Units[0]
		}
	default:
		return nil, newError(TypeError, s.Location, "'static' value must be an integer or string")
	}

	fixed := offset.Value
	return &Data{Words: []uint16{word}, FixedOffset: &fixed, Location: s.Location}, nil
}

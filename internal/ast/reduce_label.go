package ast

import "github.com/cisasm/assembler/internal/context"

// reduceLabel canonicalises and registers the label at ctx's current
// address. A successfully registered label emits no Data and is dropped
// from the statement stream.
func reduceLabel(s *Label, ctx *context.Context) (Statement, error) {
	key, err := ctx.Canonicalise(s.Name)
	if err != nil {
		return nil, newError(InvalidLabel, s.Location, "%s", err.Error())
	}

	if err := ctx.RegisterLabel(key, s.Preregistered); err != nil {
		return nil, newError(LabelRedeclaration, s.Location, "%s", err.Error())
	}

	return nil, nil
}

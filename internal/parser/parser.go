// Package parser turns classified source lines into the Statement stream
// the reduction engine consumes: a small hand-rolled recursive-descent
// reader, since no parser-combinator or PEG library is available in this
// module's dependency stack.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cisasm/assembler/internal/ast"
	"github.com/cisasm/assembler/internal/debugcontext"
	"github.com/cisasm/assembler/internal/expr"
	"github.com/cisasm/assembler/internal/sourcemap"
	"github.com/cisasm/assembler/internal/token"
)

var pseudoOps = map[string]ast.MacroOp{
	"string": ast.MacroString,
	"var":    ast.MacroVar,
	"alloc":  ast.MacroAlloc,
	"static": ast.MacroStatic,
}

// Parse tokenizes and parses every line tracked by tr into the full
// Statement stream, in source order.
func Parse(tr *sourcemap.Tracker) ([]ast.Statement, error) {
	var out []ast.Statement
	for i, line := range tr.Lines() {
		lineNumber := i + 1
		stmts, err := ParseLine(stripComment(line), lineNumber, tr)
		if err != nil {
			return nil, err
		}
		out = append(out, stmts...)
	}
	return out, nil
}

// stripComment removes a trailing ';...' comment, and reports a wholly
// blank or comment-only line as "" (the classification step).
func stripComment(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, ";") {
		return ""
	}
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		return line[:idx]
	}
	return line
}

// ParseLine parses one already comment-stripped source line into zero or
// more statements: any number of colon-suffixed labels followed by an
// optional mnemonic and its comma-separated argument list.
func ParseLine(line string, lineNumber int, tr *sourcemap.Tracker) ([]ast.Statement, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}

	toks, err := token.Tokenize(line)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tr.Loc(lineNumber, 0).String(), err)
	}

	p := &parser{toks: toks, line: lineNumber, tr: tr}
	return p.parseLine()
}

type parser struct {
	toks []token.Token
	pos  int
	line int
	tr   *sourcemap.Tracker
}

func (p *parser) peek() (token.Token, bool) {
	if p.pos >= len(p.toks) {
		return token.Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (token.Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) loc(offset int) debugcontext.Location {
	return p.tr.Loc(p.line, offset)
}

func (p *parser) parseLine() ([]ast.Statement, error) {
	var stmts []ast.Statement

	for {
		t, ok := p.peek()
		if !ok || t.Kind != token.Ident {
			break
		}
		if p.pos+1 < len(p.toks) && p.toks[p.pos+1].Kind == token.Colon {
			stmts = append(stmts, &ast.Label{Name: t.Text, Location: p.loc(t.Offset)})
			p.pos += 2
			continue
		}
		break
	}

	mnemonicTok, ok := p.next()
	if !ok {
		return stmts, nil
	}
	if mnemonicTok.Kind != token.Ident {
		return nil, fmt.Errorf("%s: expected a mnemonic, found %q", p.loc(mnemonicTok.Offset).String(), mnemonicTok.Text)
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	if op, isPseudo := pseudoOps[strings.ToLower(mnemonicTok.Text)]; isPseudo {
		stmts = append(stmts, &ast.Macro{Op: op, Args: args, Location: p.loc(mnemonicTok.Offset)})
		return stmts, nil
	}

	stmts = append(stmts, &ast.Instruction{Mnemonic: mnemonicTok.Text, Args: args, Location: p.loc(mnemonicTok.Offset)})
	return stmts, nil
}

func (p *parser) parseArgs() ([]expr.Expr, error) {
	if _, ok := p.peek(); !ok {
		return nil, nil
	}

	var args []expr.Expr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)

		t, ok := p.peek()
		if !ok || t.Kind != token.Comma {
			break
		}
		p.next()
	}
	return args, nil
}

// parseExpr parses a term optionally followed by a binary +/- and another
// term.
func (p *parser) parseExpr() (expr.Expr, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	t, ok := p.peek()
	if !ok || (t.Kind != token.Plus && t.Kind != token.Minus) {
		return lhs, nil
	}
	p.next()

	rhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	op := expr.Add
	if t.Kind == token.Minus {
		op = expr.Sub
	}
	return &expr.Compound{Lhs: lhs, Rhs: rhs, Operator: op, Location: lhs.Loc()}, nil
}

func (p *parser) parseTerm() (expr.Expr, error) {
	t, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("%s: expected an operand", p.loc(0).String())
	}

	switch t.Kind {
	case token.Integer:
		v, err := parseIntegerLiteral(t.Text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.loc(t.Offset).String(), err)
		}
		return &expr.Integer{Value: v, Location: p.loc(t.Offset)}, nil

	case token.Char:
		v, err := parseCharLiteral(t.Text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.loc(t.Offset).String(), err)
		}
		return &expr.Integer{Value: v, Location: p.loc(t.Offset)}, nil

	case token.String:
		return &expr.String{Units: stringUnits(t.Text), Location: p.loc(t.Offset)}, nil

	case token.Ident:
		return &expr.LabelRef{Name: t.Text, Location: p.loc(t.Offset)}, nil

	default:
		return nil, fmt.Errorf("%s: unexpected token %q in operand position", p.loc(t.Offset).String(), t.Text)
	}
}

func parseIntegerLiteral(text string) (uint32, error) {
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		v, err := strconv.ParseUint(text[2:], 16, 32)
		return uint32(v), err
	}
	v, err := strconv.ParseUint(text, 10, 32)
	return uint32(v), err
}

// parseCharLiteral interprets a token.Char's text per the legacy quirk: a
// single-byte value is literal; a "\" + digits value (the decimal-tail
// quirk) parses the tail as a decimal integer.
func parseCharLiteral(text string) (uint32, error) {
	if len(text) > 1 && text[0] == '\\' {
		v, err := strconv.Atoi(text[1:])
		if err != nil {
			return 0, fmt.Errorf("invalid character literal tail %q: %w", text[1:], err)
		}
		return uint32(v), nil
	}
	return uint32(text[0]), nil
}

// stringUnits maps a parsed string's bytes to zero-terminated u16 code
// units, one-for-one.
func stringUnits(text string) []uint16 {
	units := make([]uint16, len(text)+1)
	for i := 0; i < len(text); i++ {
		units[i] = uint16(text[i])
	}
	units[len(text)] = 0
	return units
}

package parser

import (
	"fmt"

	"stepcheck/internal/ast"
	"stepcheck/internal/diag"
	"stepcheck/internal/token"
)

// parseParams разбирает Value (, Value)* ) после съеденной '('.
// При emptyOK допускается сразу ')'.
func (p *Parser) parseParams(emptyOK bool) ([]ast.ValueID, bool) {
	if emptyOK {
		if _, ok := p.accept(token.RParen); ok {
			return nil, true
		}
	}
	var out []ast.ValueID
	for {
		v, ok := p.parseValue()
		if !ok {
			return nil, false
		}
		out = append(out, v)
		if _, ok := p.accept(token.Comma); ok {
			continue
		}
		if _, ok := p.expect(token.RParen); !ok {
			return nil, false
		}
		return out, true
	}
}

// parseValue: STRING | BINARY | ENUM | INT | REAL | #N | $ | *
//
//	| UPPER ( ParamList? ) | ( ParamList? )
func (p *Parser) parseValue() (ast.ValueID, bool) {
	p.offer(valueStart...)
	tok := p.peek()

	var kind ast.ValueKind
	switch tok.Kind {
	case token.StringLit:
		kind = ast.ValueString
	case token.BinaryLit:
		kind = ast.ValueBinary
	case token.EnumLit:
		kind = ast.ValueEnum
	case token.IntLit:
		kind = ast.ValueInteger
	case token.RealLit:
		kind = ast.ValueReal
	case token.Dollar:
		kind = ast.ValueOmitted
	case token.Star:
		kind = ast.ValueRedeclared
	case token.Ref:
		p.advance()
		return p.doc.Values.New(ast.Value{Kind: ast.ValueRef, Span: tok.Span, Text: tok.Text, Ref: tok.ID}), true
	case token.Upper, token.LParen:
		return p.parseNested()
	default:
		return ast.NoValueID, p.fail()
	}
	p.advance()
	return p.doc.Values.New(ast.Value{Kind: kind, Span: tok.Span, Text: tok.Value}), true
}

// parseNested handles typed values and lists; both open a "(".
func (p *Parser) parseNested() (ast.ValueID, bool) {
	start := p.peek()
	val := ast.Value{Kind: ast.ValueList, Span: start.Span}
	if start.Kind == token.Upper {
		p.advance()
		val.Kind = ast.ValueTyped
		val.Text = start.Text
		if _, ok := p.expect(token.LParen); !ok {
			return ast.NoValueID, false
		}
	} else {
		p.advance()
	}

	p.depth++
	defer func() { p.depth-- }()
	if limit := p.opts.maxDepth(); p.depth > limit {
		p.offer(valueStart...)
		diag.ReportSyntax(p.opts.Reporter, diag.SynNestingTooDeep, p.lastSpan,
			fmt.Sprintf("Parameter nesting exceeds %d levels", limit)).
			WithExpected(p.offered.names()).
			Emit()
		return ast.NoValueID, false
	}

	items, ok := p.parseParams(true)
	if !ok {
		return ast.NoValueID, false
	}
	val.Items = items
	val.Span = val.Span.Cover(p.lastSpan)
	return p.doc.Values.New(val), true
}

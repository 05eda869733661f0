package parser

import (
	"stepcheck/internal/ast"
	"stepcheck/internal/token"
)

// parseInstance: #N = Record ;  |  #N = ( Record+ ) ;
func (p *Parser) parseInstance() (ast.Instance, bool) {
	ref := p.advance()
	inst := ast.Instance{ID: ref.ID, IDSpan: ref.Span, Span: ref.Span}
	if _, ok := p.expect(token.Equal); !ok {
		return inst, false
	}

	switch p.peek().Kind {
	case token.Upper:
		rec, ok := p.parseRecord(true)
		if !ok {
			return inst, false
		}
		inst.Type, inst.Params = rec.Type, rec.Params
	case token.LParen:
		p.advance()
		for {
			if p.peek().Kind != token.Upper {
				p.offer(token.Upper)
				if len(inst.Parts) > 0 {
					if _, ok := p.accept(token.RParen); ok {
						break
					}
				}
				return inst, p.fail()
			}
			rec, ok := p.parseRecord(true)
			if !ok {
				return inst, false
			}
			inst.Parts = append(inst.Parts, rec)
		}
		inst.Type, inst.Params = inst.Parts[0].Type, inst.Parts[0].Params
	default:
		p.offer(token.Upper, token.LParen)
		return inst, p.fail()
	}

	semi, ok := p.expect(token.Semicolon)
	if !ok {
		return inst, false
	}
	inst.Span = inst.Span.Cover(semi.Span)
	return inst, true
}

// parseRecord: UPPER ( ParamList ) with the list optional when emptyOK.
// The current token is known to be UPPER.
func (p *Parser) parseRecord(emptyOK bool) (ast.Record, bool) {
	name := p.advance()
	rec := ast.Record{Type: name.Text, TypeSpan: name.Span, Span: name.Span}
	if _, ok := p.expect(token.LParen); !ok {
		return rec, false
	}
	params, ok := p.parseParams(emptyOK)
	if !ok {
		return rec, false
	}
	rec.Params = params
	rec.Span = rec.Span.Cover(p.lastSpan)
	return rec, true
}

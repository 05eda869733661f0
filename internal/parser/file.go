package parser

import (
	"stepcheck/internal/ast"
	"stepcheck/internal/token"
)

// parseFile: ISO-10303-21 ; Header Data+ END-ISO-10303-21 ; $END
func (p *Parser) parseFile() bool {
	start, ok := p.expectKw(token.KwISO)
	if !ok {
		return false
	}
	p.doc.Start = start.Span
	p.doc.Span = start.Span
	if _, ok = p.expect(token.Semicolon); !ok {
		return false
	}

	if !p.parseHeader() {
		return false
	}
	if p.opts.OnlyHeader {
		p.doc.Span = p.doc.Span.Cover(p.lastSpan)
		return true
	}

	// хотя бы одна секция DATA
	if _, ok = p.expectKw(token.KwData); !ok {
		return false
	}
	for {
		if !p.parseData() {
			return false
		}
		if _, more := p.acceptKw(token.KwData); !more {
			break
		}
	}

	end, ok := p.expectKw(token.KwEndISO)
	if !ok {
		return false
	}
	p.doc.End = end.Span
	semi, ok := p.expect(token.Semicolon)
	if !ok {
		return false
	}
	p.doc.Span = p.doc.Span.Cover(semi.Span)
	if _, ok = p.expect(token.EOF); !ok {
		return false
	}
	return true
}

// parseHeader: HEADER ; HeaderEntity* ENDSEC ;
func (p *Parser) parseHeader() bool {
	kw, ok := p.expectKw(token.KwHeader)
	if !ok {
		return false
	}
	if _, ok = p.expect(token.Semicolon); !ok {
		return false
	}
	sec := ast.Section{Kind: ast.SectionHeader, Span: kw.Span}
	for {
		if _, done := p.acceptKw(token.KwEndsec); done {
			break
		}
		if p.peek().Kind != token.Upper {
			p.offer(token.Upper)
			return p.fail()
		}
		rec, ok := p.parseHeaderEntity()
		if !ok {
			return false
		}
		sec.Entities = append(sec.Entities, rec)
	}
	semi, ok := p.expect(token.Semicolon)
	if !ok {
		return false
	}
	sec.Span = sec.Span.Cover(semi.Span)
	p.doc.Sections = append(p.doc.Sections, sec)
	return true
}

// parseHeaderEntity: UPPER ( Value (, Value)* ) ;
func (p *Parser) parseHeaderEntity() (ast.Record, bool) {
	rec, ok := p.parseRecord(false)
	if !ok {
		return rec, false
	}
	if _, ok = p.expect(token.Semicolon); !ok {
		return rec, false
	}
	return rec, true
}

// parseData разбирает тело секции после уже съеденного DATA:
// ; Instance* ENDSEC ;
func (p *Parser) parseData() bool {
	sec := ast.Section{Kind: ast.SectionData, Span: p.lastSpan}
	if _, ok := p.expect(token.Semicolon); !ok {
		return false
	}
	for {
		if p.peek().Kind == token.Ref {
			inst, ok := p.parseInstance()
			if !ok {
				return false
			}
			sec.Instances = append(sec.Instances, inst)
			continue
		}
		p.offer(token.Ref)
		if _, ok := p.expectKw(token.KwEndsec); !ok {
			return false
		}
		break
	}
	semi, ok := p.expect(token.Semicolon)
	if !ok {
		return false
	}
	sec.Span = sec.Span.Cover(semi.Span)
	p.doc.Sections = append(p.doc.Sections, sec)
	return true
}

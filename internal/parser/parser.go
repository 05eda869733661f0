package parser

import (
	"stepcheck/internal/ast"
	"stepcheck/internal/diag"
	"stepcheck/internal/lexer"
	"stepcheck/internal/source"
	"stepcheck/internal/token"
)

type Result struct {
	Doc *ast.Document // partial when OK is false
	OK  bool
}

// Parser: состояние парсера на один файл. Работает до первой ошибки.
type Parser struct {
	lx       *lexer.Lexer // поток токенов (Peek/Next)
	doc      *ast.Document
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
	offered  expectSet
	depth    int
}

// ParseFile разбирает один файл. Первая синтаксическая ошибка репортится
// в opts.Reporter и останавливает разбор.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	f := lx.File()
	p := Parser{
		lx:       lx,
		doc:      ast.NewDocument(f.ID, uint(len(f.Content)/8)),
		opts:     opts,
		lastSpan: source.Span{File: f.ID},
	}
	ok := p.parseFile()
	p.doc.Reindex()
	return Result{Doc: p.doc, OK: ok}
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

// advance съедает токен, обновляет lastSpan и сбрасывает набор ожиданий.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	p.offered.reset()
	return tok
}

// offer records kinds that would be accepted at the current position.
func (p *Parser) offer(kinds ...token.Kind) {
	for _, k := range kinds {
		p.offered.addKind(k)
	}
}

// accept consumes a token of kind k, or records k as expected.
func (p *Parser) accept(k token.Kind) (token.Token, bool) {
	if p.peek().Kind == k {
		return p.advance(), true
	}
	p.offer(k)
	return token.Token{}, false
}

// acceptKw consumes the structural keyword kw, or records it as expected.
func (p *Parser) acceptKw(kw string) (token.Token, bool) {
	if p.peek().Is(kw) {
		return p.advance(), true
	}
	p.offered.addWord(kw)
	return token.Token{}, false
}

func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if tok, ok := p.accept(k); ok {
		return tok, true
	}
	return token.Token{}, p.fail()
}

func (p *Parser) expectKw(kw string) (token.Token, bool) {
	if tok, ok := p.acceptKw(kw); ok {
		return tok, true
	}
	return token.Token{}, p.fail()
}

// fail репортит неожиданный текущий токен вместе с накопленным набором
// ожиданий. Всегда возвращает false.
func (p *Parser) fail() bool {
	tok := p.peek()
	expected := p.offered.names()

	if tok.Kind == token.Invalid {
		d := lexer.Diagnose(tok)
		d.Expected = expected
		p.report(d)
		return false
	}

	found, span := describe(tok)
	code := diag.SynUnexpectedToken
	if tok.Kind == token.EOF {
		code = diag.SynUnexpectedEOF
		span = source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	diag.ReportSyntax(p.opts.Reporter, code, span, unexpectedMessage(found)).
		WithExpected(expected).
		WithFound(found).
		Emit()
	return false
}

func (p *Parser) report(d diag.Diagnostic) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(d)
	}
}

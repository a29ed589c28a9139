package parser

import (
	"fstrlit/internal/ast"
	"fstrlit/internal/diag"
	"fstrlit/internal/source"
	"fstrlit/internal/token"
)

// advance — съедает следующий токен и сдвигает p.end
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.end = tok.Span.End
	}
	return tok
}

// clampEnd — позиция, к которой обрезается незакрытая конструкция:
// начало следующего несъеденного токена или конец входа. Пробелы перед
// ним уходят внутрь конструкции.
func (p *Parser) clampEnd() uint32 {
	return p.lx.Pos()
}

// regionEnd — где продолжается текст после вложенной области. Незакрытая
// область могла забрать пробелы за p.end, поэтому берём конец её span.
func (p *Parser) regionEnd(id ast.NodeID) uint32 {
	if n := p.nodes.Get(id); n != nil && n.Span.End > p.end {
		return n.Span.End
	}
	return p.end
}

// err репортует ошибку без правок.
func (p *Parser) err(code diag.Code, sp source.Span, msg string) bool {
	return p.report(diag.ReportError(p.reporter, code, sp, msg))
}

// report отправляет диагностику, если лимит ещё не достигнут.
func (p *Parser) report(b *diag.ReportBuilder) bool {
	if p.bag.Full() {
		return false
	}
	b.Emit()
	return true
}

func unclosedGroupCode(open token.Kind) (diag.Code, string) {
	switch open {
	case token.LParen:
		return diag.FStrUnclosedParen, "unbalanced '('"
	case token.LBracket:
		return diag.FStrUnclosedBracket, "unbalanced '['"
	default:
		return diag.FStrUnclosedBrace, "unbalanced '{'"
	}
}

// openByte returns the delimiter character of a group or quote token.
func openByte(k token.Kind) byte {
	switch k {
	case token.LParen:
		return '('
	case token.LBracket:
		return '['
	case token.LBrace:
		return '{'
	case token.Quote:
		return '\''
	case token.DQuote:
		return '"'
	default:
		return 0
	}
}

package parser

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"fstrlit/internal/ast"
	"fstrlit/internal/diag"
	"fstrlit/internal/token"
)

// parseConversion разбирает "!" и флаг преобразования. Узел строится
// всегда, даже если флага нет или он неверный.
func (p *Parser) parseConversion() ast.NodeID {
	bang := p.advance()
	sp := bang.Span

	if !p.at(token.Text) {
		p.err(diag.FStrConvMissing, bang.Span, "type-conversion flag missing")
		return p.nodes.NewConversion(sp, ast.FlagInvalid, 0)
	}

	tok := p.advance()
	sp.End = tok.Span.End
	flag, size := utf8.DecodeRuneInString(tok.Text)
	flagLen, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("conversion flag length overflow: %w", err))
	}
	// всё после первого символа: хвост токена и следующие текстовые токены
	trailing := p.span(tok.Span.Start+flagLen, tok.Span.End)
	for p.at(token.Text) {
		sp.End = p.advance().Span.End
		trailing.End = sp.End
	}

	switch flag {
	case 's', 'r', 'a':
		if !trailing.Empty() {
			p.err(diag.FStrConvTrailing, trailing, "unexpected text after type-conversion flag")
		}
		return p.nodes.NewConversion(sp, 0, flag)
	default:
		p.err(diag.FStrConvInvalid, tok.Span, "type-conversion flag must be 's', 'r', or 'a'")
		return p.nodes.NewConversion(sp, ast.FlagInvalid, flag)
	}
}

// parseFormatSpec разбирает ":" и всё до '}' или конца входа. Вложенные
// "{...}" разбираются как полноценные выражения (динамическая ширина).
// Текстовые куски покрывают промежутки целиком, чтобы пробел-заполнитель
// не терялся.
func (p *Parser) parseFormatSpec() ast.NodeID {
	colon := p.advance()
	var children []ast.NodeID
	gap := colon.Span.End
	flush := func(end uint32) {
		if end > gap {
			children = append(children, p.nodes.NewLeaf(ast.NodeRun, p.span(gap, end), 0))
		}
	}

	for !p.at_or(token.EOF, token.RBrace) {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.LBrace:
			flush(tok.Span.Start)
			var nested ast.NodeID
			if p.depth >= p.maxDepth {
				nested = p.skipTooDeep(p.advance())
			} else {
				nested = p.parseExprRegion()
			}
			children = append(children, nested)
			gap = p.regionEnd(nested)
		case token.Backslash:
			p.advance()
			p.err(diag.FStrBackslash, tok.Span, "backslash not permitted inside an interpolation")
		default:
			p.advance()
		}
	}
	end := p.clampEnd()
	flush(end)
	return p.nodes.NewList(ast.NodeFormatSpec, p.span(colon.Span.Start, end), 0, children)
}

package parser

import (
	"context"

	"fstrlit/internal/ast"
	"fstrlit/internal/diag"
	"fstrlit/internal/token"
)

// parseLiteral — верхний уровень: чередование текста и выражений.
// Текстовые узлы покрывают весь промежуток между конструкциями, включая
// пробелы; одиночная '}' остаётся частью текста.
func (p *Parser) parseLiteral(ctx context.Context) (ast.NodeID, error) {
	var (
		children []ast.NodeID
		err      error
	)
	gap := p.lx.Start()
	flush := func(end uint32) {
		if end > gap {
			children = append(children, p.nodes.NewLeaf(ast.NodeText, p.span(gap, end), 0))
		}
	}

	for {
		if err = ctx.Err(); err != nil {
			flush(p.end)
			break
		}
		tok := p.lx.Peek()
		if tok.Kind == token.EOF {
			flush(p.lx.End())
			break
		}

		switch tok.Kind {
		case token.LBrace:
			flush(tok.Span.Start)
			expr := p.parseExprRegion()
			children = append(children, expr)
			gap = p.regionEnd(expr)

		case token.RBrace:
			if next := p.lx.PeekN(1); next.Kind == token.RBrace {
				flush(tok.Span.Start)
				p.advance()
				p.advance()
				children = append(children, p.nodes.NewLeaf(ast.NodeText, p.span(tok.Span.Start, next.Span.End), ast.FlagEscaped))
				gap = p.end
				continue
			}
			p.advance()
			p.report(diag.ReportError(p.reporter, diag.FStrStrayRBrace, tok.Span, "stray closing brace").
				WithFix("escape the brace", diag.Replace(tok.Span, "}}")))

		default:
			// вне выражений любая пунктуация — обычный текст
			p.advance()
		}
	}

	root := p.nodes.NewList(ast.NodeRoot, p.span(p.lx.Start(), p.lx.End()), 0, children)
	return root, err
}

// parseExprRegion разбирает "{ ... }" начиная с '{'.
func (p *Parser) parseExprRegion() ast.NodeID {
	open := p.advance()

	// "{{" вплотную — экранированная скобка, не выражение
	if next := p.lx.Peek(); next.Kind == token.LBrace && next.Span.Start == open.Span.Start+1 {
		p.advance()
		return p.nodes.NewEscapedBrace(p.file, open.Span.Start)
	}

	p.depth++
	defer func() { p.depth-- }()

	body := p.parseBalanced(modeTop)
	conv := ast.NoNodeID
	if p.at(token.Bang) {
		conv = p.parseConversion()
	}
	spec := ast.NoNodeID
	if p.at(token.Colon) {
		spec = p.parseFormatSpec()
	}

	var flags ast.Flags
	sp := p.span(open.Span.Start, 0)
	if p.at(token.RBrace) {
		sp.End = p.advance().Span.End
	} else {
		sp.End = p.clampEnd()
		flags |= ast.FlagUnclosed
		p.report(diag.ReportError(p.reporter, diag.FStrUnclosedExpr, sp, "unbalanced opening brace").
			WithFix("insert closing brace", diag.Insert(p.file, sp.End, "}")))
	}
	if !body.IsValid() {
		p.err(diag.FStrEmptyExpr, sp, "empty expression")
	}
	return p.nodes.NewExpr(sp, flags, body, conv, spec)
}

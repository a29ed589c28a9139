package parser

import (
	"fstrlit/internal/ast"
	"fstrlit/internal/diag"
	"fstrlit/internal/token"
)

type mode uint8

const (
	// modeTop — тело выражения: '!', ':' и '}' завершают его.
	modeTop mode = iota
	// modeNested — внутри скобок: '!' и ':' обычный текст (dict, срезы).
	modeNested
)

// parseBalanced собирает максимальную последовательность единиц. Если ни
// одной единицы нет, возвращает NoNodeID: пустого узла не бывает.
func (p *Parser) parseBalanced(m mode) ast.NodeID {
	var (
		units []ast.NodeID
		flags ast.Flags
	)
	for {
		u := p.parseUnit(m)
		if !u.IsValid() {
			break
		}
		if p.nodes.Get(u).Flags.Has(ast.FlagUnclosed) {
			flags |= ast.FlagUnclosed
		}
		units = append(units, u)
	}
	if len(units) == 0 {
		return ast.NoNodeID
	}
	first := p.nodes.Get(units[0]).Span
	last := p.nodes.Get(units[len(units)-1]).Span
	return p.nodes.NewList(ast.NodeBalanced, first.Cover(last), flags, units)
}

// parseUnit разбирает одну единицу сбалансированного текста или
// возвращает NoNodeID на терминаторе текущего режима.
func (p *Parser) parseUnit(m mode) ast.NodeID {
	tok := p.lx.Peek()
	switch {
	case token.IsOpener(tok.Kind):
		return p.parseGroup()
	case tok.IsQuote():
		return p.parseString()
	case tok.Kind == token.Backslash:
		p.advance()
		p.err(diag.FStrBackslash, tok.Span, "backslash not permitted inside an interpolation")
		return p.nodes.NewLeaf(ast.NodeBackslash, tok.Span, 0)
	case tok.Kind == token.Text, m == modeNested && p.at_or(token.Bang, token.Colon):
		return p.parseRun(m)
	case m == modeTop && p.at_or(token.RParen, token.RBracket):
		p.advance()
		p.err(diag.FStrUnmatchedCloser, tok.Span, "unmatched '"+tok.Text+"'")
		return p.nodes.NewLeaf(ast.NodeStray, tok.Span, 0)
	default:
		return ast.NoNodeID
	}
}

// parseRun склеивает подряд идущие текстовые токены (и '!', ':' во
// вложенном режиме) в один узел.
func (p *Parser) parseRun(m mode) ast.NodeID {
	first := p.advance()
	sp := first.Span
	for p.at(token.Text) || (m == modeNested && p.at_or(token.Bang, token.Colon)) {
		sp.End = p.advance().Span.End
	}
	return p.nodes.NewLeaf(ast.NodeRun, sp, 0)
}

// parseGroup разбирает (), [] или {} внутри выражения. Группа
// останавливается на любой чужой закрывающей скобке, не съедая её.
func (p *Parser) parseGroup() ast.NodeID {
	open := p.advance()
	if p.depth >= p.maxDepth {
		return p.skipTooDeep(open)
	}
	p.depth++
	defer func() { p.depth-- }()

	closer := token.Closer(open.Kind)
	var children []ast.NodeID
	for {
		if p.at(closer) {
			end := p.advance().Span.End
			return p.nodes.NewGroup(ast.NodeGroup, p.span(open.Span.Start, end), 0, openByte(open.Kind), children)
		}
		u := p.parseUnit(modeNested)
		if !u.IsValid() {
			break
		}
		children = append(children, u)
	}

	sp := p.span(open.Span.Start, p.clampEnd())
	code, msg := unclosedGroupCode(open.Kind)
	p.err(code, sp, msg)
	return p.nodes.NewGroup(ast.NodeGroup, sp, ast.FlagUnclosed, openByte(open.Kind), children)
}

// parseString разбирает строку в кавычках; всё кроме парной кавычки
// берётся как есть.
func (p *Parser) parseString() ast.NodeID {
	open := p.advance()
	for !p.at(token.EOF) {
		tok := p.advance()
		if tok.Kind == open.Kind {
			return p.nodes.NewGroup(ast.NodeString, p.span(open.Span.Start, tok.Span.End), 0, openByte(open.Kind), nil)
		}
		if tok.Kind == token.Backslash {
			p.err(diag.FStrBackslash, tok.Span, "backslash not permitted inside an interpolation")
		}
	}

	sp := p.span(open.Span.Start, p.clampEnd())
	p.err(diag.FStrUnclosedQuote, sp, "unbalanced quote")
	return p.nodes.NewGroup(ast.NodeString, sp, ast.FlagUnclosed, openByte(open.Kind), nil)
}

// skipTooDeep пропускает группу за пределом вложенности без рекурсии,
// считая открывающие и закрывающие скобки. open уже съеден.
func (p *Parser) skipTooDeep(open token.Token) ast.NodeID {
	p.err(diag.FStrTooDeep, open.Span, "nesting too deep")
	level := 1
	for level > 0 && !p.at(token.EOF) {
		tok := p.advance()
		switch {
		case token.IsOpener(tok.Kind):
			level++
		case token.IsCloser(tok.Kind):
			level--
		}
	}
	var flags ast.Flags
	if level > 0 {
		flags |= ast.FlagUnclosed
	}
	sp := p.span(open.Span.Start, p.end)
	return p.nodes.NewGroup(ast.NodeGroup, sp, flags, openByte(open.Kind), nil)
}

package parser

import (
	"context"
	"slices"

	"fstrlit/internal/ast"
	"fstrlit/internal/diag"
	"fstrlit/internal/lexer"
	"fstrlit/internal/source"
	"fstrlit/internal/token"
)

// DefaultMaxDepth caps nesting of groups and format-spec regions.
const DefaultMaxDepth = 256

type Options struct {
	// MaxDiagnostics limits the diagnostics kept per parse; 0 — без лимита.
	MaxDiagnostics int
	// MaxDepth caps nesting; 0 means DefaultMaxDepth.
	MaxDepth int
	// Reporter, если задан, получает каждую диагностику вдобавок к Result.Bag.
	Reporter diag.Reporter
}

type Result struct {
	Tree *ast.Tree
	Bag  *diag.Bag
	// Err is ctx.Err() when the parse was cancelled; the tree is partial then.
	Err error
}

// Parser — состояние разбора одного литерала. Ничего не разделяет с другими
// экземплярами, поэтому разборы можно запускать параллельно.
type Parser struct {
	lx       *lexer.Lexer // поток токенов (Peek/Next/PeekN)
	nodes    *ast.Nodes   // арены узлов
	file     source.FileID
	opts     Options
	bag      *diag.Bag
	reporter diag.Reporter
	depth    int
	maxDepth int
	end      uint32 // конец последнего съеденного токена
}

// Parse разбирает тело литерала из подготовленного лексера.
func Parse(ctx context.Context, lx *lexer.Lexer, opts Options) Result {
	bag := diag.NewBag(opts.MaxDiagnostics)
	p := Parser{
		lx:       lx,
		nodes:    ast.NewNodes(ast.Hints{}),
		file:     lx.File().ID,
		opts:     opts,
		bag:      bag,
		reporter: diag.MultiReporter{diag.BagReporter{Bag: bag}, opts.Reporter},
		maxDepth: opts.MaxDepth,
		end:      lx.Start(),
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}

	root, err := p.parseLiteral(ctx)
	return Result{
		Tree: &ast.Tree{
			File:        lx.File(),
			Nodes:       p.nodes,
			Root:        root,
			Diagnostics: bag.Snapshot(),
		},
		Bag: bag,
		Err: err,
	}
}

// ParseFile treats the whole file content as one literal body.
func ParseFile(ctx context.Context, file *source.File, opts Options) Result {
	return Parse(ctx, lexer.New(file), opts)
}

// ParseRange parses file.Content[start:end] as one literal body. Spans and
// diagnostics use absolute file offsets.
func ParseRange(ctx context.Context, file *source.File, start, end uint32, opts Options) Result {
	return Parse(ctx, lexer.NewRange(file, start, end), opts)
}

// ParseString parses body held in a fresh virtual file; spans are 0-based.
func ParseString(ctx context.Context, body string, opts Options) Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<literal>", []byte(body))
	return ParseFile(ctx, fs.Get(id), opts)
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) span(start, end uint32) source.Span {
	return source.Span{File: p.file, Start: start, End: end}
}

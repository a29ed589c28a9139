package lexer_test

import (
	"testing"

	"fstrlit/internal/lexer"
	"fstrlit/internal/source"
	"fstrlit/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) *lexer.Lexer {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.fstr", []byte(input))
	return lexer.New(fs.Get(id))
}

type tokSpec struct {
	kind  token.Kind
	text  string
	start uint32
	end   uint32
}

func collect(lx *lexer.Lexer) []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

func checkTokens(t *testing.T, got []token.Token, want []tokSpec) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		g := got[i]
		if g.Kind != w.kind || g.Text != w.text || g.Span.Start != w.start || g.Span.End != w.end {
			t.Errorf("token %d: got %s %q [%d,%d), want %s %q [%d,%d)",
				i, g.Kind, g.Text, g.Span.Start, g.Span.End, w.kind, w.text, w.start, w.end)
		}
	}
}

func TestLexer_Tokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tokSpec
	}{
		{"empty", "", nil},
		{"only spaces", " \t\r\n ", nil},
		{"plain text", "hello", []tokSpec{{token.Text, "hello", 0, 5}}},
		{"words split by space", "hi  there", []tokSpec{
			{token.Text, "hi", 0, 2},
			{token.Text, "there", 4, 9},
		}},
		{"simple expr", "{a}", []tokSpec{
			{token.LBrace, "{", 0, 1},
			{token.Text, "a", 1, 2},
			{token.RBrace, "}", 2, 3},
		}},
		{"conversion and spec", "{x!r:>10}", []tokSpec{
			{token.LBrace, "{", 0, 1},
			{token.Text, "x", 1, 2},
			{token.Bang, "!", 2, 3},
			{token.Text, "r", 3, 4},
			{token.Colon, ":", 4, 5},
			{token.Text, ">10", 5, 8},
			{token.RBrace, "}", 8, 9},
		}},
		{"all punctuation", `()[]{}!:'"\`, []tokSpec{
			{token.LParen, "(", 0, 1},
			{token.RParen, ")", 1, 2},
			{token.LBracket, "[", 2, 3},
			{token.RBracket, "]", 3, 4},
			{token.LBrace, "{", 4, 5},
			{token.RBrace, "}", 5, 6},
			{token.Bang, "!", 6, 7},
			{token.Colon, ":", 7, 8},
			{token.Quote, "'", 8, 9},
			{token.DQuote, `"`, 9, 10},
			{token.Backslash, `\`, 10, 11},
		}},
		{"unicode run", "привет{", []tokSpec{
			{token.Text, "привет", 0, 12},
			{token.LBrace, "{", 12, 13},
		}},
		{"operators are text", "a+b*c", []tokSpec{{token.Text, "a+b*c", 0, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkTokens(t, collect(makeTestLexer(tt.input)), tt.want)
		})
	}
}

func TestLexer_EOFIsSticky(t *testing.T) {
	lx := makeTestLexer("a ")
	lx.Next()
	for range 3 {
		tok := lx.Next()
		if tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %s", tok.Kind)
		}
		if tok.Span.Start != 2 || tok.Span.End != 2 {
			t.Fatalf("EOF span %v, want empty at 2", tok.Span)
		}
	}
}

func TestLexer_PeekDoesNotConsume(t *testing.T) {
	lx := makeTestLexer("{{x")
	if p := lx.Peek(); p.Kind != token.LBrace {
		t.Fatalf("Peek = %s", p.Kind)
	}
	if p := lx.PeekN(1); p.Kind != token.LBrace || p.Span.Start != 1 {
		t.Fatalf("PeekN(1) = %s %v", p.Kind, p.Span)
	}
	if p := lx.PeekN(5); p.Kind != token.EOF {
		t.Fatalf("PeekN past end = %s", p.Kind)
	}
	if n := lx.Next(); n.Span.Start != 0 {
		t.Fatalf("Next after peeks started at %d", n.Span.Start)
	}
}

func TestLexer_MarkReset(t *testing.T) {
	lx := makeTestLexer("a (b) c")
	lx.Next()
	m := lx.Mark()
	first := collect(lx)
	lx.Reset(m)
	second := collect(lx)

	if len(first) != len(second) || len(first) != 4 {
		t.Fatalf("replay mismatch: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("token %d differs after reset: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestLexer_Range(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("lines.fstr", []byte("abc\n{x}\n"))
	lx := lexer.NewRange(fs.Get(id), 4, 7)

	if lx.Start() != 4 || lx.End() != 7 {
		t.Fatalf("range [%d,%d)", lx.Start(), lx.End())
	}
	checkTokens(t, collect(lx), []tokSpec{
		{token.LBrace, "{", 4, 5},
		{token.Text, "x", 5, 6},
		{token.RBrace, "}", 6, 7},
	})
	if eof := lx.Next(); eof.Span.Start != 7 {
		t.Fatalf("EOF at %d, want 7", eof.Span.Start)
	}

	lx.SetRange(0, 3)
	checkTokens(t, collect(lx), []tokSpec{{token.Text, "abc", 0, 3}})
}

func TestLexer_All(t *testing.T) {
	lx := makeTestLexer("{a} b")
	lx.Next()
	rest := lx.All()
	if len(rest) != 3 {
		t.Fatalf("All returned %d tokens", len(rest))
	}
	if lx.Peek().Kind != token.EOF {
		t.Fatal("All must drain the stream")
	}
	if lx.Pos() != 5 {
		t.Fatalf("Pos at end = %d", lx.Pos())
	}
}

func BenchmarkLexer(b *testing.B) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bench.fstr", []byte(`value={obj.items[0]!r:>{width}.{prec}f} and {d['k']:{w}} done `))
	f := fs.Get(id)
	for b.Loop() {
		lx := lexer.New(f)
		for lx.Next().Kind != token.EOF {
		}
	}
}

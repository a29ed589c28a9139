package lexer

import (
	"fstrlit/internal/source"
	"fstrlit/internal/token"
)

// Lexer превращает тело литерала в поток токенов.
//
// Токены сканируются лениво и складываются в буфер, поэтому поток можно
// перематывать по индексу (Mark/Reset) без повторного сканирования.
// Пробельные символы токенами не становятся, но учитываются в смещениях.
// После исчерпания Next всегда возвращает EOF с пустым span на Limit.
type Lexer struct {
	file   *source.File
	cursor Cursor
	toks   []token.Token // уже отсканированные токены
	pos    int           // индекс следующего токена в toks
	done   bool          // курсор дошёл до Limit
}

// New creates a lexer over the whole content of file.
func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// NewRange creates a lexer over file.Content[start:end]. Token spans stay
// absolute file offsets.
func NewRange(file *source.File, start, end uint32) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewRangeCursor(file, start, end),
	}
}

// SetRange rewinds the lexer onto a new range of the same file and drops the
// token buffer.
func (lx *Lexer) SetRange(start, end uint32) {
	lx.cursor = NewRangeCursor(lx.file, start, end)
	lx.toks = lx.toks[:0]
	lx.pos = 0
	lx.done = false
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Start returns the first offset of the scanned range.
func (lx *Lexer) Start() uint32 { return lx.cursor.Base }

// End returns the exclusive end offset of the scanned range.
func (lx *Lexer) End() uint32 { return lx.cursor.Limit }

// Next возвращает следующий токен и продвигает поток.
func (lx *Lexer) Next() token.Token {
	tok := lx.PeekN(0)
	if tok.Kind != token.EOF {
		lx.pos++
	}
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	return lx.PeekN(0)
}

// PeekN returns the token n positions ahead without consuming anything;
// PeekN(0) is Peek.
func (lx *Lexer) PeekN(n int) token.Token {
	want := lx.pos + n
	for len(lx.toks) <= want && lx.scan() {
	}
	if want < len(lx.toks) {
		return lx.toks[want]
	}
	return lx.eof()
}

// Mark returns the index of the next token.
func (lx *Lexer) Mark() int { return lx.pos }

// Reset rewinds the stream to a position obtained from Mark.
func (lx *Lexer) Reset(m int) {
	if m < 0 {
		m = 0
	}
	if m > len(lx.toks) {
		m = len(lx.toks)
	}
	lx.pos = m
}

// Pos returns the start offset of the next token, or End at exhaustion.
func (lx *Lexer) Pos() uint32 {
	return lx.Peek().Span.Start
}

// All сканирует остаток потока и возвращает копию токенов без EOF.
func (lx *Lexer) All() []token.Token {
	for lx.scan() {
	}
	out := make([]token.Token, len(lx.toks)-lx.pos)
	copy(out, lx.toks[lx.pos:])
	lx.pos = len(lx.toks)
	return out
}

func (lx *Lexer) eof() token.Token {
	return token.Token{
		Kind: token.EOF,
		Span: source.At(lx.file.ID, lx.cursor.Limit),
	}
}

// scan дописывает в буфер ещё один токен; false, если вход исчерпан.
func (lx *Lexer) scan() bool {
	if lx.done {
		return false
	}
	lx.cursor.SkipSpace()
	if lx.cursor.EOF() {
		lx.done = true
		return false
	}

	start := lx.cursor.Mark()
	kind := token.KindOf(lx.cursor.Bump())
	if kind == token.Text {
		// максимальный отрезок не-структурных и не-пробельных байтов
		for !lx.cursor.EOF() {
			b := lx.cursor.Peek()
			if token.IsSpace(b) || token.IsStructural(b) {
				break
			}
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.toks = append(lx.toks, token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
	return true
}

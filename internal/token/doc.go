// Package token defines the token kinds produced when scanning the body of an
// interpolated string literal.
// Invariants:
//   - Token.Text is a slice of the original literal body (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace (space, tab, \n, \r) never becomes a token; it is still
//     counted in offsets, so spans address the original buffer.
//   - Everything that is neither whitespace nor one of the structural marks
//     ( ) { } [ ] ! : ' " \ is coalesced into Text runs.
package token

package token

import "testing"

func TestKindOf(t *testing.T) {
	tests := []struct {
		b    byte
		want Kind
	}{
		{'(', LParen}, {')', RParen}, {'{', LBrace}, {'}', RBrace},
		{'[', LBracket}, {']', RBracket}, {'!', Bang}, {':', Colon},
		{'\'', Quote}, {'"', DQuote}, {'\\', Backslash},
		{'a', Text}, {'>', Text}, {'1', Text}, {0xCE, Text},
	}
	for _, tt := range tests {
		if got := KindOf(tt.b); got != tt.want {
			t.Errorf("KindOf(%q) = %v, want %v", tt.b, got, tt.want)
		}
	}
}

func TestCloser(t *testing.T) {
	pairs := map[Kind]Kind{LParen: RParen, LBracket: RBracket, LBrace: RBrace, Quote: Invalid}
	for open, want := range pairs {
		if got := Closer(open); got != want {
			t.Errorf("Closer(%v) = %v, want %v", open, got, want)
		}
	}
}

func TestKindString(t *testing.T) {
	if Backslash.String() != "Backslash" || Text.String() != "Text" {
		t.Fatal("unexpected kind names")
	}
	if Kind(200).String() != "Kind(?)" {
		t.Fatal("out-of-range kind must not panic")
	}
}

func TestIsSpace(t *testing.T) {
	for _, b := range []byte(" \t\n\r") {
		if !IsSpace(b) {
			t.Errorf("IsSpace(%q) = false", b)
		}
	}
	if IsSpace('\v') || IsSpace('x') {
		t.Error("only space, tab, \\n, \\r are whitespace")
	}
}

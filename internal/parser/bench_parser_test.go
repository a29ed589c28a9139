package parser_test

import (
	"context"
	"strings"
	"testing"

	"fstrlit/internal/parser"
	"fstrlit/internal/source"
)

func BenchmarkParse(b *testing.B) {
	src := strings.Repeat(`name={user.name!r:>{width}} items={d['k'][1:2]} {{esc}} `, 32)
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bench.fstr", []byte(src)))
	ctx := context.Background()
	b.ReportAllocs()
	for b.Loop() {
		_ = parser.ParseFile(ctx, file, parser.Options{})
	}
}

func BenchmarkParseMalformed(b *testing.B) {
	src := strings.Repeat(`{a(}{'q}{!x} } `, 32)
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bench.fstr", []byte(src)))
	ctx := context.Background()
	b.ReportAllocs()
	for b.Loop() {
		_ = parser.ParseFile(ctx, file, parser.Options{})
	}
}

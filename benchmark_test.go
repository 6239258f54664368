package kscope

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func BenchmarkParse(b *testing.B) {
	data, err := os.ReadFile(filepath.Join("testdata", "basic.ks"))
	if err != nil {
		b.Fatalf("read: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(data, nil, nil); err != nil {
			b.Fatalf("parse: %v", err)
		}
	}
}

func BenchmarkParseLongExpr(b *testing.B) {
	src := strings.Repeat("a * b + c - d < ", 500) + "e"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseExpr(src, nil); err != nil {
			b.Fatalf("parse: %v", err)
		}
	}
}

func BenchmarkTokenize(b *testing.B) {
	data, err := os.ReadFile(filepath.Join("testdata", "basic.ks"))
	if err != nil {
		b.Fatalf("read: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Tokenize(bytes.NewReader(data))
	}
}

func BenchmarkEncode(b *testing.B) {
	forms, err := DecodeFile(filepath.Join("testdata", "basic.ks"), nil, nil)
	if err != nil {
		b.Fatalf("parse: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Format(forms, nil); err != nil {
			b.Fatalf("format: %v", err)
		}
	}
}

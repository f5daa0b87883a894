package miniada

import (
	"context"
	"testing"
)

func BenchmarkAnalyzeAllCorpus(b *testing.B) {
	src, err := DirTree("testdata/programs")
	if err != nil {
		b.Fatalf("DirTree failed: %v", err)
	}

	ctx := context.Background()

	b.ResetTimer()
	for b.Loop() {
		results, err := AnalyzeAll(ctx, src)
		if err != nil {
			b.Fatalf("AnalyzeAll failed: %v", err)
		}
		_ = results
	}
}

func BenchmarkAnalyzeSingleProgram(b *testing.B) {
	src, err := DirTree("testdata/programs")
	if err != nil {
		b.Fatalf("DirTree failed: %v", err)
	}
	content, _, err := readAll(src, "nested")
	if err != nil {
		b.Fatalf("reading nested: %v", err)
	}

	ctx := context.Background()

	b.ResetTimer()
	for b.Loop() {
		res, err := Analyze(ctx, "nested", content)
		if err != nil {
			b.Fatalf("Analyze failed: %v", err)
		}
		_ = res
	}
}

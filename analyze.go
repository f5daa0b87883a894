package miniada

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// AnalyzeAll analyzes every program known to source in parallel, at most
// WithWorkers programs at a time. Each program gets its own parser and
// symbol table.
//
// Per-program failures are reported in each Result, not as the returned
// error. The error is non-nil only when source cannot be listed or ctx
// is done. Results are sorted by program name.
func AnalyzeAll(ctx context.Context, source Source, opts ...Option) ([]*Result, error) {
	if source == nil {
		return nil, ErrNoSources
	}
	cfg := newAnalyzeConfig(opts)
	logger := cfg.logger

	names, err := source.Names()
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}
	if len(names) == 0 {
		return nil, nil
	}

	if logEnabled(logger, slog.LevelInfo) {
		logger.LogAttrs(ctx, slog.LevelInfo, "parallel analysis",
			slog.Int("programs", len(names)),
			slog.Int("workers", cfg.workers))
	}

	results := make(chan *Result, len(names))

	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.workers)

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			content, path, err := readAll(source, name)
			if err != nil {
				results <- &Result{
					Name: name,
					File: path,
					Err:  fmt.Errorf("reading program %s: %w", name, err),
				}
				return
			}
			results <- analyzeContent(ctx, name, path, content, cfg)
		}(name)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var out []*Result
	for r := range results {
		out = append(out, r)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	slices.SortFunc(out, func(a, b *Result) int {
		return cmp.Compare(a.Name, b.Name)
	})

	if logEnabled(logger, slog.LevelInfo) {
		failed := 0
		for _, r := range out {
			if !r.Successful() {
				failed++
			}
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "parallel analysis complete",
			slog.Int("programs", len(out)),
			slog.Int("failed", failed))
	}
	return out, nil
}

// Package miniada analyzes Mini-Ada programs: it checks that each program
// is well-formed and correctly scoped, and computes the activation-record
// layout of every procedure it declares.
package miniada

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/miniada/miniada/internal/lexer"
	"github.com/miniada/miniada/internal/parser"
	"github.com/miniada/miniada/internal/types"
	"github.com/miniada/miniada/symtab"
)

// ErrNoSources is returned when AnalyzeAll is called without a source.
var ErrNoSources = errors.New("no program sources provided")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-token and per-symbol logging.
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// Option configures Analyze, AnalyzeFile and AnalyzeAll.
type Option func(*analyzeConfig)

type analyzeConfig struct {
	logger  *slog.Logger
	workers int
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *analyzeConfig) { c.logger = logger }
}

// WithWorkers bounds the number of programs AnalyzeAll analyzes at once.
// Values below 1 select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(c *analyzeConfig) { c.workers = n }
}

func newAnalyzeConfig(opts []Option) analyzeConfig {
	cfg := analyzeConfig{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = runtime.NumCPU()
	}
	return cfg
}

// Result is the outcome of analyzing one program.
type Result struct {
	// Name is the program name: the file stem, or the name given to Analyze.
	Name string
	// File is the path used in diagnostics.
	File string
	// Program is the outermost procedure's symbol, nil on failure.
	Program *Symbol
	// Table is the symbol table the analysis recorded into.
	Table *Table
	// Frames holds one activation record per procedure, innermost first.
	Frames []Frame
	// Tokens is the number of tokens consumed.
	Tokens int
	// Diagnostics lists lexical problems and, on failure, the fatal error.
	Diagnostics []Diagnostic
	// Err is the analysis failure, nil on success.
	Err error
}

// Successful reports whether the program analyzed without error.
func (r *Result) Successful() bool {
	return r.Err == nil
}

// Analyze analyzes a single program held in memory. name labels the
// result and its diagnostics.
//
// The returned error is the analysis failure, also available as
// Result.Err; the Result is non-nil either way unless ctx is done.
//
// Example:
//
//	res, err := miniada.Analyze(ctx, "main.ada", src,
//	    miniada.WithLogger(slog.Default()),
//	)
//	if errors.Is(err, miniada.ErrUndefinedIdentifier) {
//	    ...
//	}
func Analyze(ctx context.Context, name string, src []byte, opts ...Option) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := newAnalyzeConfig(opts)
	res := analyzeContent(ctx, name, name, src, cfg)
	return res, res.Err
}

// AnalyzeFile reads and analyzes the program at path.
func AnalyzeFile(ctx context.Context, path string, opts ...Option) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	cfg := newAnalyzeConfig(opts)
	res := analyzeContent(ctx, programNameFromPath(path), path, content, cfg)
	return res, res.Err
}

func analyzeContent(ctx context.Context, name, file string, content []byte, cfg analyzeConfig) *Result {
	logger := cfg.logger
	if logEnabled(logger, slog.LevelDebug) {
		logger.LogAttrs(ctx, slog.LevelDebug, "analyzing program",
			slog.String("program", name),
			slog.String("file", file),
			slog.Int("bytes", len(content)))
	}

	lex := lexer.New(content, types.ComponentLogger(logger, "lexer"))
	table := symtab.NewTable()
	p := parser.New(lex, table, types.ComponentLogger(logger, "parser"))
	out, err := p.Analyze()

	res := &Result{
		Name:  name,
		File:  file,
		Table: table,
	}
	for _, d := range lex.Diagnostics() {
		d.File = file
		res.Diagnostics = append(res.Diagnostics, d)
	}

	if err != nil {
		res.Err = err
		var aerr *types.Error
		if errors.As(err, &aerr) {
			res.Diagnostics = append(res.Diagnostics, aerr.Diagnostic(file))
		}
		if logEnabled(logger, slog.LevelInfo) {
			logger.LogAttrs(ctx, slog.LevelInfo, "analysis failed",
				slog.String("program", name),
				slog.String("error", err.Error()))
		}
		return res
	}

	res.Program = out.Program
	res.Frames = out.Frames
	res.Tokens = out.Tokens
	return res
}

func readAll(src Source, name string) ([]byte, string, error) {
	r, path, err := src.Find(name)
	if err != nil {
		return nil, path, err
	}
	defer r.Close() //nolint:errcheck // read-only
	content, err := io.ReadAll(r)
	return content, path, err
}

func programNameFromPath(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// logEnabled returns true if logging is enabled at the given level.
func logEnabled(logger *slog.Logger, level slog.Level) bool {
	return logger != nil && logger.Enabled(context.Background(), level)
}

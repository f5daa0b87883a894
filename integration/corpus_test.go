// Package integration provides integration tests against the program corpus.
//
// These tests analyze the full testdata/programs/ folder once and make
// assertions against the results. Frame layouts were worked out by hand
// from the offset rules: parameters are laid out from the last-declared
// one upwards starting at the frame header, locals in declaration order
// from the local base.
//
// # File Organization
//
//   - corpus_test.go: Shared infrastructure and basic load test
//   - frames_test.go: Activation-record layouts of the valid programs
//   - errors_test.go: First-error reporting for the invalid programs
package integration

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/miniada/miniada"
)

var (
	corpusResults map[string]*miniada.Result
	corpusOnce    sync.Once
	corpusErr     error
)

// corpusPath returns the path to the program corpus.
func corpusPath() string {
	return filepath.Join("..", "testdata", "programs")
}

// loadCorpus analyzes the entire corpus once and caches the results by
// program name.
func loadCorpus(t *testing.T) map[string]*miniada.Result {
	t.Helper()

	corpusOnce.Do(func() {
		path := corpusPath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			corpusErr = err
			return
		}
		src, err := miniada.DirTree(path)
		if err != nil {
			corpusErr = err
			return
		}
		results, err := miniada.AnalyzeAll(context.Background(), src)
		if err != nil {
			corpusErr = err
			return
		}
		corpusResults = make(map[string]*miniada.Result, len(results))
		for _, r := range results {
			corpusResults[r.Name] = r
		}
	})

	require.NoError(t, corpusErr, "failed to load corpus")
	require.NotNil(t, corpusResults, "corpus results are nil")
	return corpusResults
}

// getResult retrieves a program's result and fails if it is missing.
func getResult(t *testing.T, name string) *miniada.Result {
	t.Helper()
	r, ok := loadCorpus(t)[name]
	require.True(t, ok, "program %s should exist", name)
	return r
}

// getFrame retrieves a procedure's frame from a successful result.
func getFrame(t *testing.T, program, procedure string) miniada.Frame {
	t.Helper()
	r := getResult(t, program)
	require.True(t, r.Successful(), "program %s should analyze: %v", program, r.Err)
	for _, f := range r.Frames {
		if f.Procedure == procedure {
			return f
		}
	}
	require.Failf(t, "missing frame", "frame %s in %s should exist", procedure, program)
	return miniada.Frame{}
}

// TestCorpusLoads verifies the corpus analyzes and every program is accounted for.
func TestCorpusLoads(t *testing.T) {
	results := loadCorpus(t)

	valid, err := os.ReadDir(filepath.Join(corpusPath(), "valid"))
	require.NoError(t, err)
	invalid, err := os.ReadDir(filepath.Join(corpusPath(), "invalid"))
	require.NoError(t, err)
	require.Len(t, results, len(valid)+len(invalid))

	for _, e := range valid {
		name := e.Name()[:len(e.Name())-len(filepath.Ext(e.Name()))]
		r := getResult(t, name)
		require.True(t, r.Successful(), "%s: %v", name, r.Err)
		require.NotNil(t, r.Program)
		require.NotEmpty(t, r.Frames)
	}
	for _, e := range invalid {
		name := e.Name()[:len(e.Name())-len(filepath.Ext(e.Name()))]
		r := getResult(t, name)
		require.False(t, r.Successful(), name)
		require.NotEmpty(t, r.Diagnostics, name)
	}
}

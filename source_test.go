package miniada

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirNonExistentPath(t *testing.T) {
	_, err := Dir("/this/path/does/not/exist/at/all")
	assert.Error(t, err)
}

func TestDirNotADirectory(t *testing.T) {
	_, err := Dir("testdata/programs/valid/params.ada")
	assert.Error(t, err)
}

func TestMustDirPanicsOnError(t *testing.T) {
	assert.Panics(t, func() { MustDir("/this/path/does/not/exist") })
}

func TestDirSource(t *testing.T) {
	src := MustDir("testdata/programs/valid")
	names, err := src.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"constants", "expressions", "nested", "params"}, names)

	r, path, err := src.Find("params")
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, filepath.Join("testdata/programs/valid", "params.ada"), path)
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(content), "procedure P")

	_, _, err = src.Find("nope")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDirTreeSource(t *testing.T) {
	assert.Panics(t, func() { MustDirTree("/this/path/does/not/exist") })

	src := MustDirTree("testdata/programs")
	names, err := src.Names()
	require.NoError(t, err)
	assert.Contains(t, names, "params")
	assert.Contains(t, names, "duplicate")

	r, path, err := src.Find("duplicate")
	require.NoError(t, err)
	_ = r.Close()
	assert.Equal(t, filepath.Join("testdata/programs/invalid", "duplicate.ada"), path)

	_, _, err = src.Find("nope")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileSource(t *testing.T) {
	src, err := File("testdata/programs/valid/constants.ada")
	require.NoError(t, err)
	names, err := src.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"constants"}, names)

	r, _, err := src.Find("constants")
	require.NoError(t, err)
	_ = r.Close()

	_, _, err = src.Find("params")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = File("testdata/programs")
	assert.Error(t, err)
}

func TestFSSource(t *testing.T) {
	fsys := fstest.MapFS{
		"progs/main.ada":  {Data: []byte("procedure Main is begin end Main;")},
		"progs/util.adb":  {Data: []byte("procedure Util is begin end Util;")},
		"progs/README.md": {Data: []byte("not a program")},
	}
	src := FS("embedded", fsys)

	names, err := src.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "util"}, names)

	r, path, err := src.Find("main")
	require.NoError(t, err)
	_ = r.Close()
	assert.Equal(t, "embedded:progs/main.ada", path)

	_, _, err = src.Find("README")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	results, err := AnalyzeAll(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Successful(), r.Name)
	}
}

func TestMultiSource(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(first, "shared.ada"), []byte("procedure A is begin end A;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(second, "shared.ada"), []byte("procedure B is begin end B;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(second, "only.ada"), []byte("procedure C is begin end C;"), 0o644))

	src := Multi(MustDir(first), MustDir(second))

	names, err := src.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"only", "shared"}, names)

	r, path, err := src.Find("shared")
	require.NoError(t, err)
	_ = r.Close()
	assert.Equal(t, filepath.Join(first, "shared.ada"), path)

	_, _, err = src.Find("missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWithExtensions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ada"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0o644))

	names, err := MustDir(dir).Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names)

	names, err = MustDir(dir, WithExtensions(".txt")).Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
}

func TestProgramNameFromPath(t *testing.T) {
	tests := map[string]string{
		"main.ada":           "main",
		"dir/util.adb":       "util",
		"/abs/path/x.y.mada": "x.y",
		"noext":              "noext",
	}
	for in, want := range tests {
		assert.Equal(t, want, programNameFromPath(in), in)
	}
}

package miniada

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/miniada/miniada/internal/types"
)

func TestParseRCLine(t *testing.T) {
	tests := []struct {
		line   string
		wantOp pathOp
		want   []string
		wantOk bool
	}{
		// Replace
		{"path /srv/programs", pathReplace, []string{"/srv/programs"}, true},
		{"path /a:/b:/c", pathReplace, []string{"/a", "/b", "/c"}, true},
		// Append (+ prefix on value)
		{"path +/extra", pathAppend, []string{"/extra"}, true},
		{"path +/a:/b", pathAppend, []string{"/a", "/b"}, true},
		// Prepend (- prefix on value)
		{"path -/first", pathPrepend, []string{"/first"}, true},
		// Prefix on directive
		{"+path /extra", pathAppend, []string{"/extra"}, true},
		{"-path /first", pathPrepend, []string{"/first"}, true},
		// Whitespace variations
		{"  path  /dir  ", pathReplace, []string{"/dir"}, true},
		{"path\t/dir", pathReplace, []string{"/dir"}, true},
		// Other directives
		{"workers 4", 0, nil, false},
		// Comments and blanks
		{"# path /foo", 0, nil, false},
		{"", 0, nil, false},
		{"  ", 0, nil, false},
		// No value
		{"path", 0, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			op, dirs, ok := parseRCLine(tt.line)
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if op != tt.wantOp {
				t.Errorf("op = %v, want %v", op, tt.wantOp)
			}
			if !slices.Equal(dirs, tt.want) {
				t.Errorf("dirs = %v, want %v", dirs, tt.want)
			}
		})
	}
}

func TestApplyOp(t *testing.T) {
	tests := []struct {
		name string
		op   pathOp
		dirs []string
		want []string
	}{
		{"replace", pathReplace, []string{"/new"}, []string{"/new"}},
		{"append", pathAppend, []string{"/extra"}, []string{"/default", "/extra"}},
		{"prepend", pathPrepend, []string{"/first"}, []string{"/first", "/default"}},
		{"append multiple", pathAppend, []string{"/a", "/b"}, []string{"/default", "/a", "/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyOp(tt.op, tt.dirs, []string{"/default"})
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedup(t *testing.T) {
	got := dedup([]string{"/a", "/b", "/a", "/c", "/b"})
	want := []string{"/a", "/b", "/c"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilterExistingDirs(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "exists")
	if err := os.Mkdir(existing, 0o755); err != nil {
		t.Fatal(err)
	}

	filePath := filepath.Join(dir, "afile")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := filterExistingDirs([]string{existing, filepath.Join(dir, "missing"), filePath, "/nonexistent"})
	want := []string{existing}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestApplyConfigFile(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, "miniadarc")
	if err := os.WriteFile(rc, []byte("# Comment\npath /base\n+path /extra\n-path /first\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := applyConfigFile(rc, []string{"/original"}, parseRCLine, types.Logger{})
	want := []string{"/first", "/base", "/extra"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestApplyConfigFileMissing(t *testing.T) {
	current := []string{"/keep"}
	got := applyConfigFile("/nonexistent/file", current, parseRCLine, types.Logger{})
	if !slices.Equal(got, current) {
		t.Errorf("missing rc file should return current paths unchanged, got %v", got)
	}
}

func TestSplitPaths(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"/a:/b:/c", []string{"/a", "/b", "/c"}},
		{"/single", []string{"/single"}},
		{"", nil},
		{":/a", []string{"/a"}},
		{"/a:", []string{"/a"}},
		{"/a::/b", []string{"/a", "/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := splitPaths(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	defaults := []string{"/usr/share/miniada/programs"}

	tests := []struct {
		value string
		want  []string
	}{
		{"/custom", []string{"/custom"}},
		{"+/extra", []string{"/usr/share/miniada/programs", "/extra"}},
		{"-/first", []string{"/first", "/usr/share/miniada/programs"}},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got := applyEnv(tt.value, slices.Clone(defaults))
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchPathsFromEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.ada"), []byte("procedure hello is begin end hello;"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(PathEnv, dir+":"+filepath.Join(dir, "missing"))

	got := SearchPaths(nil)
	if !slices.Equal(got, []string{dir}) {
		t.Fatalf("got %v, want [%s]", got, dir)
	}

	src := SearchSource(nil)
	if src == nil {
		t.Fatal("SearchSource returned nil")
	}
	names, err := src.Names()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(names, []string{"hello"}) {
		t.Errorf("names = %v", names)
	}
}

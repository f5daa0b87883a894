package miniada

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/miniada/miniada/internal/types"
)

// PathEnv names the environment variable listing program directories.
// A leading '+' appends to the defaults, a leading '-' prepends, and
// anything else replaces them. Directories are separated by ':'.
const PathEnv = "MINIADA_PATH"

type pathOp int

const (
	pathReplace pathOp = iota
	pathAppend
	pathPrepend
)

// SearchSource returns a Source over every discovered program directory,
// searched in order. It returns nil when no directory exists.
func SearchSource(logger *slog.Logger, opts ...SourceOption) Source {
	dirs := SearchPaths(logger)
	var sources []Source
	for _, d := range dirs {
		if src, err := Dir(d, opts...); err == nil {
			sources = append(sources, src)
		}
	}
	if len(sources) == 0 {
		return nil
	}
	return Multi(sources...)
}

// SearchPaths returns the program directories from the defaults, the
// rc files and MINIADA_PATH, deduplicated and filtered to directories
// that exist.
func SearchPaths(logger *slog.Logger) []string {
	log := types.Logger{L: types.ComponentLogger(logger, "searchpath")}
	paths := defaultPaths()
	for _, cf := range rcFiles() {
		paths = applyConfigFile(cf, paths, parseRCLine, log)
	}
	if v := os.Getenv(PathEnv); v != "" {
		paths = applyEnv(v, paths)
	}
	return filterExistingDirs(dedup(paths))
}

func defaultPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".miniada", "programs"))
	}
	paths = append(paths,
		"/usr/local/share/miniada/programs",
		"/usr/share/miniada/programs",
	)
	return paths
}

func rcFiles() []string {
	files := []string{"/etc/miniada.conf"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".miniadarc"))
	}
	return files
}

// parseRCLine parses a single rc line for path directives.
// Supports both "path +/dir" (prefix on value) and "+path /dir" (prefix on directive).
func parseRCLine(line string) (pathOp, []string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return 0, nil, false
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, nil, false
	}

	directive := fields[0]
	value := fields[1]

	switch directive {
	case "path":
		if strings.HasPrefix(value, "+") {
			return pathAppend, splitPaths(value[1:]), true
		}
		if strings.HasPrefix(value, "-") {
			return pathPrepend, splitPaths(value[1:]), true
		}
		return pathReplace, splitPaths(value), true
	case "+path":
		return pathAppend, splitPaths(value), true
	case "-path":
		return pathPrepend, splitPaths(value), true
	default:
		return 0, nil, false
	}
}

func applyEnv(value string, current []string) []string {
	if strings.HasPrefix(value, "+") {
		return applyOp(pathAppend, splitPaths(value[1:]), current)
	}
	if strings.HasPrefix(value, "-") {
		return applyOp(pathPrepend, splitPaths(value[1:]), current)
	}
	return splitPaths(value)
}

func applyOp(op pathOp, dirs, current []string) []string {
	switch op {
	case pathAppend:
		return append(current, dirs...)
	case pathPrepend:
		return append(dirs, current...)
	default:
		return dirs
	}
}

func applyConfigFile(path string, current []string, parseLine func(string) (pathOp, []string, bool), logger types.Logger) []string {
	f, err := os.Open(path)
	if err != nil {
		return current
	}
	defer f.Close() //nolint:errcheck // best-effort config file read

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		op, dirs, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		current = applyOp(op, dirs, current)
	}
	if err := scanner.Err(); err != nil {
		logger.Log(slog.LevelDebug, "error reading rc file", slog.String("path", path), slog.Any("error", err))
	}
	return current
}

func splitPaths(s string) []string {
	if s == "" {
		return nil
	}
	var result []string
	for _, p := range strings.Split(s, ":") {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func dedup(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var result []string
	for _, p := range paths {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			result = append(result, p)
		}
	}
	return result
}

func filterExistingDirs(paths []string) []string {
	var result []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			result = append(result, p)
		}
	}
	return result
}

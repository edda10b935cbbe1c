package pipeline

import (
	"path/filepath"
	"sort"
	"strings"
)

// DisplayNames maps file paths to the names shown in progress output:
// relative to baseDir when the file lies under it, slash separated,
// deduplicated and sorted. It returns the names and a lookup from each
// input path to its name.
func DisplayNames(files []string, baseDir string) ([]string, map[string]string) {
	names := make([]string, 0, len(files))
	byPath := make(map[string]string, len(files))
	seen := make(map[string]struct{}, len(files))

	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
	}

	for _, file := range files {
		if file == "" {
			continue
		}
		path := filepath.Clean(file)
		if base != "" {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
				path = rel
			}
		}
		path = filepath.ToSlash(path)
		byPath[file] = path
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		names = append(names, path)
	}
	sort.Strings(names)
	return names, byPath
}

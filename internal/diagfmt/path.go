package diagfmt

import (
	"os"
	"path/filepath"
	"strings"

	"arttrace/internal/source"
)

func formatPath(fs *source.FileSet, span source.Span, mode PathMode, baseDir string) string {
	if fs == nil || span.Line == 0 {
		return ""
	}
	f := fs.Get(span.File)
	if f == nil {
		return ""
	}
	path := f.Path
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			path = filepath.ToSlash(abs)
		}
	case PathModeRelative:
		base := baseDir
		if base == "" {
			base, _ = os.Getwd()
		}
		if abs, err := filepath.Abs(path); err == nil && base != "" {
			if rel, err := filepath.Rel(base, abs); err == nil && !strings.HasPrefix(rel, "..") {
				path = filepath.ToSlash(rel)
			}
		}
	case PathModeBasename:
		path = source.BaseName(path)
	}
	return path
}

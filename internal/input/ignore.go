package input

import (
	"path"
	"path/filepath"
	"strings"
)

// Options controls which files of a submission are considered source.
type Options struct {
	// IgnorePatterns skips matching paths (relative to the submission root).
	// Supports plain names (e.g. "node_modules") and glob patterns
	// (e.g. "*.config.ts", "vendor/*").
	IgnorePatterns []string
	// Extensions lists the accepted source extensions.
	Extensions []string
	// MaxFileBytes skips larger files. Zero means no limit.
	MaxFileBytes int64
}

// DefaultOptions returns the discovery rules for TypeScript submissions.
func DefaultOptions() Options {
	return Options{
		IgnorePatterns: []string{
			"node_modules",
			"dist",
			"build",
			"coverage",
			"*.test.ts",
			"*.spec.ts",
			"*.d.ts",
			"*.config.ts",
			"*.config.js",
			".eslintrc*",
		},
		Extensions:   []string{".ts"},
		MaxFileBytes: 1 << 20,
	}
}

func normalizePattern(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimSuffix(p, "/")
	p = strings.TrimSuffix(p, "\\")
	return filepath.ToSlash(p)
}

// isIgnoredRel reports whether a relative path should be ignored. Glob
// patterns without a slash match the base name at any depth.
func isIgnoredRel(rel, name string, patterns []string) bool {
	rel = filepath.ToSlash(rel)
	for _, raw := range patterns {
		p := normalizePattern(raw)
		if p == "" {
			continue
		}
		if strings.ContainsAny(p, "*?[]") {
			if ok, _ := path.Match(p, rel); ok {
				return true
			}
			if !strings.Contains(p, "/") {
				if ok, _ := path.Match(p, name); ok {
					return true
				}
			}
			// vendor/*
			if strings.HasSuffix(p, "/*") {
				prefix := strings.TrimSuffix(p, "/*")
				if strings.HasPrefix(rel, prefix+"/") {
					return true
				}
			}
			continue
		}
		if name == p {
			return true
		}
		if strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	return false
}

func hasExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

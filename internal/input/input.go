// Package input discovers the source files of a submission.
package input

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tsanalyzer/internal/logging"
)

// Source is one submitted file.
type Source struct {
	// Name is the path relative to the submission root.
	Name    string
	Content []byte
}

// Input yields up to n candidate sources, best candidate first.
type Input interface {
	Read(ctx context.Context, n int) ([]Source, error)
}

// NoSourceError reports a submission without any usable source file.
type NoSourceError struct {
	Expected  string
	Available []string
}

func (e *NoSourceError) Error() string {
	return fmt.Sprintf("expected source file %q, found: %s", e.Expected, e.available())
}

func (e *NoSourceError) available() string {
	if len(e.Available) == 0 {
		return "nothing"
	}
	return strings.Join(e.Available, ", ")
}

// Expectation renders the variables for a no-source comment.
func (e *NoSourceError) Expectation() (expected, available string) {
	return e.Expected, e.available()
}

// DirectoryInput reads a submission from a directory tree.
type DirectoryInput struct {
	Dir      string
	Exercise string
	Options  Options
}

// NewDirectoryInput creates a directory input for the given exercise slug.
func NewDirectoryInput(dir, exercise string, opts Options) *DirectoryInput {
	return &DirectoryInput{Dir: dir, Exercise: exercise, Options: opts}
}

// Expected is the preferred source file name, e.g. two-fer.ts.
func (d *DirectoryInput) Expected() string {
	ext := ".ts"
	if len(d.Options.Extensions) > 0 {
		ext = d.Options.Extensions[0]
	}
	return d.Exercise + ext
}

// Read returns up to n sources. The file named after the exercise comes
// first, the rest follow in path order. A submission without any candidate
// yields a *NoSourceError listing the files that were seen.
func (d *DirectoryInput) Read(ctx context.Context, n int) ([]Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := logging.Get(logging.CategoryInput)

	candidates, seen, err := d.candidates()
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		log.Warn("no source in %s (saw %d files)", d.Dir, len(seen))
		return nil, &NoSourceError{Expected: d.Expected(), Available: seen}
	}
	if n > 0 && len(candidates) > n {
		candidates = candidates[:n]
	}

	sources := make([]Source, 0, len(candidates))
	for _, rel := range candidates {
		content, err := os.ReadFile(filepath.Join(d.Dir, rel))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", rel, err)
		}
		sources = append(sources, Source{Name: rel, Content: content})
	}
	log.Debug("selected %v from %s", candidates, d.Dir)
	return sources, nil
}

// candidates lists accepted source paths in preference order, plus every
// regular file seen (for diagnostics).
func (d *DirectoryInput) candidates() (accepted, seen []string, err error) {
	expected := d.Expected()

	err = filepath.WalkDir(d.Dir, func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(d.Dir, p)
		if err != nil || rel == "." {
			return nil
		}
		name := entry.Name()

		if entry.IsDir() {
			if strings.HasPrefix(name, ".") || isIgnoredRel(rel, name, d.Options.IgnorePatterns) {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		rel = filepath.ToSlash(rel)
		seen = append(seen, rel)

		if !hasExtension(name, d.Options.Extensions) || isIgnoredRel(rel, name, d.Options.IgnorePatterns) {
			return nil
		}
		if d.Options.MaxFileBytes > 0 {
			if info, err := entry.Info(); err == nil && info.Size() > d.Options.MaxFileBytes {
				logging.InputDebug("skipping %s: %d bytes", rel, info.Size())
				return nil
			}
		}
		accepted = append(accepted, rel)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan %s: %w", d.Dir, err)
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		pi, pj := accepted[i] == expected, accepted[j] == expected
		if pi != pj {
			return pi
		}
		return accepted[i] < accepted[j]
	})
	return accepted, seen, nil
}

// InlineInput serves sources held in memory.
type InlineInput struct {
	Sources []Source
}

// NewInlineInput wraps raw source texts, named inline-0.ts, inline-1.ts, ...
func NewInlineInput(texts ...string) *InlineInput {
	in := &InlineInput{}
	for i, text := range texts {
		in.Sources = append(in.Sources, Source{Name: fmt.Sprintf("inline-%d.ts", i), Content: []byte(text)})
	}
	return in
}

// Read returns up to n of the held sources.
func (in *InlineInput) Read(ctx context.Context, n int) ([]Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(in.Sources) == 0 {
		return nil, &NoSourceError{Expected: "inline source"}
	}
	sources := in.Sources
	if n > 0 && len(sources) > n {
		sources = sources[:n]
	}
	return sources, nil
}

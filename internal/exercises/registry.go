// Package exercises maps exercise slugs to their analyzers.
package exercises

import (
	"fmt"
	"sort"

	"tsanalyzer/internal/analyzer"
	"tsanalyzer/internal/exercises/twofer"
)

var registry = map[string]analyzer.Analyzer{}

func register(a analyzer.Analyzer) {
	if _, dup := registry[a.Exercise()]; dup {
		panic(fmt.Sprintf("exercises: analyzer for %q registered twice", a.Exercise()))
	}
	registry[a.Exercise()] = a
}

func init() {
	register(twofer.New())
}

// UnknownExerciseError reports a slug without an analyzer.
type UnknownExerciseError struct {
	Slug string
}

func (e *UnknownExerciseError) Error() string {
	return fmt.Sprintf("no analyzer for exercise %q", e.Slug)
}

// Find returns the analyzer for slug.
func Find(slug string) (analyzer.Analyzer, error) {
	a, ok := registry[slug]
	if !ok {
		return nil, &UnknownExerciseError{Slug: slug}
	}
	return a, nil
}

// List returns the registered slugs in order.
func List() []string {
	slugs := make([]string, 0, len(registry))
	for slug := range registry {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

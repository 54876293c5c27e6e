package analyzer

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"tsanalyzer/internal/comments"
	"tsanalyzer/internal/input"
	"tsanalyzer/internal/logging"
	"tsanalyzer/internal/syntax"
)

// Run analyzes the best source of in with a. It never panics and never
// fails: missing sources, parse errors, errors returned by the analyzer and
// panics inside it all end as refer_to_mentor with an Essential comment.
func Run(ctx context.Context, a Analyzer, in input.Input) (out *Output) {
	log := logging.Get(logging.CategoryAnalyzer).With("exercise", a.Exercise())

	defer func() {
		if r := recover(); r != nil {
			log.Error("analyzer panicked: %v\n%s", r, debug.Stack())
			out = internalError(fmt.Errorf("panic: %v", r))
		}
	}()

	sources, err := in.Read(ctx, 1)
	if err == nil && len(sources) == 0 {
		err = &input.NoSourceError{Expected: a.Exercise() + ".ts"}
	}
	if err != nil {
		var noSource *input.NoSourceError
		if errors.As(err, &noSource) {
			expected, available := noSource.Expectation()
			b := NewBase()
			b.Redirect(comments.ErrorCapturedNoSource.New(comments.Variables{
				"expected":  expected,
				"available": available,
			}))
			return b.Output()
		}
		log.Error("reading input failed: %v", err)
		return internalError(err)
	}

	return analyze(ctx, a, sources[0], log)
}

func analyze(ctx context.Context, a Analyzer, src input.Source, log *logging.Logger) *Output {
	tree, err := syntax.Parse(ctx, src.Content)
	if err != nil {
		var parseErr *syntax.ParseError
		if errors.As(err, &parseErr) {
			log.Info("%s does not parse: %s", src.Name, parseErr.Message)
			b := NewBase()
			b.Redirect(comments.ParseError.New(comments.Variables{
				"error":   parseErr.Message,
				"details": parseErr.Details,
			}))
			return b.Output()
		}
		return internalError(err)
	}
	defer tree.Close()

	b := NewBase()
	if err := a.Execute(ctx, b, tree); err != nil {
		log.Error("analysis of %s failed: %v", src.Name, err)
		return internalError(err)
	}

	log.Debug("%s: %s with %d comments", src.Name, b.Status(), len(b.Output().Comments))
	return b.Output()
}

// internalError discards whatever the failed run recorded.
func internalError(err error) *Output {
	b := NewBase()
	b.Redirect(comments.RedirectInternalError.New(comments.Variables{"error": err.Error()}))
	return b.Output()
}

// Package runner drives analyzers over submission directories: it runs the
// analysis, reports progress and writes the result file.
package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tsanalyzer/internal/analyzer"
	"tsanalyzer/internal/config"
	"tsanalyzer/internal/input"
	"tsanalyzer/internal/logging"
)

// Result is the outcome of one submission run.
type Result struct {
	RunID  string
	Dir    string
	Output *analyzer.Output
	// Path is where the output was written, empty on dry runs.
	Path string
	// Err is set when the output could not be written.
	Err error
}

// Run analyzes the submission in dir and prints progress lines to w. Unless
// cfg.Output.Dry is set the output is saved to cfg.OutputPath(dir).
func Run(ctx context.Context, a analyzer.Analyzer, dir string, cfg *config.Config, w io.Writer) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.New().String(), Dir: dir}
	log := logging.Get(logging.CategoryOutput).With("run_id", res.RunID)

	fmt.Fprintf(w, "=> exercise: %s\n", a.Exercise())

	in := input.NewDirectoryInput(dir, a.Exercise(), cfg.InputOptions())
	res.Output = analyzer.Run(ctx, a, in)
	log.Debug("%s: %s", dir, res.Output.Status)

	fmt.Fprintf(w, "=> output: \n\n%s\n", res.Output)

	if cfg.Output.Dry {
		fmt.Fprintln(w, "=> running dry, no writing to file")
	} else {
		res.Path = cfg.OutputPath(dir)
		fmt.Fprintf(w, "=> writing to %s\n", res.Path)
		if err := res.Output.Save(res.Path); err != nil {
			log.Error("write failed: %v", err)
			res.Err = err
			return res, err
		}
	}

	fmt.Fprintln(w, "=> DONE")
	return res, nil
}

// Batch runs a over every directory with at most cfg.Batch.Concurrency runs
// in flight. Results come back in the order of dirs. A failed write is
// recorded on its Result and does not stop the other runs; only context
// cancellation aborts the batch.
func Batch(ctx context.Context, a analyzer.Analyzer, dirs []string, cfg *config.Config) ([]*Result, error) {
	log := logging.Get(logging.CategoryBatch).With("exercise", a.Exercise())

	results := make([]*Result, len(dirs))
	if len(dirs) == 0 {
		return results, nil
	}

	limit := cfg.Batch.Concurrency
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(limit, len(dirs)))

	for i, dir := range dirs {
		g.Go(func() error {
			res, err := Run(gctx, a, dir, cfg, io.Discard)
			if res == nil {
				return err
			}
			// Each goroutine owns its index.
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn("batch aborted: %v", err)
		return results, fmt.Errorf("batch interrupted: %w", err)
	}

	log.Info("analyzed %d submissions", len(dirs))
	return results, nil
}

package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tsanalyzer/internal/analyzer"
	"tsanalyzer/internal/config"
	"tsanalyzer/internal/exercises/twofer"
	"tsanalyzer/internal/syntax"
)

const optimal = "export default class TwoFer {\n  static twoFer(name: string = 'you'): string {\n    return `One for ${name}, one for me.`\n  }\n}\n"

const required = "export default class TwoFer {\n  static twoFer(name: string): string {\n    return `One for ${name}, one for me.`\n  }\n}\n"

func submission(t *testing.T, source string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two-fer.ts"), []byte(source), 0644))
	return dir
}

func status(t *testing.T, path string) analyzer.Status {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded struct {
		Status analyzer.Status `json:"status"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	return decoded.Status
}

func TestRunWritesOutput(t *testing.T) {
	dir := submission(t, optimal)
	var out bytes.Buffer

	res, err := Run(context.Background(), twofer.New(), dir, config.DefaultConfig(), &out)
	require.NoError(t, err)

	path := filepath.Join(dir, config.DefaultOutputFile)
	assert.Equal(t, path, res.Path)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, analyzer.ApproveAsOptimal, res.Output.Status)
	assert.Equal(t, analyzer.ApproveAsOptimal, status(t, path))

	want := fmt.Sprintf("=> exercise: two-fer\n=> output: \n\n%s\n=> writing to %s\n=> DONE\n", res.Output, path)
	assert.Equal(t, want, out.String())
}

func TestRunDry(t *testing.T) {
	dir := submission(t, optimal)
	cfg := config.DefaultConfig()
	cfg.Output.Dry = true
	var out bytes.Buffer

	res, err := Run(context.Background(), twofer.New(), dir, cfg, &out)
	require.NoError(t, err)

	assert.Empty(t, res.Path)
	assert.Contains(t, out.String(), "=> running dry, no writing to file\n=> DONE\n")
	assert.NoFileExists(t, filepath.Join(dir, config.DefaultOutputFile))
}

func TestRunAbsoluteOutput(t *testing.T) {
	dir := submission(t, required)
	cfg := config.DefaultConfig()
	cfg.Output.File = filepath.Join(t.TempDir(), "result.json")

	res, err := Run(context.Background(), twofer.New(), dir, cfg, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, cfg.Output.File, res.Path)
	assert.Equal(t, analyzer.DisapproveWithComment, status(t, cfg.Output.File))
}

func TestRunWriteFailure(t *testing.T) {
	dir := submission(t, optimal)
	cfg := config.DefaultConfig()
	cfg.Output.File = filepath.Join(dir, "missing", "analysis.json")
	var out bytes.Buffer

	res, err := Run(context.Background(), twofer.New(), dir, cfg, &out)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, err, res.Err)
	assert.NotContains(t, out.String(), "=> DONE")
}

func TestRunMissingSource(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Output.Dry = true

	res, err := Run(context.Background(), twofer.New(), dir, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, analyzer.ReferToMentor, res.Output.Status)
	require.Len(t, res.Output.Comments, 1)
	assert.Equal(t, "typescript.general.error_captured_no_source", res.Output.Comments[0].Key)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, twofer.New(), t.TempDir(), config.DefaultConfig(), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestBatchKeepsInputOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	sources := []string{optimal, required, optimal, required, optimal}
	dirs := make([]string, len(sources))
	for i, src := range sources {
		dirs[i] = submission(t, src)
	}

	cfg := config.DefaultConfig()
	cfg.Batch.Concurrency = 2

	results, err := Batch(context.Background(), twofer.New(), dirs, cfg)
	require.NoError(t, err)
	require.Len(t, results, len(dirs))

	for i, res := range results {
		assert.Equal(t, dirs[i], res.Dir)
		want := analyzer.ApproveAsOptimal
		if sources[i] == required {
			want = analyzer.DisapproveWithComment
		}
		assert.Equal(t, want, res.Output.Status, dirs[i])
		assert.Equal(t, want, status(t, res.Path))
	}
}

func TestBatchRecordsWriteFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	good := submission(t, optimal)
	bad := submission(t, optimal)
	// A directory in place of the output file makes the rename fail.
	require.NoError(t, os.Mkdir(filepath.Join(bad, config.DefaultOutputFile), 0755))

	results, err := Batch(context.Background(), twofer.New(), []string{bad, good}, config.DefaultConfig())
	require.NoError(t, err)

	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.FileExists(t, results[1].Path)
}

func TestBatchEmpty(t *testing.T) {
	results, err := Batch(context.Background(), twofer.New(), nil, config.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, results)
}

// gate counts concurrent executions.
type gate struct {
	active, peak atomic.Int32
}

func (g *gate) Exercise() string { return "two-fer" }

func (g *gate) Execute(_ context.Context, b *analyzer.Base, _ *syntax.Tree) error {
	n := g.active.Add(1)
	defer g.active.Add(-1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	b.Approve()
	return nil
}

func TestBatchHonoursConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t)

	dirs := make([]string, 8)
	for i := range dirs {
		dirs[i] = submission(t, optimal)
	}

	cfg := config.DefaultConfig()
	cfg.Output.Dry = true
	cfg.Batch.Concurrency = 3

	g := &gate{}
	results, err := Batch(context.Background(), g, dirs, cfg)
	require.NoError(t, err)
	require.Len(t, results, len(dirs))
	assert.LessOrEqual(t, g.peak.Load(), int32(3))
}

func TestBatchCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Batch(ctx, twofer.New(), []string{t.TempDir(), t.TempDir()}, config.DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsanalyzer/internal/comments"
	"tsanalyzer/internal/input"
	"tsanalyzer/internal/syntax"
)

var (
	plain = comments.Factory("plain <b> & text")("test.plain")
	typed = comments.Factory("Hello ${name}", "name")("test.typed", comments.Actionable)
)

func TestInitialStatus(t *testing.T) {
	b := NewBase()
	assert.Equal(t, ReferToMentor, b.Status())
	assert.False(t, b.Decided())
	assert.False(t, b.HasCommentary())
}

func TestApproveChecksCommentsAtCallTime(t *testing.T) {
	b := NewBase()
	b.Approve()
	assert.Equal(t, ApproveAsOptimal, b.Status())

	// A later comment does not revisit the decision.
	b.Comment(plain.New())
	assert.Equal(t, ApproveAsOptimal, b.Status())

	b.Approve()
	assert.Equal(t, ApproveWithComment, b.Status())

	withComment := NewBase()
	withComment.Approve(plain.New())
	assert.Equal(t, ApproveWithComment, withComment.Status())
}

func TestLastWriteWins(t *testing.T) {
	tests := []struct {
		name  string
		calls func(b *Base)
		want  Status
	}{
		{"approve then disapprove", func(b *Base) { b.Approve(); b.Disapprove() }, DisapproveWithComment},
		{"redirect then disapprove", func(b *Base) { b.Redirect(); b.Disapprove() }, DisapproveWithComment},
		{"disapprove then approve", func(b *Base) { b.Disapprove(); b.Approve() }, ApproveAsOptimal},
		{"disapprove then redirect", func(b *Base) { b.Disapprove(); b.Redirect() }, ReferToMentor},
		{"comment only", func(b *Base) { b.Comment(plain.New()) }, ReferToMentor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBase()
			tt.calls(b)
			assert.Equal(t, tt.want, b.Status())
		})
	}
}

func TestPrimitivesAppendInOrder(t *testing.T) {
	b := NewBase()
	b.Comment(plain.New())
	b.Disapprove(typed.New(comments.Variables{"name": "a"}))
	b.Redirect(typed.New(comments.Variables{"name": "b"}))

	require.Len(t, b.Output().Comments, 3)
	assert.Equal(t, "test.plain", b.Output().Comments[0].Key)
	assert.Equal(t, "Hello a", b.Output().Comments[1].Message)
	assert.Equal(t, "Hello b", b.Output().Comments[2].Message)
	assert.True(t, b.Decided())
}

func TestOutputSerialization(t *testing.T) {
	o := NewOutput()
	o.Add(plain.New())
	o.Add(typed.New(comments.Variables{"name": "Ada"}))
	o.Disapprove()

	want := `{
  "status": "disapprove_with_comment",
  "comments": [
    "plain <b> & text",
    {
      "comment": "Hello ${name}",
      "variables": {
        "name": "Ada"
      }
    }
  ]
}`
	assert.Equal(t, want, o.String())
	assert.Equal(t, o.String(), o.String(), "serialization is idempotent")

	compact, err := o.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, want, string(compact))
}

func TestEmptyOutputSerialization(t *testing.T) {
	assert.Equal(t, "{\n  \"status\": \"refer_to_mentor\",\n  \"comments\": []\n}", NewOutput().String())
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.json")

	o := NewOutput()
	o.Approve()
	require.NoError(t, o.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, o.String(), string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files remain")
}

func TestSaveFailureLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "analysis.json")

	err := NewOutput().Save(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.NoFileExists(t, path)
}

func TestSaveOverDirectoryKeepsDestination(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "analysis.json")
	require.NoError(t, os.Mkdir(dest, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "keep"), []byte("x"), 0644))

	require.Error(t, NewOutput().Save(dest))
	assert.FileExists(t, filepath.Join(dest, "keep"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is removed")
}

type fakeAnalyzer struct {
	execute func(b *Base, tree *syntax.Tree) error
}

func (fakeAnalyzer) Exercise() string { return "fake" }

func (f fakeAnalyzer) Execute(_ context.Context, b *Base, tree *syntax.Tree) error {
	return f.execute(b, tree)
}

func TestRunExecutes(t *testing.T) {
	a := fakeAnalyzer{execute: func(b *Base, tree *syntax.Tree) error {
		require.NotNil(t, tree.Root())
		b.Approve()
		return nil
	}}
	out := Run(context.Background(), a, input.NewInlineInput("export const a = 1"))
	assert.Equal(t, ApproveAsOptimal, out.Status)
	assert.Empty(t, out.Comments)
}

func TestRunContainsParseErrors(t *testing.T) {
	called := false
	a := fakeAnalyzer{execute: func(*Base, *syntax.Tree) error { called = true; return nil }}

	out := Run(context.Background(), a, input.NewInlineInput("export function ( {"))
	assert.False(t, called)
	assert.Equal(t, ReferToMentor, out.Status)
	require.Len(t, out.Comments, 1)
	assert.Equal(t, comments.ParseError.Key(), out.Comments[0].Key)
	assert.Equal(t, comments.Essential, out.Comments[0].Type)
	assert.NotEmpty(t, out.Comments[0].Variables["error"])
	assert.Contains(t, out.Comments[0].Message, out.Comments[0].Variables["error"])
}

func TestRunContainsMissingSource(t *testing.T) {
	a := fakeAnalyzer{execute: func(*Base, *syntax.Tree) error { return nil }}

	out := Run(context.Background(), a, input.NewDirectoryInput(t.TempDir(), "fake", input.DefaultOptions()))
	assert.Equal(t, ReferToMentor, out.Status)
	require.Len(t, out.Comments, 1)
	assert.Equal(t, comments.ErrorCapturedNoSource.Key(), out.Comments[0].Key)
	assert.Equal(t, "fake.ts", out.Comments[0].Variables["expected"])
}

func TestRunContainsFailures(t *testing.T) {
	tests := []struct {
		name    string
		execute func(b *Base, tree *syntax.Tree) error
	}{
		{"error", func(b *Base, _ *syntax.Tree) error {
			b.Approve()
			return errors.New("boom")
		}},
		{"panic", func(b *Base, _ *syntax.Tree) error {
			b.Approve()
			panic("boom")
		}},
		{"template misuse", func(b *Base, _ *syntax.Tree) error {
			b.Approve(typed.New())
			return nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out *Output
			require.NotPanics(t, func() {
				out = Run(context.Background(), fakeAnalyzer{execute: tt.execute}, input.NewInlineInput("const a = 1"))
			})
			assert.Equal(t, ReferToMentor, out.Status)
			require.Len(t, out.Comments, 1)
			assert.Equal(t, comments.RedirectInternalError.Key(), out.Comments[0].Key)
		})
	}
}

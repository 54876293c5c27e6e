// Package analyzer is the verdict engine every exercise analyzer builds on.
//
// An analyzer runs an ordered sequence of checks against one submission.
// Each check may record comments and call one of the decision primitives
// (Approve, Disapprove, Redirect). There is no precedence between them: the
// primitive called last decides the status, and a run that never decides
// ends as refer_to_mentor.
package analyzer

import (
	"context"

	"tsanalyzer/internal/comments"
	"tsanalyzer/internal/syntax"
)

// Analyzer is the check sequence for one exercise. Implementations are
// stateless; everything a run needs lives in the Base and in values local
// to Execute, so one Analyzer may serve concurrent runs.
type Analyzer interface {
	// Exercise returns the exercise slug, e.g. "two-fer".
	Exercise() string
	// Execute runs the checks against a parsed submission.
	Execute(ctx context.Context, b *Base, tree *syntax.Tree) error
}

// Base holds the state of one run and exposes the decision primitives.
type Base struct {
	output  *Output
	decided bool
}

// NewBase returns a fresh, undecided run state.
func NewBase() *Base {
	return &Base{output: NewOutput()}
}

// Comment records c without touching the status.
func (b *Base) Comment(c comments.Comment) {
	b.output.Add(c)
}

// Approve records the optional comments and approves. The status is
// approve_as_optimal only when no comment exists at the time of the call.
func (b *Base) Approve(cs ...comments.Comment) {
	b.add(cs)
	b.output.Approve()
	b.decided = true
}

// Disapprove records the optional comments and disapproves.
func (b *Base) Disapprove(cs ...comments.Comment) {
	b.add(cs)
	b.output.Disapprove()
	b.decided = true
}

// Redirect records the optional comments and refers the submission to a
// mentor.
func (b *Base) Redirect(cs ...comments.Comment) {
	b.add(cs)
	b.output.Redirect()
	b.decided = true
}

// HasCommentary reports whether any comment has been recorded.
func (b *Base) HasCommentary() bool {
	return len(b.output.Comments) > 0
}

// Decided reports whether any decision primitive has been called.
func (b *Base) Decided() bool {
	return b.decided
}

// Status returns the current status.
func (b *Base) Status() Status {
	return b.output.Status
}

// Output returns the accumulated output.
func (b *Base) Output() *Output {
	return b.output
}

func (b *Base) add(cs []comments.Comment) {
	for _, c := range cs {
		b.output.Add(c)
	}
}

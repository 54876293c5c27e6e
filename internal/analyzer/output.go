package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tsanalyzer/internal/comments"
	"tsanalyzer/internal/logging"
)

// Status is the verdict of one analysis.
type Status string

const (
	// ReferToMentor defers the decision to a human. It is the initial status.
	ReferToMentor Status = "refer_to_mentor"
	// ApproveAsOptimal approves without any comment.
	ApproveAsOptimal Status = "approve_as_optimal"
	// ApproveWithComment approves with at least one comment.
	ApproveWithComment Status = "approve_with_comment"
	// DisapproveWithComment rejects the submission.
	DisapproveWithComment Status = "disapprove_with_comment"
)

// Output is the verdict and the comments of one analysis run. Comments are
// append-only.
type Output struct {
	Status   Status
	Comments []comments.Comment
}

// NewOutput returns an output with the initial status.
func NewOutput() *Output {
	return &Output{Status: ReferToMentor}
}

// Approve sets the status to approve_as_optimal when no comment has been
// added yet, else to approve_with_comment.
func (o *Output) Approve() {
	if len(o.Comments) == 0 {
		o.Status = ApproveAsOptimal
	} else {
		o.Status = ApproveWithComment
	}
}

// Disapprove sets the status to disapprove_with_comment.
func (o *Output) Disapprove() { o.Status = DisapproveWithComment }

// Redirect sets the status to refer_to_mentor.
func (o *Output) Redirect() { o.Status = ReferToMentor }

// Add appends a comment.
func (o *Output) Add(c comments.Comment) *Output {
	o.Comments = append(o.Comments, c)
	return o
}

type wireComment struct {
	Comment   string             `json:"comment"`
	Variables comments.Variables `json:"variables"`
}

type wireOutput struct {
	Status   Status `json:"status"`
	Comments []any  `json:"comments"`
}

// MarshalJSON renders a comment without variables as its message and any
// other comment as {"comment": template, "variables": {...}}.
func (o *Output) MarshalJSON() ([]byte, error) {
	return encode(o.wire(), "")
}

func (o *Output) wire() wireOutput {
	w := wireOutput{Status: o.Status, Comments: make([]any, 0, len(o.Comments))}
	for _, c := range o.Comments {
		if len(c.Variables) == 0 {
			w.Comments = append(w.Comments, c.Message)
		} else {
			w.Comments = append(w.Comments, wireComment{Comment: c.Template, Variables: c.Variables})
		}
	}
	return w
}

// String renders the output as JSON indented by two spaces.
func (o *Output) String() string {
	data, err := encode(o.wire(), "  ")
	if err != nil {
		return fmt.Sprintf(`{"status": %q, "comments": []}`, o.Status)
	}
	return string(data)
}

// Save writes the output to path. The file is written to a temporary sibling
// first and renamed into place, so path is either fully written or untouched.
func (o *Output) Save(path string) error {
	log := logging.Get(logging.CategoryOutput)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(o.String()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	log.Info("wrote %s (%s, %d comments)", path, o.Status, len(o.Comments))
	return nil
}

// encode marshals without HTML escaping so that prose containing <, > and &
// is written verbatim.
func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

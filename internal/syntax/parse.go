package syntax

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tsanalyzer/internal/logging"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Tree owns a parsed syntax tree and the source it was parsed from.
type Tree struct {
	raw    *sitter.Tree
	source []byte
	root   *Node
}

// Root returns the program node.
func (t *Tree) Root() *Node {
	if t == nil {
		return nil
	}
	return t.root
}

// Source returns the parsed source text.
func (t *Tree) Source() []byte {
	return t.source
}

// Close releases the tree-sitter tree. Nodes obtained from the tree must not
// be used afterwards.
func (t *Tree) Close() {
	if t != nil && t.raw != nil {
		t.raw.Close()
		t.raw = nil
	}
}

// ParseError is the diagnostic payload for source that does not parse.
type ParseError struct {
	Message string
	Details string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Line, e.Column)
}

// Parse parses TypeScript source. Source with syntax errors yields a
// *ParseError; the tree is closed in that case.
func Parse(ctx context.Context, source []byte) (*Tree, error) {
	start := time.Now()
	log := logging.Get(logging.CategoryParse)
	log.Debug("parsing %d bytes", len(source))

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(typescript.GetLanguage())

	raw, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		log.Error("tree-sitter parse failed: %v", err)
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	tree := &Tree{raw: raw, source: source}
	tree.root = tree.wrap(raw.RootNode())

	if tree.root == nil {
		tree.Close()
		return nil, &ParseError{Message: "Empty syntax tree", Line: 1, Column: 1}
	}

	if tree.root.raw.HasError() {
		perr := tree.diagnose()
		tree.Close()
		log.Info("source rejected: %s", perr.Error())
		return nil, perr
	}

	log.Debug("parsed in %v", time.Since(start))
	return tree, nil
}

// diagnose locates the first ERROR or MISSING node in document order.
func (t *Tree) diagnose() *ParseError {
	var found *sitter.Node
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if found != nil || n == nil {
			return
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return
		}
		if !n.HasError() {
			return
		}
		count := int(n.ChildCount())
		for i := 0; i < count; i++ {
			visit(n.Child(i))
		}
	}
	visit(t.raw.RootNode())

	if found == nil {
		return &ParseError{Message: "Unexpected syntax", Line: 1, Column: 1}
	}

	line := int(found.StartPoint().Row) + 1
	column := int(found.StartPoint().Column) + 1

	message := "Unexpected token"
	if found.IsMissing() {
		message = fmt.Sprintf("'%s' expected", found.Type())
	} else if text := strings.TrimSpace(found.Content(t.source)); text != "" {
		first := strings.Fields(text)[0]
		message = fmt.Sprintf("Unexpected token '%s'", first)
	}

	return &ParseError{
		Message: message,
		Details: excerpt(t.source, line, column),
		Line:    line,
		Column:  column,
	}
}

// excerpt renders the offending line with a caret under the column.
func excerpt(source []byte, line, column int) string {
	lines := strings.Split(string(source), "\n")
	if line < 1 || line > len(lines) {
		return fmt.Sprintf("%d:%d", line, column)
	}
	text := strings.TrimRight(lines[line-1], "\r")
	caret := strings.Repeat(" ", max(column-1, 0)) + "^"
	return fmt.Sprintf("%d:%d\n%s\n%s", line, column, text, caret)
}

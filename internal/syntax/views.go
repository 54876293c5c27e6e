package syntax

import "strconv"

// Binary is a view over binary and logical expressions.
type Binary struct {
	Left     *Node
	Operator string
	Right    *Node
}

// AsBinary returns the binary view, or false for other kinds.
func (n *Node) AsBinary() (Binary, bool) {
	if !n.Is(KindBinaryExpression) && !n.Is(KindLogicalExpression) {
		return Binary{}, false
	}
	return Binary{
		Left:     n.Field("left"),
		Operator: n.Operator(),
		Right:    n.Field("right"),
	}, true
}

// Unary is a view over prefix unary expressions such as !name.
type Unary struct {
	Operator string
	Argument *Node
}

// AsUnary returns the unary view, or false for other kinds.
func (n *Node) AsUnary() (Unary, bool) {
	if !n.Is(KindUnaryExpression) {
		return Unary{}, false
	}
	return Unary{Operator: n.Operator(), Argument: n.Field("argument")}, true
}

// Conditional is a view over if statements and ternary expressions. Test is
// stripped of its parentheses.
type Conditional struct {
	Test       *Node
	Consequent *Node
	Alternate  *Node
}

// AsConditional returns the conditional view, or false for other kinds.
func (n *Node) AsConditional() (Conditional, bool) {
	switch n.Kind() {
	case KindIfStatement:
		c := Conditional{
			Test:       n.Field("condition").Unwrap(),
			Consequent: n.Field("consequence"),
		}
		if alt := n.Field("alternative"); alt != nil {
			// else_clause wraps the statement
			if stmts := alt.Statements(); len(stmts) == 1 {
				c.Alternate = stmts[0]
			} else {
				c.Alternate = alt
			}
		}
		return c, true
	case KindConditionalExpression:
		return Conditional{
			Test:       n.Field("condition").Unwrap(),
			Consequent: n.Field("consequence").Unwrap(),
			Alternate:  n.Field("alternative").Unwrap(),
		}, true
	default:
		return Conditional{}, false
	}
}

// Template is a view over a template literal, split the way an ESTree
// TemplateLiteral is: there is always one more quasi than expressions.
type Template struct {
	Quasis      []string
	Expressions []*Node
}

// Components is the number of quasis plus expressions.
func (t Template) Components() int {
	return len(t.Quasis) + len(t.Expressions)
}

// AsTemplate returns the template view, or false for other kinds.
func (n *Node) AsTemplate() (Template, bool) {
	if !n.Is(KindTemplateLiteral) {
		return Template{}, false
	}

	src := n.tree.source
	cursor := n.raw.StartByte() + 1 // opening backtick
	end := n.raw.EndByte() - 1      // closing backtick

	var t Template
	for _, child := range n.Children() {
		if child.Kind() != KindTemplateSubstitution {
			continue
		}
		t.Quasis = append(t.Quasis, string(src[cursor:child.raw.StartByte()]))
		if exprs := child.Statements(); len(exprs) > 0 {
			t.Expressions = append(t.Expressions, exprs[0])
		}
		cursor = child.raw.EndByte()
	}
	if cursor > end {
		cursor = end
	}
	t.Quasis = append(t.Quasis, string(src[cursor:end]))
	return t, true
}

// StringValue returns the value of a string literal, or of a template literal
// without substitutions.
func (n *Node) StringValue() (string, bool) {
	switch n.Kind() {
	case KindStringLiteral:
		text := n.Text()
		if len(text) < 2 {
			return "", false
		}
		if text[0] == '"' {
			if v, err := strconv.Unquote(text); err == nil {
				return v, true
			}
		}
		return text[1 : len(text)-1], true
	case KindTemplateLiteral:
		t, _ := n.AsTemplate()
		if len(t.Expressions) != 0 {
			return "", false
		}
		return t.Quasis[0], true
	default:
		return "", false
	}
}

// IsLiteral reports whether the node is an ESTree-style literal: a string,
// number, boolean or null.
func (n *Node) IsLiteral() bool {
	switch n.Kind() {
	case KindStringLiteral, KindNumberLiteral, KindNull:
		return true
	}
	return n.Type() == "true" || n.Type() == "false"
}

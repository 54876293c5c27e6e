// Package syntax adapts the tree-sitter TypeScript grammar into a small,
// read-only node model and provides the depth-first query primitive that the
// extraction library and the exercise analyzers are built on.
package syntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Kind is the closed set of node categories the analyzers inspect.
// Anything else classifies as KindUnknown.
type Kind int

const (
	KindUnknown Kind = iota
	KindProgram
	KindComment
	KindExportStatement
	KindExportClause
	KindExportSpecifier
	KindClassDeclaration
	KindClassBody
	KindFunctionDeclaration
	KindFunctionExpression
	KindArrowFunction
	KindMethodDefinition
	KindFieldDefinition
	KindVariableDeclaration
	KindVariableDeclarator
	KindFormalParameters
	KindRequiredParameter
	KindOptionalParameter
	KindRestPattern
	KindObjectPattern
	KindArrayPattern
	KindTypeAnnotation
	KindStatementBlock
	KindReturnStatement
	KindExpressionStatement
	KindIfStatement
	KindConditionalExpression
	KindBinaryExpression
	KindLogicalExpression
	KindUnaryExpression
	KindParenthesizedExpression
	KindCallExpression
	KindMemberExpression
	KindTemplateLiteral
	KindTemplateSubstitution
	KindStringLiteral
	KindNumberLiteral
	KindIdentifier
	KindPropertyIdentifier
	KindTypeIdentifier
	KindUndefined
	KindNull
)

var kindNames = map[Kind]string{
	KindUnknown:                 "Unknown",
	KindProgram:                 "Program",
	KindComment:                 "Comment",
	KindExportStatement:         "ExportStatement",
	KindExportClause:            "ExportClause",
	KindExportSpecifier:         "ExportSpecifier",
	KindClassDeclaration:        "ClassDeclaration",
	KindClassBody:               "ClassBody",
	KindFunctionDeclaration:     "FunctionDeclaration",
	KindFunctionExpression:      "FunctionExpression",
	KindArrowFunction:           "ArrowFunction",
	KindMethodDefinition:        "MethodDefinition",
	KindFieldDefinition:         "FieldDefinition",
	KindVariableDeclaration:     "VariableDeclaration",
	KindVariableDeclarator:      "VariableDeclarator",
	KindFormalParameters:        "FormalParameters",
	KindRequiredParameter:       "RequiredParameter",
	KindOptionalParameter:       "OptionalParameter",
	KindRestPattern:             "RestPattern",
	KindObjectPattern:           "ObjectPattern",
	KindArrayPattern:            "ArrayPattern",
	KindTypeAnnotation:          "TypeAnnotation",
	KindStatementBlock:          "StatementBlock",
	KindReturnStatement:         "ReturnStatement",
	KindExpressionStatement:     "ExpressionStatement",
	KindIfStatement:             "IfStatement",
	KindConditionalExpression:   "ConditionalExpression",
	KindBinaryExpression:        "BinaryExpression",
	KindLogicalExpression:       "LogicalExpression",
	KindUnaryExpression:         "UnaryExpression",
	KindParenthesizedExpression: "ParenthesizedExpression",
	KindCallExpression:          "CallExpression",
	KindMemberExpression:        "MemberExpression",
	KindTemplateLiteral:         "TemplateLiteral",
	KindTemplateSubstitution:    "TemplateSubstitution",
	KindStringLiteral:           "StringLiteral",
	KindNumberLiteral:           "NumberLiteral",
	KindIdentifier:              "Identifier",
	KindPropertyIdentifier:      "PropertyIdentifier",
	KindTypeIdentifier:          "TypeIdentifier",
	KindUndefined:               "Undefined",
	KindNull:                    "Null",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// grammarKinds maps tree-sitter node types onto Kind. Binary expressions are
// split by operator in Kind.
var grammarKinds = map[string]Kind{
	"program":                  KindProgram,
	"comment":                  KindComment,
	"export_statement":         KindExportStatement,
	"export_clause":            KindExportClause,
	"export_specifier":         KindExportSpecifier,
	"class_declaration":        KindClassDeclaration,
	"class_body":               KindClassBody,
	"function_declaration":     KindFunctionDeclaration,
	"function":                 KindFunctionExpression,
	"function_expression":      KindFunctionExpression,
	"arrow_function":           KindArrowFunction,
	"method_definition":        KindMethodDefinition,
	"public_field_definition":  KindFieldDefinition,
	"lexical_declaration":      KindVariableDeclaration,
	"variable_declaration":     KindVariableDeclaration,
	"variable_declarator":      KindVariableDeclarator,
	"formal_parameters":        KindFormalParameters,
	"required_parameter":       KindRequiredParameter,
	"optional_parameter":       KindOptionalParameter,
	"rest_pattern":             KindRestPattern,
	"object_pattern":           KindObjectPattern,
	"array_pattern":            KindArrayPattern,
	"type_annotation":          KindTypeAnnotation,
	"statement_block":          KindStatementBlock,
	"return_statement":         KindReturnStatement,
	"expression_statement":     KindExpressionStatement,
	"if_statement":             KindIfStatement,
	"ternary_expression":       KindConditionalExpression,
	"unary_expression":         KindUnaryExpression,
	"parenthesized_expression": KindParenthesizedExpression,
	"call_expression":          KindCallExpression,
	"member_expression":        KindMemberExpression,
	"template_string":          KindTemplateLiteral,
	"template_substitution":    KindTemplateSubstitution,
	"string":                   KindStringLiteral,
	"number":                   KindNumberLiteral,
	"identifier":               KindIdentifier,
	"property_identifier":      KindPropertyIdentifier,
	"type_identifier":          KindTypeIdentifier,
	"undefined":                KindUndefined,
	"null":                     KindNull,
}

var logicalOperators = map[string]bool{"||": true, "&&": true, "??": true}

// Node is a read-only view over one tree-sitter node. Nodes stay valid until
// the owning Tree is closed.
type Node struct {
	raw  *sitter.Node
	tree *Tree
}

func (t *Tree) wrap(raw *sitter.Node) *Node {
	if raw == nil || raw.IsNull() {
		return nil
	}
	return &Node{raw: raw, tree: t}
}

// Kind classifies the node.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindUnknown
	}
	typ := n.raw.Type()
	if typ == "binary_expression" {
		if logicalOperators[n.Operator()] {
			return KindLogicalExpression
		}
		return KindBinaryExpression
	}
	if typ == "identifier" && n.Text() == "undefined" {
		return KindUndefined
	}
	return grammarKinds[typ]
}

// Is reports whether the node is non-nil and of the given kind.
func (n *Node) Is(kind Kind) bool {
	return n != nil && n.Kind() == kind
}

// Type returns the raw grammar type, e.g. "required_parameter".
func (n *Node) Type() string {
	if n == nil {
		return ""
	}
	return n.raw.Type()
}

// Text returns the source text covered by the node.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.raw.Content(n.tree.source)
}

// StartLine is the 1-based line the node starts on.
func (n *Node) StartLine() int { return int(n.raw.StartPoint().Row) + 1 }

// EndLine is the 1-based line the node ends on.
func (n *Node) EndLine() int { return int(n.raw.EndPoint().Row) + 1 }

// StartColumn is the 1-based column the node starts on.
func (n *Node) StartColumn() int { return int(n.raw.StartPoint().Column) + 1 }

// Field returns the child stored under a grammar field name, or nil.
func (n *Node) Field(name string) *Node {
	if n == nil {
		return nil
	}
	return n.tree.wrap(n.raw.ChildByFieldName(name))
}

// Children returns the named children in source order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	count := int(n.raw.NamedChildCount())
	children := make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		if child := n.tree.wrap(n.raw.NamedChild(i)); child != nil {
			children = append(children, child)
		}
	}
	return children
}

// Statements returns the named children that are not comments.
func (n *Node) Statements() []*Node {
	var out []*Node
	for _, child := range n.Children() {
		if child.Kind() != KindComment {
			out = append(out, child)
		}
	}
	return out
}

// HasToken reports whether an anonymous child token (e.g. "static",
// "default", "?") is present directly under the node.
func (n *Node) HasToken(token string) bool {
	if n == nil {
		return false
	}
	count := int(n.raw.ChildCount())
	for i := 0; i < count; i++ {
		child := n.raw.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == token {
			return true
		}
	}
	return false
}

// Operator returns the operator token of binary and unary expressions.
func (n *Node) Operator() string {
	if n == nil {
		return ""
	}
	if op := n.raw.ChildByFieldName("operator"); op != nil {
		return op.Type()
	}
	return ""
}

// Contains reports whether other lies within n's byte range.
func (n *Node) Contains(other *Node) bool {
	if n == nil || other == nil {
		return false
	}
	return n.raw.StartByte() <= other.raw.StartByte() && other.raw.EndByte() <= n.raw.EndByte()
}

// TextBefore returns n's source text that precedes child, e.g. the modifiers
// in front of a class member's name.
func (n *Node) TextBefore(child *Node) string {
	if !n.Contains(child) {
		return ""
	}
	return string(n.tree.source[n.raw.StartByte():child.raw.StartByte()])
}

// Unwrap strips any number of enclosing parentheses.
func (n *Node) Unwrap() *Node {
	for n.Is(KindParenthesizedExpression) {
		children := n.Statements()
		if len(children) != 1 {
			return n
		}
		n = children[0]
	}
	return n
}

// Name returns the text of the node's "name" field, or "" when absent.
func (n *Node) Name() string {
	return n.Field("name").Text()
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	text := n.Text()
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i] + "…"
	}
	return n.Kind().String() + "(" + text + ")"
}

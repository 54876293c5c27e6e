package extract

import (
	"strings"

	"tsanalyzer/internal/logging"
	"tsanalyzer/internal/syntax"
)

// MainMethod is the callable entity an exercise analyzer reasons about.
type MainMethod struct {
	// Name is the name the entity is bound to.
	Name string
	// Node is the function-like node: a function declaration, arrow function,
	// function expression or method definition.
	Node *syntax.Node
}

// Parameters returns the declared parameters in order.
func (m *MainMethod) Parameters() []syntax.Parameter {
	if m == nil {
		return nil
	}
	// name => ...
	if single := m.Node.Field("parameter"); single != nil {
		return []syntax.Parameter{syntax.ClassifyParameter(single)}
	}
	var params []syntax.Parameter
	for _, p := range m.Node.Field("parameters").Statements() {
		params = append(params, syntax.ClassifyParameter(p))
	}
	return params
}

// Body returns the function body: a statement block, or an expression for
// concise arrow functions.
func (m *MainMethod) Body() *syntax.Node {
	if m == nil {
		return nil
	}
	return m.Node.Field("body")
}

// ReturnType returns the return type annotation, or nil.
func (m *MainMethod) ReturnType() *syntax.Node {
	if m == nil {
		return nil
	}
	return m.Node.Field("return_type")
}

// Signature renders the call signature without the return type, e.g.
// twoFer(name: string = 'you').
func (m *MainMethod) Signature() string {
	if m == nil {
		return ""
	}
	if single := m.Node.Field("parameter"); single != nil {
		return m.Name + "(" + single.Text() + ")"
	}
	params := m.Node.Field("parameters")
	if params == nil {
		return m.Name + "()"
	}
	return m.Name + params.Text()
}

// FindMainMethod locates the callable bound to name. Recognized shapes, first in
// walk order wins:
//
//	function name() {}
//	const name = () => {}
//	class C { static name() {} }
//	class C { static name = () => {} }      (or = function () {})
func FindMainMethod(root *syntax.Node, name string) *MainMethod {
	var result *MainMethod

	syntax.Walk(root, syntax.VisitorFunc(func(n *syntax.Node) syntax.Action {
		switch n.Kind() {
		case syntax.KindFunctionDeclaration:
			if n.Name() == name {
				result = &MainMethod{Name: name, Node: n}
				return syntax.Abort
			}

		case syntax.KindVariableDeclaration:
			syntax.Walk(n, syntax.VisitorFunc(func(inner *syntax.Node) syntax.Action {
				if inner.Kind() != syntax.KindVariableDeclarator {
					return syntax.Continue
				}
				id := inner.Field("name")
				value := inner.Field("value")
				if id.Is(syntax.KindIdentifier) && id.Text() == name && value.Is(syntax.KindArrowFunction) {
					result = &MainMethod{Name: name, Node: value}
					return syntax.Abort
				}
				return syntax.Continue
			}))
			if result != nil {
				return syntax.Abort
			}
			return syntax.Skip

		case syntax.KindMethodDefinition:
			if isStatic(n) && n.Field("name").Is(syntax.KindPropertyIdentifier) && n.Name() == name {
				result = &MainMethod{Name: name, Node: n}
				return syntax.Abort
			}
			return syntax.Skip

		case syntax.KindFieldDefinition:
			if isStatic(n) && n.Field("name").Is(syntax.KindPropertyIdentifier) && n.Name() == name {
				switch value := n.Field("value"); value.Kind() {
				case syntax.KindArrowFunction, syntax.KindFunctionExpression:
					result = &MainMethod{Name: name, Node: value}
					return syntax.Abort
				}
			}
			return syntax.Skip
		}
		return syntax.Continue
	}))

	if result == nil {
		logging.ExtractDebug("main method %q not found", name)
	} else {
		logging.ExtractDebug("main method %q found as %s on line %d", name, result.Node.Kind(), result.Node.StartLine())
	}
	return result
}

// isStatic reports whether a class member carries the static modifier.
func isStatic(member *syntax.Node) bool {
	if member.HasToken("static") {
		return true
	}
	for _, word := range strings.Fields(member.TextBefore(member.Field("name"))) {
		if word == "static" {
			return true
		}
	}
	return false
}

// Package extract holds small, composable queries over a syntax tree.
// Every query is pure: it never mutates the tree and returns the same result
// for the same input.
package extract

import "tsanalyzer/internal/syntax"

// First returns the first node of the given kind in walk order, or nil.
func First(root *syntax.Node, kind syntax.Kind) *syntax.Node {
	var found *syntax.Node
	syntax.Walk(root, syntax.VisitorFunc(func(n *syntax.Node) syntax.Action {
		if n.Kind() == kind {
			found = n
			return syntax.Abort
		}
		return syntax.Continue
	}))
	return found
}

// All returns every node of the given kind in walk order. Nested function
// bodies are included.
func All(root *syntax.Node, kind syntax.Kind) []*syntax.Node {
	var found []*syntax.Node
	syntax.Walk(root, syntax.VisitorFunc(func(n *syntax.Node) syntax.Action {
		if n.Kind() == kind {
			found = append(found, n)
		}
		return syntax.Continue
	}))
	return found
}

// NamedFunction returns the function declaration bound to name, or nil.
func NamedFunction(name string, root *syntax.Node) *syntax.Node {
	for _, fn := range All(root, syntax.KindFunctionDeclaration) {
		if fn.Name() == name {
			return fn
		}
	}
	return nil
}

// NamedClass returns the class declaration bound to name, or nil.
func NamedClass(name string, root *syntax.Node) *syntax.Node {
	for _, class := range All(root, syntax.KindClassDeclaration) {
		if class.Name() == name {
			return class
		}
	}
	return nil
}

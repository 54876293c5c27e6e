package extract

import "tsanalyzer/internal/syntax"

// Export is the module's default export.
type Export struct {
	// Statement is the export statement itself.
	Statement *syntax.Node
	// Name is the exported binding, when it has one.
	Name string
	// Declaration is the exported class or function declaration. For
	// `export default Name` it is resolved within the same tree; nil when
	// the export is an expression or the name does not resolve.
	Declaration *syntax.Node
}

// DefaultExport locates the default export, or returns nil when the module
// has none. Recognized forms:
//
//	export default class Name {}
//	export default function name() {}
//	export default Name
//	export { Name as default }
func DefaultExport(root *syntax.Node) *Export {
	var result *Export

	syntax.Walk(root, syntax.VisitorFunc(func(n *syntax.Node) syntax.Action {
		if n.Kind() != syntax.KindExportStatement {
			return syntax.Continue
		}

		if n.HasToken("default") {
			if decl := n.Field("declaration"); decl != nil {
				result = &Export{Statement: n, Name: decl.Name(), Declaration: decl}
				return syntax.Abort
			}
			value := n.Field("value")
			result = &Export{Statement: n}
			if value.Is(syntax.KindIdentifier) {
				result.Name = value.Text()
			} else if value != nil && (value.Type() == "class" || value.Kind() == syntax.KindFunctionExpression) {
				// export default class { ... } / export default function () {}
				result.Declaration = value
				result.Name = value.Name()
			}
			return syntax.Abort
		}

		for _, spec := range All(n, syntax.KindExportSpecifier) {
			if spec.Field("alias").Text() == "default" {
				result = &Export{Statement: n, Name: spec.Field("name").Text()}
				return syntax.Abort
			}
		}
		return syntax.Skip
	}))

	if result != nil && result.Declaration == nil && result.Name != "" {
		result.Declaration = resolve(result.Name, root)
	}
	return result
}

func resolve(name string, root *syntax.Node) *syntax.Node {
	if class := NamedClass(name, root); class != nil {
		return class
	}
	return NamedFunction(name, root)
}

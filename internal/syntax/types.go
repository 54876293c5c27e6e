package syntax

import "strings"

// TypeName renders a type annotation the way review comments quote it.
// Types that cannot be named precisely render as "unknown"; a nil annotation
// renders as "any".
func TypeName(annotation *Node) string {
	if annotation == nil {
		return "any"
	}
	return annotate(typeOf(annotation))
}

func annotate(t *Node) string {
	if t == nil {
		return "unknown"
	}
	switch t.Type() {
	case "predefined_type":
		switch name := t.Text(); name {
		case "any", "boolean", "never", "number", "string", "undefined", "unknown", "void", "symbol", "object", "bigint":
			return name
		}
		return "unknown"
	case "literal_type":
		switch text := t.Text(); text {
		case "null", "undefined":
			return text
		}
		return "unknown"
	case "union_type":
		parts := make([]string, 0, 2)
		for _, child := range t.Children() {
			parts = append(parts, annotate(child))
		}
		return strings.Join(parts, " | ")
	case "parenthesized_type":
		children := t.Children()
		if len(children) == 1 {
			return annotate(children[0])
		}
	}
	return "unknown"
}

// TypeReference inspects an annotation naming a declared type rather than a
// primitive. ok is false when the annotation is not a type reference at all;
// name is empty when it is a reference that has no simple name (e.g.
// Intl.Collator).
func TypeReference(annotation *Node) (name string, ok bool) {
	t := typeOf(annotation)
	switch t.Type() {
	case "type_identifier":
		return t.Text(), true
	case "generic_type":
		if n := t.Field("name"); n.Type() == "type_identifier" {
			return n.Text(), true
		}
		return "", true
	case "nested_type_identifier":
		return "", true
	}
	return "", false
}

// typeOf unwraps a type_annotation node to the annotated type.
func typeOf(annotation *Node) *Node {
	if annotation == nil {
		return nil
	}
	if annotation.Kind() != KindTypeAnnotation {
		return annotation
	}
	children := annotation.Children()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

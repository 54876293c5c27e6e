package syntax

// ParamShape is the declaration shape of a function parameter.
type ParamShape int

const (
	ShapeUnrecognized ParamShape = iota
	// ShapeIdentifier: name, name?: T
	ShapeIdentifier
	// ShapeRest: ...names: T[]
	ShapeRest
	// ShapeObjectPattern: { a, b }: T
	ShapeObjectPattern
	// ShapeArrayPattern: [a, b]: T
	ShapeArrayPattern
	// ShapeAssignment: name: T = value
	ShapeAssignment
	// ShapeParameterProperty: public name: T (constructor parameter property)
	ShapeParameterProperty
)

// Parameter describes one declared parameter.
type Parameter struct {
	Node  *Node
	Shape ParamShape
	// Name is the bound identifier, if the pattern has a simple one.
	Name string
	// Optional records an explicit ? marker.
	Optional bool
	// Default is the default-value expression of ShapeAssignment.
	Default *Node
	// Type is the type_annotation node, or nil.
	Type *Node
	// Inner is the wrapped parameter of ShapeParameterProperty.
	Inner *Parameter
}

// ClassifyParameter derives the Parameter for a parameter node.
func ClassifyParameter(n *Node) Parameter {
	p := Parameter{Node: n}
	if n == nil {
		return p
	}

	switch n.Kind() {
	case KindIdentifier:
		// arrow function with a bare parameter: name => ...
		p.Shape = ShapeIdentifier
		p.Name = n.Text()
		return p
	case KindRequiredParameter, KindOptionalParameter:
	default:
		return p
	}

	p.Optional = n.Kind() == KindOptionalParameter
	p.Type = n.Field("type")
	p.Default = n.Field("value")

	pattern := n.Field("pattern")
	switch pattern.Kind() {
	case KindIdentifier:
		p.Shape = ShapeIdentifier
		p.Name = pattern.Text()
	case KindRestPattern:
		p.Shape = ShapeRest
		for _, child := range pattern.Children() {
			if child.Is(KindIdentifier) {
				p.Name = child.Text()
				break
			}
		}
	case KindObjectPattern:
		p.Shape = ShapeObjectPattern
	case KindArrayPattern:
		p.Shape = ShapeArrayPattern
	default:
		p.Shape = ShapeUnrecognized
	}

	if p.Default != nil && p.Shape != ShapeUnrecognized {
		p.Shape = ShapeAssignment
	}

	if hasAccessibility(n) {
		inner := p
		p = Parameter{
			Node:  n,
			Shape: ShapeParameterProperty,
			Name:  inner.Name,
			Type:  inner.Type,
			Inner: &inner,
		}
	}
	return p
}

func hasAccessibility(n *Node) bool {
	for _, child := range n.Children() {
		if child.Type() == "accessibility_modifier" {
			return true
		}
	}
	return false
}

// IsOptional reports whether the parameter carries an explicit optionality
// marker. Parameters of an unrecognized shape are required.
func IsOptional(p Parameter) bool {
	switch p.Shape {
	case ShapeIdentifier, ShapeArrayPattern, ShapeObjectPattern, ShapeRest:
		return p.Optional
	case ShapeAssignment:
		return p.Optional
	case ShapeParameterProperty:
		if p.Inner == nil {
			return false
		}
		return IsOptional(*p.Inner)
	case ShapeUnrecognized:
		return false
	}
	return false
}

// IsRequired is the negation of IsOptional.
func IsRequired(p Parameter) bool {
	return !IsOptional(p)
}

// HasDefault reports whether the parameter, or the parameter it wraps, has a
// default value.
func (p Parameter) HasDefault() bool {
	if p.Shape == ShapeParameterProperty && p.Inner != nil {
		return p.Inner.HasDefault()
	}
	return p.Shape == ShapeAssignment
}

// Package comments implements parameterized review comments. A template is
// declared once with its placeholders, bound to a stable key and a
// classification, and then instantiated with concrete variables for each
// submission it applies to.
package comments

import (
	"encoding/json"
	"fmt"
)

// Type classifies how a comment bears on the verdict.
type Type int

const (
	// Informative comments are optional reading.
	Informative Type = iota
	// Essential comments describe something that must change.
	Essential
	// Actionable comments suggest a concrete improvement.
	Actionable
	// Celebratory comments praise the submission.
	Celebratory
)

var typeNames = map[Type]string{
	Essential:   "essential",
	Actionable:  "actionable",
	Informative: "informative",
	Celebratory: "celebratory",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// MarshalJSON encodes the type as its lowercase name.
func (t Type) MarshalJSON() ([]byte, error) {
	name, ok := typeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown comment type %d", int(t))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a lowercase type name.
func (t *Type) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for typ, n := range typeNames {
		if n == name {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown comment type %q", name)
}

// Variables binds placeholder names to values.
type Variables map[string]string

// Comment is one instantiated piece of review feedback. Comments are values
// and are never modified after creation.
type Comment struct {
	// Key identifies the comment across implementations, e.g.
	// "typescript.general.no_method". Renderers use it to find localized copy.
	Key string `json:"key"`
	// Type classifies the comment.
	Type Type `json:"type"`
	// Template is the declared template text with ${name} placeholders.
	Template string `json:"template"`
	// Variables holds the values bound at instantiation. Never nil.
	Variables Variables `json:"variables"`
	// Message is Template with every declared placeholder substituted.
	Message string `json:"message"`
}

func (c Comment) String() string {
	return c.Key + " (" + c.Type.String() + ")"
}

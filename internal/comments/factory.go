package comments

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var placeholderName = regexp.MustCompile(`^[A-Za-z0-9._]+$`)

// TemplateError reports variables that do not match a template's declared
// placeholders. It always indicates a defect in the rule that instantiated
// the comment, never in the submission.
type TemplateError struct {
	Key     string
	Missing []string
	Extra   []string
}

func (e *TemplateError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing variables "+strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, "unexpected variables "+strings.Join(e.Extra, ", "))
	}
	return fmt.Sprintf("comment %s: %s", e.Key, strings.Join(parts, "; "))
}

// Binder is the first stage of a comment declaration: a template bound to
// its placeholders, waiting for a key and a classification.
type Binder func(key string, typ ...Type) *Builder

// Factory declares a template. Every name in placeholders must match
// [A-Za-z0-9._]+ and occur at least once in the template as ${name};
// anything else panics.
// Surrounding whitespace is trimmed from the template.
//
//	var NoMethod = comments.Factory("No method called `${method.name}`.", "method.name")(
//		"typescript.general.no_method", comments.Essential)
func Factory(template string, placeholders ...string) Binder {
	template = strings.TrimSpace(template)

	seen := make(map[string]bool, len(placeholders))
	for _, name := range placeholders {
		if !placeholderName.MatchString(name) {
			panic(fmt.Sprintf("comments: invalid placeholder name %q", name))
		}
		if seen[name] {
			panic(fmt.Sprintf("comments: duplicate placeholder %q", name))
		}
		if !strings.Contains(template, token(name)) {
			panic(fmt.Sprintf("comments: placeholder %q does not occur in template %q", name, template))
		}
		seen[name] = true
	}
	declared := append([]string(nil), placeholders...)

	return func(key string, typ ...Type) *Builder {
		b := &Builder{key: key, typ: Informative, template: template, placeholders: declared}
		if len(typ) > 0 {
			b.typ = typ[0]
		}
		return b
	}
}

// Builder instantiates comments from one declared template.
type Builder struct {
	key          string
	typ          Type
	template     string
	placeholders []string
}

// Key returns the stable key comments from this builder carry.
func (b *Builder) Key() string { return b.key }

// Type returns the classification comments from this builder carry.
func (b *Builder) Type() Type { return b.typ }

// Placeholders returns the declared placeholder names in declaration order.
func (b *Builder) Placeholders() []string {
	return append([]string(nil), b.placeholders...)
}

// Build instantiates a comment. vars must bind exactly the declared
// placeholders; a nil map is valid for templates without placeholders.
func (b *Builder) Build(vars Variables) (Comment, error) {
	if err := b.check(vars); err != nil {
		return Comment{}, err
	}

	bound := make(Variables, len(vars))
	pairs := make([]string, 0, 2*len(b.placeholders))
	for _, name := range b.placeholders {
		bound[name] = vars[name]
		pairs = append(pairs, token(name), vars[name])
	}
	message := strings.NewReplacer(pairs...).Replace(b.template)

	return Comment{
		Key:       b.key,
		Type:      b.typ,
		Template:  b.template,
		Variables: bound,
		Message:   message,
	}, nil
}

// New is Build for rule code: a variable mismatch panics with the
// *TemplateError.
func (b *Builder) New(vars ...Variables) Comment {
	var v Variables
	if len(vars) > 0 {
		v = vars[0]
	}
	c, err := b.Build(v)
	if err != nil {
		panic(err)
	}
	return c
}

func (b *Builder) check(vars Variables) error {
	var missing, extra []string
	declared := make(map[string]bool, len(b.placeholders))
	for _, name := range b.placeholders {
		declared[name] = true
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range vars {
		if !declared[name] {
			extra = append(extra, name)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	return &TemplateError{Key: b.key, Missing: missing, Extra: extra}
}

func token(name string) string {
	return "${" + name + "}"
}

// Package twofer analyzes solutions to the two-fer exercise:
//
//	export default class TwoFer {
//	  static twoFer(name: string = 'you'): string {
//	    return `One for ${name}, one for me.`
//	  }
//	}
package twofer

import (
	"context"
	"strings"

	"tsanalyzer/internal/analyzer"
	"tsanalyzer/internal/comments"
	"tsanalyzer/internal/extract"
	"tsanalyzer/internal/logging"
	"tsanalyzer/internal/syntax"
)

const (
	// Slug is the exercise identifier.
	Slug = "two-fer"

	mainMethodName = "twoFer"
	sentinel       = "you"
)

// Analyzer is the two-fer check sequence.
type Analyzer struct{}

// New returns the two-fer analyzer.
func New() *Analyzer { return &Analyzer{} }

// Exercise implements analyzer.Analyzer.
func (*Analyzer) Exercise() string { return Slug }

// Execute runs the checks in order. Later checks may override the status set
// by earlier ones; the order below is the policy.
func (*Analyzer) Execute(ctx context.Context, b *analyzer.Base, tree *syntax.Tree) error {
	s := newSolution(tree)
	log := logging.Get(logging.CategoryAnalyzer).With("exercise", Slug)

	// 1. Nothing structural may stop the tests from passing. Without the
	// method there is nothing left to inspect.
	checkStructure(b, s)
	if s.method() == nil {
		return nil
	}

	// 2. The signature must accept an optional name.
	checkSignature(b, s)

	// 3. The canonical solution is approved without comment.
	if !b.Decided() {
		checkForOptimalSolutions(b, s, log)
	}

	// 4. Correct one-liners with a different idiom are approved with a
	// comment introducing the idiomatic form.
	if !b.Decided() {
		checkForApprovableSolutions(b, s)
	}

	// 5. A conditional supplying the default overrides any approval above.
	checkForConditionalOnDefaultArgument(b, s)

	// Whatever is still undecided is referred to a mentor.
	return nil
}

func checkStructure(b *analyzer.Base, s *solution) {
	if s.method() == nil {
		b.Comment(comments.NoMethod.New(comments.Variables{"method.name": mainMethodName}))
	}
	if s.export() == nil {
		b.Comment(comments.NoDefaultExport.New())
	}
	if b.HasCommentary() {
		b.Disapprove()
	}
}

func checkSignature(b *analyzer.Base, s *solution) {
	m := s.method()

	first, ok := s.firstParameter()
	if !ok {
		b.Disapprove(comments.NoParameter.New(comments.Variables{"function.name": m.Name}))
		return
	}

	// The tests call twoFer() without a value. A body that falls back on
	// 'you' itself is told about default values first.
	if syntax.IsRequired(first) && !first.HasDefault() && first.Shape != syntax.ShapeRest {
		if expression, ok := s.falsyFallback(); ok {
			b.Comment(OptimiseExplicitDefaultValue.New(comments.Variables{
				"parameter":                  parameterName(first),
				"maybe_undefined_expression": expression,
			}))
		}
		b.Disapprove(comments.UnexpectedRequiredParameter.New(comments.Variables{
			"parameter.name": parameterName(first),
			"parameter.type": syntax.TypeName(first.Type),
		}))
	}

	if first.Shape == syntax.ShapeRest {
		name := first.Name
		if name == "" {
			name = "args"
		}
		b.Disapprove(comments.UnexpectedSplatArgs.New(comments.Variables{
			"splat_arg.name": name,
			"parameter.type": elementTypeName(first.Type),
		}))
	}

	if first.Shape == syntax.ShapeIdentifier || first.Shape == syntax.ShapeAssignment {
		if boxed, isReference := syntax.TypeReference(first.Type); isReference {
			if boxed == "" {
				// Qualified or computed reference: leave it to a mentor.
				b.Redirect()
			} else {
				b.Disapprove(comments.UnexpectedBoxedType.New(comments.Variables{
					"boxed.type":   boxed,
					"literal.type": strings.ToLower(boxed[:1]) + boxed[1:],
				}))
			}
		}
	}

	if syntax.TypeName(m.ReturnType()) != "string" {
		b.Comment(comments.PreferExplicitReturnType.New(comments.Variables{
			"signature": m.Signature(),
		}))
	}
}

func checkForOptimalSolutions(b *analyzer.Base, s *solution, log *logging.Logger) {
	if !s.isDefaultArgumentOptimal() || !s.isOneLineSolution() || !s.isUsingTemplatedString() {
		log.Debug("~> solution is not optimal")
		return
	}

	if !s.hasThreeComponentsInTemplateLiteral() {
		b.Redirect(RedirectIncorrectStringTemplate.New())
		return
	}
	b.Approve()
}

func checkForApprovableSolutions(b *analyzer.Base, s *solution) {
	if !s.isOneLineSolution() {
		return
	}

	checkForSolutionWithFalsyDefault(b, s)

	if !s.isDefaultArgumentOptimal() {
		if b.HasCommentary() {
			b.Disapprove()
		}
		return
	}

	checkForSolutionWithoutStringTemplate(b, s)

	if b.HasCommentary() {
		b.Approve()
	} else {
		// A passing one-liner in a shape nobody planned for.
		b.Redirect()
	}
}

func checkForSolutionWithFalsyDefault(b *analyzer.Base, s *solution) {
	expression, ok := s.falsyFallback()
	if !ok {
		return
	}
	parameter := "name"
	if p, ok := s.firstParameter(); ok && p.Shape == syntax.ShapeAssignment && p.Name != "" {
		parameter = p.Name
	}
	b.Comment(OptimiseExplicitDefaultValue.New(comments.Variables{
		"parameter":                  parameter,
		"maybe_undefined_expression": expression,
	}))
}

// "One for " + name + ", one for me."
func checkForSolutionWithoutStringTemplate(b *analyzer.Base, s *solution) {
	expression := extract.First(s.method().Node, syntax.KindBinaryExpression)
	bin, ok := expression.AsBinary()
	if !ok || bin.Operator != "+" {
		return
	}
	if bin.Left.IsLiteral() || bin.Right.IsLiteral() {
		b.Comment(comments.PreferTemplatedStrings.New())
	}
}

func checkForConditionalOnDefaultArgument(b *analyzer.Base, s *solution) {
	node := s.method().Node
	ifStatements := extract.All(node, syntax.KindIfStatement)
	ternaries := extract.All(node, syntax.KindConditionalExpression)

	// None, or more than one: not a shape accounted for.
	if len(ifStatements)+len(ternaries) != 1 {
		return
	}

	if len(ifStatements) == 1 {
		c, _ := ifStatements[0].AsConditional()

		// if (!name)
		if u, ok := c.Test.AsUnary(); ok && u.Operator == "!" && u.Argument.Is(syntax.KindIdentifier) {
			b.Disapprove(OptimiseDefaultValue.New())
		}

		bin, ok := c.Test.AsBinary()
		if !ok {
			return
		}

		// if (name === undefined), if (undefined === name)
		if bin.Operator == "===" && isIdentifierLike(bin.Left) && isIdentifierLike(bin.Right) &&
			(bin.Left.Text() == "undefined" || bin.Right.Text() == "undefined") {
			b.Disapprove(OptimiseDefaultValue.New())
		}

		// if (name == null), if ('' == name), ...
		if bin.Operator == "==" && (bin.Left.Is(syntax.KindIdentifier) || bin.Right.Is(syntax.KindIdentifier)) {
			b.Comment(comments.PreferStrictEquality.New())
			b.Disapprove(OptimiseDefaultValue.New())
		}
		return
	}

	// name ? name : 'you', name ? 'x' : name
	c, _ := ternaries[0].AsConditional()
	if (c.Consequent.IsLiteral() && c.Alternate.Is(syntax.KindIdentifier)) ||
		(c.Consequent.Is(syntax.KindIdentifier) && c.Alternate.IsLiteral()) {
		b.Disapprove(OptimiseDefaultValue.New())
	}
}

func isIdentifierLike(n *syntax.Node) bool {
	return n.Is(syntax.KindIdentifier) || n.Is(syntax.KindUndefined)
}

// parameterName is the bound name, or the pattern text for destructuring.
func parameterName(p syntax.Parameter) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Node.Text()
}

// elementTypeName renders the element type of a rest parameter:
// ...names: string[] is string.
func elementTypeName(annotation *syntax.Node) string {
	if annotation == nil {
		return "any"
	}
	for _, t := range annotation.Children() {
		if t.Type() == "array_type" {
			if elements := t.Children(); len(elements) > 0 {
				return syntax.TypeName(elements[0])
			}
		}
	}
	return syntax.TypeName(annotation)
}

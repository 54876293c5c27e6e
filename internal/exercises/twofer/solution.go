package twofer

import (
	"tsanalyzer/internal/extract"
	"tsanalyzer/internal/syntax"
)

// solution caches the views of one submission for the length of one run.
type solution struct {
	root *syntax.Node

	mainMethod   *extract.MainMethod
	methodLoaded bool

	mainExport   *extract.Export
	exportLoaded bool
}

func newSolution(tree *syntax.Tree) *solution {
	return &solution{root: tree.Root()}
}

func (s *solution) method() *extract.MainMethod {
	if !s.methodLoaded {
		s.mainMethod = extract.FindMainMethod(s.root, mainMethodName)
		s.methodLoaded = true
	}
	return s.mainMethod
}

func (s *solution) export() *extract.Export {
	if !s.exportLoaded {
		s.mainExport = extract.DefaultExport(s.root)
		s.exportLoaded = true
	}
	return s.mainExport
}

// firstParameter returns the first declared parameter. ok is false for a
// parameterless method.
func (s *solution) firstParameter() (p syntax.Parameter, ok bool) {
	params := s.method().Parameters()
	if len(params) == 0 {
		return syntax.Parameter{}, false
	}
	return params[0], true
}

// isDefaultArgumentOptimal: name = 'you'
func (s *solution) isDefaultArgumentOptimal() bool {
	p, ok := s.firstParameter()
	if !ok {
		return false
	}
	if p.Shape == syntax.ShapeParameterProperty && p.Inner != nil {
		p = *p.Inner
	}
	if p.Shape != syntax.ShapeAssignment || !p.Default.Is(syntax.KindStringLiteral) {
		return false
	}
	value, _ := p.Default.StringValue()
	return value == sentinel
}

// isOneLineSolution measures the single return statement when the body is
// exactly that, so that comments around it do not count. Otherwise the whole
// method is measured. At most two line breaks are allowed:
//
//	1: static twoFer(name = 'you') {
//	2:   return ...
//	3: }
func (s *solution) isOneLineSolution() bool {
	m := s.method()
	measured := m.Node

	if body := m.Body(); body.Is(syntax.KindStatementBlock) {
		if stmts := body.Statements(); len(stmts) == 1 && stmts[0].Is(syntax.KindReturnStatement) {
			measured = stmts[0]
		}
	}
	return measured.EndLine()-measured.StartLine() <= 2
}

func (s *solution) templateLiteral() *syntax.Node {
	return extract.First(s.method().Node, syntax.KindTemplateLiteral)
}

func (s *solution) isUsingTemplatedString() bool {
	return s.templateLiteral() != nil
}

// hasThreeComponentsInTemplateLiteral: `One for ${name}, one for me.` is
// two quasis around one substitution.
func (s *solution) hasThreeComponentsInTemplateLiteral() bool {
	t, ok := s.templateLiteral().AsTemplate()
	return ok && t.Components() == 3
}

// falsyFallback finds the body supplying 'you' itself when the parameter is
// falsy, and returns the name of the tested identifier:
//
//	`One for ${name || 'you'}, one for me.`
//	`One for ${name ? name : 'you'}, one for me.`
//
// Only the first logical expression is considered; when it is an || on an
// identifier, ternaries are not inspected.
func (s *solution) falsyFallback() (string, bool) {
	m := s.method()

	if logical := extract.First(m.Node, syntax.KindLogicalExpression); logical != nil {
		bin, _ := logical.AsBinary()
		if bin.Operator == "||" && bin.Left.Is(syntax.KindIdentifier) {
			if isSentinel(bin.Right.Unwrap()) {
				return bin.Left.Text(), true
			}
			return "", false
		}
	}

	ternary := extract.First(m.Node, syntax.KindConditionalExpression)
	if ternary == nil {
		return "", false
	}
	c, _ := ternary.AsConditional()
	if c.Test.Is(syntax.KindIdentifier) && c.Consequent.Is(syntax.KindIdentifier) &&
		c.Consequent.Text() == c.Test.Text() && isSentinel(c.Alternate) {
		return c.Consequent.Text(), true
	}
	return "", false
}

// isSentinel matches 'you', "you" and templates starting with `you`.
func isSentinel(n *syntax.Node) bool {
	if n.Is(syntax.KindStringLiteral) {
		value, _ := n.StringValue()
		return value == sentinel
	}
	if t, ok := n.AsTemplate(); ok {
		return len(t.Quasis) > 0 && t.Quasis[0] == sentinel
	}
	return false
}

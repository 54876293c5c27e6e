package twofer

import "tsanalyzer/internal/comments"

var (
	OptimiseDefaultValue = comments.Factory(`
You currently use a conditional to branch in case there is no value passed in
to twoFer, but instead you could set the default value to 'you' to avoid
this conditional.
`)("typescript.two-fer.optimise_default_value", comments.Actionable)

	// The key spelling is shared with the externally maintained copy.
	OptimiseExplicitDefaultValue = comments.Factory(`
Instead of relying on ${maybe_undefined_expression} being "undefined" when
no value is passed in, you could set the default value of '${parameter}' to
'you'.
`, "parameter", "maybe_undefined_expression")("typescript.two-fer.optimise_explicity_default_value", comments.Actionable)

	RedirectIncorrectStringTemplate = comments.Factory(`
The string template looks incorrect. Expected a template with 3 components.
`)("typescript.two-fer.redirect_incorrect_string_template")
)

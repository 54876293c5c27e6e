package comments

import _ "embed"

// General comments shared by every exercise analyzer. The prose is kept in
// sync with the externally maintained copy under the same keys; renderers
// normally replace it with that copy.

var (
	//go:embed templates/unexpected_required_parameter.md
	unexpectedRequiredParameter string
	//go:embed templates/unexpected_boxed_type.md
	unexpectedBoxedType string
	//go:embed templates/prefer_explicit_return_type.md
	preferExplicitReturnType string
	//go:embed templates/prefer_unprefixed_underscore_parameters.md
	preferUnprefixedUnderscoreParameters string
	//go:embed templates/no_method.md
	noMethod string
	//go:embed templates/no_named_export.md
	noNamedExport string
	//go:embed templates/no_default_export.md
	noDefaultExport string
	//go:embed templates/no_parameter.md
	noParameter string
	//go:embed templates/unexpected_parameter.md
	unexpectedParameter string
	//go:embed templates/unexpected_splat_args.md
	unexpectedSplatArgs string
	//go:embed templates/prefer_templated_strings.md
	preferTemplatedStrings string
	//go:embed templates/prefer_strict_equality.md
	preferStrictEquality string
	//go:embed templates/parse_error.md
	parseError string
	//go:embed templates/prefer_const_over_let_and_var.md
	preferConstOverLetAndVar string
	//go:embed templates/error_captured_no_source.md
	errorCapturedNoSource string
	//go:embed templates/exemplar.md
	exemplar string
	//go:embed templates/function_not_optimal.md
	functionNotOptimal string
	//go:embed templates/signature_changed.md
	signatureChanged string
	//go:embed templates/replace_magic_with_identifier.md
	replaceMagicWithIdentifier string
	//go:embed templates/redirect_internal_error.md
	redirectInternalError string
)

var (
	UnexpectedRequiredParameter = Factory(unexpectedRequiredParameter, "parameter.name", "parameter.type")(
		"typescript.general.unexpected_required_parameter", Essential)

	UnexpectedBoxedType = Factory(unexpectedBoxedType, "boxed.type", "literal.type")(
		"typescript.general.unexpected_boxed_type", Essential)

	// PreferExplicitReturnType is advice only; it never blocks approval.
	PreferExplicitReturnType = Factory(preferExplicitReturnType, "signature")(
		"typescript.general.prefer_explicit_return_type", Informative)

	PreferUnprefixedUnderscoreParameters = Factory(preferUnprefixedUnderscoreParameters, "parameter.name")(
		"typescript.general.prefer_unprefixed_underscore_parameters", Actionable)

	NoMethod = Factory(noMethod, "method.name")(
		"typescript.general.no_method", Essential)

	NoNamedExport = Factory(noNamedExport, "export.name")(
		"typescript.general.no_named_export", Essential)

	NoDefaultExport = Factory(noDefaultExport)(
		"typescript.general.no_default_export", Essential)

	NoParameter = Factory(noParameter, "function.name")(
		"typescript.general.no_parameter", Essential)

	UnexpectedParameter = Factory(unexpectedParameter, "type")(
		"typescript.general.unexpected_parameter", Actionable)

	UnexpectedSplatArgs = Factory(unexpectedSplatArgs, "splat_arg.name", "parameter.type")(
		"typescript.general.unexpected_splat_args", Actionable)

	PreferTemplatedStrings = Factory(preferTemplatedStrings)(
		"typescript.general.prefer_templated_strings", Actionable)

	PreferStrictEquality = Factory(preferStrictEquality)(
		"typescript.general.prefer_strict_equality", Actionable)

	ParseError = Factory(parseError, "error", "details")(
		"typescript.generic.parse_error", Essential)

	PreferConstOverLetAndVar = Factory(preferConstOverLetAndVar, "kind", "name")(
		"typescript.generic.prefer_const_over_let_and_var", Informative)

	ErrorCapturedNoSource = Factory(errorCapturedNoSource, "expected", "available")(
		"typescript.general.error_captured_no_source", Essential)

	Exemplar = Factory(exemplar)(
		"typescript.general.exemplar", Celebratory)

	FunctionNotOptimal = Factory(functionNotOptimal, "function")(
		"typescript.general.function_not_optimal", Informative)

	SignatureChanged = Factory(signatureChanged)(
		"typescript.general.signature_changed", Informative)

	ReplaceMagicWithIdentifier = Factory(replaceMagicWithIdentifier, "literal", "identifier")(
		"typescript.general.replace_magic_with_identifier", Actionable)

	// RedirectInternalError accompanies a verdict that was forced because
	// the analyzer itself failed.
	RedirectInternalError = Factory(redirectInternalError, "error")(
		"typescript.general.redirect_internal_error", Essential)
)

// Shared lists the general comments in declaration order.
func Shared() []*Builder {
	return []*Builder{
		UnexpectedRequiredParameter,
		UnexpectedBoxedType,
		PreferExplicitReturnType,
		PreferUnprefixedUnderscoreParameters,
		NoMethod,
		NoNamedExport,
		NoDefaultExport,
		NoParameter,
		UnexpectedParameter,
		UnexpectedSplatArgs,
		PreferTemplatedStrings,
		PreferStrictEquality,
		ParseError,
		PreferConstOverLetAndVar,
		ErrorCapturedNoSource,
		Exemplar,
		FunctionNotOptimal,
		SignatureChanged,
		ReplaceMagicWithIdentifier,
		RedirectInternalError,
	}
}

package iobject

// StringifyOptions configures canonical text emission (§4.7).
type StringifyOptions struct {
	// Indent is not read by the stringifier: nested structures are always
	// emitted inline, whatever its value.
	Indent int
	// SkipErrors omits ErrorNode placeholders from emitted text instead
	// of rendering them as keyed error objects.
	SkipErrors bool
	// IncludeTypes annotates header schema members with their type.
	IncludeTypes bool
	// SchemaName selects which compiled schema governs positional
	// emission when stringifying a bare value (no Document in hand).
	SchemaName string
	// IncludeHeader emits the "~ key: value" definitions block.
	IncludeHeader bool
	// IncludeSectionNames emits "--- name" instead of a bare "---".
	IncludeSectionNames bool
	// SectionsFilter, when non-empty, restricts StringifyDocument to the
	// named sections, in the order given.
	SectionsFilter []string
	// DefinitionsFormat is reserved for future definitions renderings;
	// only the canonical format is implemented.
	DefinitionsFormat string
}

// DefaultStringifyOptions returns the spec's default rendering behavior.
func DefaultStringifyOptions() StringifyOptions {
	return StringifyOptions{
		SkipErrors:          true,
		IncludeHeader:       true,
		IncludeSectionNames: true,
		DefinitionsFormat:   "canonical",
	}
}

// ParseOptions bundles the tokenizer and parser knobs exposed through the
// public façade functions.
type ParseOptions struct {
	Tokenizer TokenizerOptions
	Parser    ParserOptions
}

// DefaultParseOptions returns the spec's default parsing behavior.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{Tokenizer: DefaultTokenizerOptions()}
}

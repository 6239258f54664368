package kscope

// DefaultMaxDepth is the expression nesting limit used when ParseOptions.MaxDepth is zero.
const DefaultMaxDepth = 256

// ParseOptions controls parsing behavior.
type ParseOptions struct {
	// MaxDepth limits expression nesting (parentheses and call arguments).
	// Zero selects DefaultMaxDepth; a negative value disables the limit.
	MaxDepth int
	// StrictNumbers rejects numeric literals with more than one '.' (e.g. "1.2.3").
	// By default the longest valid prefix is used.
	StrictNumbers bool
	// AllowDuplicateParams accepts prototypes that repeat a parameter name.
	AllowDuplicateParams bool
}

// FormatOptions controls writer formatting.
type FormatOptions struct {
	// Table resolves operator precedence when deciding where parentheses are needed
	// (default is DefaultTable).
	Table *Table
	// Indent is the indentation of a definition body placed on its own line
	// (default is four spaces).
	Indent string
	// BodyOnNewLine puts each definition body on its own indented line.
	BodyOnNewLine bool
}

// normalize normalizes the ParseOptions.
func (o *ParseOptions) normalize() ParseOptions {
	if o == nil {
		return ParseOptions{MaxDepth: DefaultMaxDepth}
	}

	out := *o
	if out.MaxDepth == 0 {
		out.MaxDepth = DefaultMaxDepth
	}

	return out
}

// normalize normalizes the FormatOptions.
func (o *FormatOptions) normalize() FormatOptions {
	if o == nil {
		return FormatOptions{Table: DefaultTable(), Indent: "    "}
	}

	out := *o
	if out.Table == nil {
		out.Table = DefaultTable()
	}
	if out.Indent == "" {
		out.Indent = "    "
	}

	return out
}

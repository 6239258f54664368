/*
Package kscope provides tokenizing, parsing, and formatting for a minimal
expression-oriented language made of function definitions, extern
declarations, and top-level expressions.

It focuses on a small, predictable front end: a stateful tokenizer over any
io.Reader, a recursive-descent parser that resolves binary operators by
precedence climbing against a configurable Table, and a writer that renders
the resulting AST back to canonical source or S-expressions.

Reader example:

	forms, err := kscope.DecodeFile("prog.ks", nil, nil)
	if err != nil {
		// handle error
	}

Incremental example (one form at a time, with recovery):

	p := kscope.NewParser(os.Stdin, kscope.DefaultTable(), nil)
	for {
		form, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			p.Skip()
			continue
		}
		_ = form
	}

Custom operator example:

	table := kscope.DefaultTable()
	table.Set('/', 300)
	e, err := kscope.ParseExpr("a / b + c", table)

Writer example:

	out, err := kscope.Format(forms, nil)
	if err != nil {
		// handle error
	}

Table validation example:

	issues := table.Validate()
	if len(issues) != 0 {
		// handle validation issues
	}
*/
package kscope

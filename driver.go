package kscope

import (
	"errors"
	"io"
)

// Driver runs the top-level read loop over a Parser: every form is handed
// to OnForm, every failure to OnError, and after a failure exactly one
// token is discarded before parsing resumes.
type Driver struct {
	Parser  *Parser           // Source of forms
	OnForm  func(Form) error  // Called for each parsed form; a returned error stops Run
	OnError func(error) error // Called for each parse failure; a returned error stops Run
}

// Run parses forms until end of input. It returns nil at end of input,
// the read error that ended the input, or the first error returned by a callback.
func (d *Driver) Run() error {
	for {
		f, err := d.Parser.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			// Read errors are not recoverable by skipping tokens.
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				return err
			}

			if d.OnError != nil {
				if cbErr := d.OnError(err); cbErr != nil {
					return cbErr
				}
			}
			d.Parser.Skip()
			continue
		}

		if d.OnForm != nil {
			if cbErr := d.OnForm(f); cbErr != nil {
				return cbErr
			}
		}
	}
}

// Collect parses all of r with recovery and returns the forms that parsed
// and the errors of those that did not, both in input order.
func Collect(r io.Reader, table *Table, opt *ParseOptions) ([]Form, []error) {
	var forms []Form
	var errs []error
	d := &Driver{
		Parser: NewParser(r, table, opt),
		OnForm: func(f Form) error {
			forms = append(forms, f)
			return nil
		},
		OnError: func(err error) error {
			errs = append(errs, err)
			return nil
		},
	}

	if err := d.Run(); err != nil {
		errs = append(errs, err)
	}

	return forms, errs
}

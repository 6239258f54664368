package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/woozymasta/kscope"
)

func newParseCmd(a *app) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse source and print every top-level form",
		Long: `Parse source files (or stdin) form by form. Each parsed form is printed;
each failure is reported and exactly one token is skipped before parsing
resumes, so later forms are still checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "sexpr" && format != "source" {
				return fmt.Errorf("unknown --format %q (want sexpr or source)", format)
			}

			out := cmd.OutOrStdout()
			stderr := cmd.ErrOrStderr()
			failures := 0

			err := eachInput(args, cmd.InOrStdin(), func(name string, r io.Reader) error {
				forms := 0
				d := &kscope.Driver{
					Parser: kscope.NewParser(r, a.table, a.parseOptions()),
					OnForm: func(f kscope.Form) error {
						forms++
						return printForm(out, f, format, a.formatOptions())
					},
					OnError: func(err error) error {
						failures++
						_, werr := fmt.Fprintln(stderr, a.style.diagnostic(name, err))
						return werr
					},
				}
				if err := d.Run(); err != nil {
					return err
				}

				a.log.Debug("parsed input", "name", name, "forms", forms)
				return nil
			})
			if err != nil {
				return err
			}

			if failures > 0 {
				return fmt.Errorf("%d parse error(s)", failures)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&format, "format", "f", "sexpr", "output format: sexpr or source")

	return c
}

// printForm writes one form as an S-expression or as canonical source.
func printForm(w io.Writer, f kscope.Form, format string, opt *kscope.FormatOptions) error {
	if format == "source" {
		return kscope.Encode(w, []kscope.Form{f}, opt)
	}

	_, err := fmt.Fprintln(w, kscope.SExpr(f))
	return err
}

package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/woozymasta/kscope"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file...]",
		Short: "Print the token stream of source",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			err := eachInput(args, cmd.InOrStdin(), func(name string, r io.Reader) error {
				tz := kscope.NewTokenizer(r)
				for {
					tok := tz.Next()
					if _, err := fmt.Fprintf(tw, "%s:%d:%d\t%s\t%s\n", name, tok.Line, tok.Col, tok.Kind, tok.Lit); err != nil {
						return err
					}
					if tok.Kind == kscope.TokEOF {
						return tz.Err()
					}
				}
			})
			if err != nil {
				return err
			}

			a.log.Debug("tokenized", "inputs", len(args))
			return tw.Flush()
		},
	}
}

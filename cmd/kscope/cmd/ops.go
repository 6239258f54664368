package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/woozymasta/kscope"
)

func newOpsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "Print the effective operator precedence table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, op := range a.table.Operators() {
				prec := a.table.Precedence(op)
				state := strconv.Itoa(prec)
				if prec == kscope.NotBinary {
					state = "disabled"
				}
				if _, err := fmt.Fprintf(tw, "%s\t%s\n", strconv.QuoteRune(op), state); err != nil {
					return err
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			for _, issue := range a.table.Validate() {
				if _, err := fmt.Fprintln(cmd.ErrOrStderr(), a.style.issue(issue)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/woozymasta/kscope"
)

func newFmtCmd(a *app) *cobra.Command {
	var write bool

	c := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Rewrite source in canonical form",
		Long: `Parse source and print it back with canonical spacing and only the
parentheses precedence requires. Comments are not preserved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && len(args) == 0 {
				return fmt.Errorf("--write needs file arguments")
			}

			return eachInput(args, cmd.InOrStdin(), func(name string, r io.Reader) error {
				forms, err := kscope.Decode(r, a.table, a.parseOptions())
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}

				out, err := kscope.Format(forms, a.formatOptions())
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}

				if !write || name == stdinName {
					_, err = cmd.OutOrStdout().Write(out)
					return err
				}

				old, err := os.ReadFile(name)
				if err == nil && bytes.Equal(old, out) {
					return nil
				}
				a.log.Debug("rewriting", "path", name)
				return kscope.EncodeFile(name, forms, a.formatOptions())
			})
		},
	}

	c.Flags().BoolVarP(&write, "write", "w", false, "write result to the source file instead of stdout")

	return c
}

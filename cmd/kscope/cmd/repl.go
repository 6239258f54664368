package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/woozymasta/kscope"
)

const (
	historyFile = ".kscope_history"
	promptMain  = "ready> "
)

// prompter reads one line of interactive input.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// lineReader adapts a prompter to io.Reader. A prompt is shown only when the
// parser needs more input, so one prompt may serve several forms and one
// form may span several prompts.
type lineReader struct {
	p      prompter
	prompt string
	buf    []byte
	onLine func(string)
}

// Read implements io.Reader.
func (r *lineReader) Read(b []byte) (int, error) {
	for len(r.buf) == 0 {
		// Ctrl-D, Ctrl-C (liner.ErrPromptAborted) and closed input all end the session.
		line, err := r.p.Prompt(r.prompt)
		if err != nil {
			return 0, io.EOF
		}
		if r.onLine != nil && strings.TrimSpace(line) != "" {
			r.onLine(line)
		}
		r.buf = append(r.buf, line...)
		r.buf = append(r.buf, '\n')
	}

	n := copy(b, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

func newReplCmd(a *app) *cobra.Command {
	var sexpr bool

	c := &cobra.Command{
		Use:   "repl",
		Short: "Read forms interactively and report how each one parsed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			histPath := ""
			if home, err := os.UserHomeDir(); err == nil {
				histPath = filepath.Join(home, historyFile)
				if f, err := os.Open(histPath); err == nil {
					_, _ = ln.ReadHistory(f)
					_ = f.Close()
				}
			}
			defer func() {
				if histPath == "" {
					return
				}
				if f, err := os.Create(histPath); err == nil {
					_, _ = ln.WriteHistory(f)
					_ = f.Close()
				}
			}()

			lr := &lineReader{p: ln, prompt: promptMain, onLine: ln.AppendHistory}
			return a.runRepl(lr, cmd.OutOrStdout(), cmd.ErrOrStderr(), sexpr)
		},
	}

	c.Flags().BoolVar(&sexpr, "sexpr", false, "print the S-expression of each parsed form")

	return c
}

// runRepl drives the parser over interactive input until end of input.
func (a *app) runRepl(r io.Reader, out, stderr io.Writer, sexpr bool) error {
	d := &kscope.Driver{
		Parser: kscope.NewParser(r, a.table, a.parseOptions()),
		OnForm: func(f kscope.Form) error {
			if _, err := fmt.Fprintln(out, a.style.render(a.style.ok, describeForm(f))); err != nil {
				return err
			}
			if sexpr {
				_, err := fmt.Fprintln(out, a.style.render(a.style.dim, kscope.SExpr(f)))
				return err
			}
			return nil
		},
		OnError: func(err error) error {
			a.log.Debug("skipping token after error", "error", err)
			_, werr := fmt.Fprintln(stderr, a.style.diagnostic("repl", err))
			return werr
		},
	}

	return d.Run()
}

// describeForm names the kind of a parsed form.
func describeForm(f kscope.Form) string {
	switch f := f.(type) {
	case *kscope.Prototype:
		return "Parsed an extern."
	case *kscope.Function:
		if f.IsTopLevelExpr() {
			return "Parsed a top-level expr."
		}
		return "Parsed a function definition."
	default:
		return "Parsed a form."
	}
}

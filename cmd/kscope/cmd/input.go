package cmd

import (
	"io"
	"os"
)

// stdinName labels diagnostics for standard input.
const stdinName = "<stdin>"

// eachInput calls fn for every file in args, or for stdin when args is
// empty or names "-".
func eachInput(args []string, stdin io.Reader, fn func(name string, r io.Reader) error) error {
	if len(args) == 0 {
		return fn(stdinName, stdin)
	}

	for _, path := range args {
		if path == "-" {
			if err := fn(stdinName, stdin); err != nil {
				return err
			}
			continue
		}

		if err := withFile(path, fn); err != nil {
			return err
		}
	}

	return nil
}

// withFile opens path and passes it to fn.
func withFile(path string, fn func(name string, r io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return fn(path, f)
}

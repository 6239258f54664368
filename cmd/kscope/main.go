package main

import (
	"os"

	"github.com/woozymasta/kscope/cmd/kscope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

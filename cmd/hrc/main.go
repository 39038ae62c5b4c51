package main

import (
	"fmt"
	"os"

	"github.com/hrops/hrc/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		code := cli.GetExitCode(err)
		// Failed envelopes are already rendered by the formatter; only
		// command errors still need printing here.
		if code != cli.ExitFailure {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(code)
	}
}

// Command script is the CLI host for pkg/script, grounded on the teacher's
// cmd/dwscript/cmd (a cobra root command with run/eval-style
// subcommands), scaled to this module's Compiler/Config surface.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

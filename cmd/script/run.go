package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/strandfield/libscript/pkg/script"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Compile and run a script file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		if err := e.RunFile(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return nil
	},
}

func newEngine() (*script.Engine, error) {
	if configPath == "" {
		return script.New()
	}
	f, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := script.LoadConfig(f)
	if err != nil {
		return nil, err
	}
	return script.NewWithConfig(*cfg)
}

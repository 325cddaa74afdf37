package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(evalCmd)
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a single expression and print its result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		result, err := e.Eval(args[0])
		if err != nil {
			return err
		}
		fmt.Println(formatValue(result))
		return nil
	},
}

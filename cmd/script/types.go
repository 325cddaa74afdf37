package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(typesCmd)
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the built-in classes and templates registered on a fresh engine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		var names []string
		for _, c := range e.Underlying().GlobalNamespace().Classes {
			names = append(names, c.Name())
		}
		for _, t := range e.Underlying().GlobalNamespace().Templates {
			names = append(names, t.Name()+"<T>")
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

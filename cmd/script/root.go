package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:     "script",
	Short:   "Embeddable C++-flavored scripting engine",
	Version: version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("script version %s (%s)\n", version, gitCommit))
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML engine config file")
}

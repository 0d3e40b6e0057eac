package main

import (
	"fmt"

	"github.com/jotkit/jot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("jot v%s\n", jot.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

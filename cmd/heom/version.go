package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openqs/heom"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of heom",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("heom version %s\n", heom.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

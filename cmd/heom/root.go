package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "heom",
	Short: "heom simulates open quantum systems with the hierarchical equations of motion",
	Long: `heom integrates the dynamics of a small quantum system coupled to bosonic
or fermionic environments, using a truncated hierarchy of auxiliary density
operators built from an exponential expansion of the bath correlations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openqs/heom/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document>",
	Short: "Check a simulation document without running it",
	Long: `Builds the baths and the hierarchy described by a simulation document and
reports its shape. Useful to catch parameter mistakes and to estimate the
hierarchy size before committing to a long run.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.Validate(args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

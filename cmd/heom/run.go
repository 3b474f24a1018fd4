package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openqs/heom/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run <document>",
	Short: "Run a simulation document and print the trajectory",
	Long: `Loads a YAML simulation document, integrates the hierarchy over the
configured time grid and prints the observable trajectories. With --csv the
trajectory is written to a file instead.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		csvPath, _ := cmd.Flags().GetString("csv")
		debug, _ := cmd.Flags().GetBool("debug")
		quiet, _ := cmd.Flags().GetBool("quiet")

		err := cli.Run(cli.RunOptions{
			Path:    args[0],
			CSVPath: csvPath,
			Debug:   debug,
			Quiet:   quiet,
		})
		if err != nil {
			fmt.Printf("Run failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("csv", "", "Write the trajectory to this CSV file")
	runCmd.Flags().Bool("debug", false, "Enable debug logging")
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress the run summary")
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cisasm",
	Short: "CIS assembler",
	Long:  `cisasm assembles table-driven instruction sets into Memory Initialization Files.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(assembleCmd)
}

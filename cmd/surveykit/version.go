package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgutt/surveykit"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the surveykit version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("surveykit %s\n", surveykit.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

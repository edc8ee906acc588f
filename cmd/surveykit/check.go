package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cgutt/surveykit"
)

var (
	checkID       string
	checkSource   string
	checkMaster   string
	checkExpected int
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a participant before extraction",
	Long: `Report whether a participant is already in the masterfile and whether
their folder holds the expected export files. Nothing is modified.`,
	Run: func(cmd *cobra.Command, args []string) {
		source := envDefault(checkSource, "SURVEYKIT_SOURCE")
		master := envDefault(checkMaster, "SURVEYKIT_MASTERFILE")
		if source == "" {
			fatal("Invalid input", fmt.Errorf("no source folder selected (--source)"))
		}
		if checkID == "" {
			fatal("Invalid input", fmt.Errorf("a participant id is required (--id)"))
		}

		service, err := surveykit.New(source,
			surveykit.WithMustExist(true),
			surveykit.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open source folder", err)
		}

		ctx := context.Background()

		report, err := service.Completeness(ctx, checkID, checkExpected)
		if err != nil {
			fatal("Error checking folder", err)
		}
		if report.Complete {
			fmt.Printf("%s: %d extract file(s), data complete\n", checkID, len(report.Files))
		} else {
			fmt.Printf("%s: incomplete data\n", checkID)
			for _, issue := range report.Issues {
				fmt.Printf("  - %s\n", issue)
			}
		}

		if master == "" {
			return
		}
		mf, err := surveykit.OpenMasterfile(master, surveykit.WithLogger(slog.Default()))
		if err != nil {
			fatal("Failed to open masterfile", err)
		}
		defer mf.Close()

		dup, err := service.CheckDuplicate(ctx, mf, checkID)
		if err != nil {
			fatal("Error checking masterfile", err)
		}
		if dup {
			fmt.Printf("%s is already present in %s\n", checkID, mf.Path())
		} else {
			fmt.Printf("%s is not yet in %s\n", checkID, mf.Path())
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkID, "id", "", "Participant ID")
	checkCmd.Flags().StringVar(&checkSource, "source", "", "Source folder holding participant folders (default $SURVEYKIT_SOURCE)")
	checkCmd.Flags().StringVar(&checkMaster, "master", "", "Masterfile path (default $SURVEYKIT_MASTERFILE)")
	checkCmd.Flags().IntVar(&checkExpected, "expected", 0, "Expected number of export files (0 disables the count check)")
}

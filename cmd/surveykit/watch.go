package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cgutt/surveykit"
	"github.com/cgutt/surveykit/pkg/adapters/folder"
	"github.com/cgutt/surveykit/pkg/core"
)

var (
	watchSource   string
	watchMaster   string
	watchExpected int
	watchExtract  bool
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the source folder for incoming export files",
	Long: `Observe participant folders under the source root and print every
export-file change as it happens. With --auto-extract, a participant whose
folder becomes complete is extracted into the masterfile immediately.
Stop with Ctrl-C.`,
	Run: func(cmd *cobra.Command, args []string) {
		source := envDefault(watchSource, "SURVEYKIT_SOURCE")
		master := envDefault(watchMaster, "SURVEYKIT_MASTERFILE")
		if source == "" {
			fatal("Invalid input", fmt.Errorf("no source folder selected (--source)"))
		}
		if watchExtract && master == "" {
			fatal("Invalid input", fmt.Errorf("--auto-extract requires a masterfile (--master)"))
		}

		service, err := surveykit.New(source,
			surveykit.WithMustExist(true),
			surveykit.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open source folder", err)
		}

		var mf surveykit.Masterfile
		if watchExtract {
			mf, err = surveykit.OpenMasterfile(master, surveykit.WithLogger(slog.Default()))
			if err != nil {
				fatal("Failed to open masterfile", err)
			}
			defer mf.Close()
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		events, err := service.Watch(ctx, folder.ExtractPattern)
		if err != nil {
			fatal("Failed to start watching", err)
		}

		fmt.Printf("Watching %s for export files (Ctrl-C to stop)...\n", source)
		for event := range events {
			fmt.Printf("[%s] %s: %s\n", event.Type, event.ParticipantID, event.File)
			if !watchExtract || event.Type == core.EventDelete {
				continue
			}
			autoExtract(ctx, service, mf, event.ParticipantID)
		}
		fmt.Println("Watch stopped.")
	},
}

// autoExtract appends the participant once their folder is complete.
// Duplicates and still-incomplete folders are left alone; watch mode
// keeps running whatever the outcome.
func autoExtract(ctx context.Context, service *core.Service, mf surveykit.Masterfile, id string) {
	dup, err := service.CheckDuplicate(ctx, mf, id)
	if err != nil || dup {
		return
	}
	report, err := service.Completeness(ctx, id, watchExpected)
	if err != nil || !report.Complete {
		return
	}
	if _, err := service.Extract(ctx, mf, id); err != nil {
		fmt.Printf("  extraction of %s failed: %v\n", id, err)
		return
	}
	fmt.Printf("  %s complete, extracted into %s\n", id, mf.Path())
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchSource, "source", "", "Source folder holding participant folders (default $SURVEYKIT_SOURCE)")
	watchCmd.Flags().StringVar(&watchMaster, "master", "", "Masterfile path (default $SURVEYKIT_MASTERFILE)")
	watchCmd.Flags().IntVar(&watchExpected, "expected", 0, "Extract files per participant before auto-extraction triggers")
	watchCmd.Flags().BoolVar(&watchExtract, "auto-extract", false, "Extract participants as soon as their folder is complete")
}

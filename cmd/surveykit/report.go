package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cgutt/surveykit"
)

var (
	reportSource   string
	reportExpected int
	reportSizes    bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report missing data across all participant folders",
	Long: `Scan every participant folder under the source root and list which
ones are missing export files. Useful before a batch extraction to see
how much data is still outstanding.`,
	Run: func(cmd *cobra.Command, args []string) {
		source := envDefault(reportSource, "SURVEYKIT_SOURCE")
		if source == "" {
			fatal("Invalid input", fmt.Errorf("no source folder selected (--source)"))
		}

		service, err := surveykit.New(source,
			surveykit.WithMustExist(true),
			surveykit.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open source folder", err)
		}

		report, err := service.MissingData(context.Background(), reportExpected)
		if err != nil {
			fatal("Error scanning folders", err)
		}

		fmt.Printf("Participants: %d complete, %d incomplete\n", report.Complete, report.Incomplete)
		for _, status := range report.Statuses {
			line := fmt.Sprintf("%s: %d extract file(s)", status.ParticipantID, len(status.Files))
			if !status.Complete {
				line += " - " + strings.Join(status.Issues, "; ")
			}
			if reportSizes {
				line += fmt.Sprintf(" (%s)", humanize.Bytes(folderSize(filepath.Join(source, status.ParticipantID))))
			}
			fmt.Println(line)
		}
	},
}

// folderSize sums regular-file sizes under dir. Errors are ignored; a
// partially readable folder still reports what it can.
func folderSize(dir string) uint64 {
	var total uint64
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += uint64(info.Size())
		}
		return nil
	})
	return total
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportSource, "source", "", "Source folder holding participant folders (default $SURVEYKIT_SOURCE)")
	reportCmd.Flags().IntVar(&reportExpected, "expected", 0, "Expected number of export files per participant")
	reportCmd.Flags().BoolVar(&reportSizes, "sizes", false, "Include per-participant folder sizes")
}

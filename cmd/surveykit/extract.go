package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cgutt/surveykit"
	"github.com/cgutt/surveykit/pkg/profile"
)

var (
	extID        string
	extBatch     string
	extIDsFile   string
	extSource    string
	extMaster    string
	extExpected  int
	extForce     bool
	extVersioned bool
	extDryRun    bool
	extProfile   string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract participant survey exports into the masterfile",
	Long: `Merge every export CSV in a participant folder into a single record
and append it to the masterfile. Participants already present in the
masterfile are skipped unless --force is set; participants with missing
export files are reported and skipped in batch mode.`,
	Run: func(cmd *cobra.Command, args []string) {
		source := envDefault(extSource, "SURVEYKIT_SOURCE")
		master := envDefault(extMaster, "SURVEYKIT_MASTERFILE")

		if extProfile != "" {
			p, err := profile.NewStore(profilesFile()).Load(extProfile)
			if err != nil {
				fatal("Failed to load profile", err)
			}
			if source == "" {
				source = p.SourcePath
			}
			if master == "" {
				master = p.MasterfilePath
			}
		}

		if source == "" {
			fatal("Invalid input", fmt.Errorf("no source folder selected (--source)"))
		}

		ids, err := gatherIDs(extID, extBatch, extIDsFile)
		if err != nil {
			fatal("Invalid input", err)
		}

		service, err := surveykit.New(source,
			surveykit.WithMustExist(true),
			surveykit.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open source folder", err)
		}

		ctx := context.Background()

		if extDryRun {
			for _, id := range ids {
				rec, err := service.Merge(ctx, id)
				if err != nil {
					fatal("Error merging extract data", err)
				}
				fmt.Printf("%s: %d fields\n", id, rec.Len())
				for _, key := range rec.Keys() {
					value, _ := rec.Get(key)
					fmt.Printf("  %s = %s\n", key, value)
				}
			}
			return
		}

		opts := []surveykit.Option{surveykit.WithLogger(slog.Default())}
		if extVersioned {
			opts = append(opts, surveykit.WithVersioning(true))
		}
		mf, err := surveykit.OpenMasterfile(master, opts...)
		if err != nil {
			fatal("Failed to open masterfile", err)
		}
		defer mf.Close()

		if len(ids) == 1 {
			id := ids[0]
			if !extForce {
				dup, err := service.CheckDuplicate(ctx, mf, id)
				if err != nil {
					fatal("Error checking masterfile", err)
				}
				if dup {
					fmt.Printf("%s is already in the masterfile, skipping (use --force to append anyway).\n", id)
					return
				}
			}
			report, err := service.Completeness(ctx, id, extExpected)
			if err != nil {
				fatal("Error checking folder", err)
			}
			if !report.Complete {
				fmt.Printf("Warning: %s has incomplete data: %s\n", id, strings.Join(report.Issues, "; "))
			}
			if _, err := service.Extract(ctx, mf, id); err != nil {
				fatal("Error extracting data", err)
			}
			fmt.Printf("Extracted %s into %s\n", id, mf.Path())
			return
		}

		printBatch("Extracted", service.ExtractBatch(ctx, mf, ids, extExpected, extForce))
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVar(&extID, "id", "", "Participant ID")
	extractCmd.Flags().StringVar(&extBatch, "batch", "", "Multiple participant IDs (comma or newline separated)")
	extractCmd.Flags().StringVar(&extIDsFile, "ids-file", "", "Import participant IDs from a .txt or .csv file")
	extractCmd.Flags().StringVar(&extSource, "source", "", "Source folder holding participant folders (default $SURVEYKIT_SOURCE)")
	extractCmd.Flags().StringVar(&extMaster, "master", "", "Masterfile path: .csv, .xlsx or .sqlite (default $SURVEYKIT_MASTERFILE)")
	extractCmd.Flags().IntVar(&extExpected, "expected", 0, "Expected number of export files per participant (0 disables the check)")
	extractCmd.Flags().BoolVar(&extForce, "force", false, "Append even when the participant is already in the masterfile")
	extractCmd.Flags().BoolVar(&extVersioned, "versioned", false, "Commit the masterfile to git after each append")
	extractCmd.Flags().BoolVar(&extDryRun, "dry-run", false, "Print the merged record without touching the masterfile")
	extractCmd.Flags().StringVar(&extProfile, "profile", "", "Load paths from a session profile")
}

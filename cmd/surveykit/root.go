package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cgutt/surveykit/pkg/core"
	"github.com/cgutt/surveykit/pkg/roster"
)

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "surveykit",
	Short: "Participant folder generation and survey data extraction for research studies",
	Long: `Surveykit manages the two halves of a study workflow:
it generates per-participant folders from questionnaire templates, and it
extracts per-survey CSV exports into a cumulative masterfile (CSV,
spreadsheet, or SQLite), with duplicate and completeness checks.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env defaults for SURVEYKIT_* variables; a missing file is fine.
		_ = godotenv.Load()

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// envDefault returns the flag value, or the environment variable when the
// flag was left empty.
func envDefault(value, envKey string) string {
	if value != "" {
		return value
	}
	return os.Getenv(envKey)
}

// gatherIDs resolves the participant ids for a command from the single
// --id flag, the --batch text, or an --ids-file import.
func gatherIDs(id, batch, idsFile string) ([]string, error) {
	switch {
	case idsFile != "":
		ids, err := roster.ImportFile(idsFile)
		if err != nil {
			return nil, fmt.Errorf("import participant list: %w", err)
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("no participant ids found in %s", idsFile)
		}
		return ids, nil
	case batch != "":
		ids := roster.Parse(batch)
		if len(ids) == 0 {
			return nil, fmt.Errorf("no participant ids in batch text")
		}
		return ids, nil
	case id != "":
		return []string{id}, nil
	default:
		return nil, fmt.Errorf("a participant id is required (--id, --batch, or --ids-file)")
	}
}

// buildSpecs assembles questionnaire specs from the parallel --survey,
// --template and --copies flags. Templates drive the count; missing
// names and copy counts fall back to their defaults.
func buildSpecs(surveys, templates []string, copies []int) []core.QuestionnaireSpec {
	specs := make([]core.QuestionnaireSpec, 0, len(templates))
	for i, tpl := range templates {
		spec := core.QuestionnaireSpec{Index: i, TemplatePath: tpl, CopyCount: 1}
		if i < len(surveys) {
			spec.Name = surveys[i]
		}
		if i < len(copies) {
			spec.CopyCount = copies[i]
		}
		specs = append(specs, spec)
	}
	return specs
}

// printBatch renders a batch result as a per-outcome summary.
func printBatch(verb string, result *core.BatchResult) {
	fmt.Printf("%s %d of %d participants successfully!\n", verb, len(result.Succeeded), result.Requested)
	if len(result.Duplicates) > 0 {
		fmt.Println("\nSkipped (already in masterfile):")
		for _, id := range result.Duplicates {
			fmt.Printf("  %s\n", id)
		}
	}
	if len(result.Incomplete) > 0 {
		fmt.Println("\nIncomplete data:")
		for _, entry := range result.Incomplete {
			fmt.Printf("  %s\n", entry)
		}
	}
	if len(result.Failed) > 0 {
		fmt.Println("\nFailed:")
		for _, entry := range result.Failed {
			fmt.Printf("  %s\n", entry)
		}
	}
}

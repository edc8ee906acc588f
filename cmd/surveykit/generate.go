package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cgutt/surveykit"
	"github.com/cgutt/surveykit/pkg/bundle"
	"github.com/cgutt/surveykit/pkg/core"
	"github.com/cgutt/surveykit/pkg/profile"
)

var (
	genID         string
	genBatch      string
	genIDsFile    string
	genTarget     string
	genSurveys    []string
	genTemplates  []string
	genCopies     []int
	genBundle     string
	genBundlesDir string
	genProfile    string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate participant folders from questionnaire templates",
	Long: `Create a fresh folder per participant and copy each questionnaire
template the requested number of times. An existing participant folder is
fully replaced. Templates come from repeated --template flags, a saved
template bundle, or a session profile.`,
	Run: func(cmd *cobra.Command, args []string) {
		target := envDefault(genTarget, "SURVEYKIT_TARGET")
		specs := buildSpecs(genSurveys, genTemplates, genCopies)

		if genProfile != "" {
			p, err := profile.NewStore(profilesFile()).Load(genProfile)
			if err != nil {
				fatal("Failed to load profile", err)
			}
			if target == "" {
				target = p.TargetPath
			}
			if len(specs) == 0 {
				specs = p.Questionnaires
			}
		}

		if genBundle != "" {
			b, err := bundle.NewStore(bundlesDir(genBundlesDir)).Load(genBundle)
			if err != nil {
				fatal("Failed to load template bundle", err)
			}
			specs = b.Questionnaires
		}

		if target == "" {
			fatal("Invalid input", fmt.Errorf("no target folder selected (--target)"))
		}
		if len(specs) == 0 {
			fatal("Invalid input", core.ErrNoQuestionnaires)
		}

		ids, err := gatherIDs(genID, genBatch, genIDsFile)
		if err != nil {
			fatal("Invalid input", err)
		}

		service, err := surveykit.New(target,
			surveykit.WithAutoInit(true),
			surveykit.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open target folder", err)
		}

		ctx := context.Background()

		if len(ids) == 1 {
			if err := service.Generate(ctx, ids[0], specs); err != nil {
				fatal("Error generating folder", err)
			}
			fmt.Printf("Participant folder created successfully!\n%s\n", filepath.Join(target, ids[0]))
			return
		}

		printBatch("Generated", service.GenerateBatch(ctx, ids, specs))
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&genID, "id", "", "Participant ID")
	generateCmd.Flags().StringVar(&genBatch, "batch", "", "Multiple participant IDs (comma or newline separated)")
	generateCmd.Flags().StringVar(&genIDsFile, "ids-file", "", "Import participant IDs from a .txt or .csv file")
	generateCmd.Flags().StringVar(&genTarget, "target", "", "Target folder (default $SURVEYKIT_TARGET)")
	generateCmd.Flags().StringArrayVar(&genSurveys, "survey", nil, "Survey name (repeatable, pairs with --template)")
	generateCmd.Flags().StringArrayVar(&genTemplates, "template", nil, "Template file path (repeatable)")
	generateCmd.Flags().IntSliceVar(&genCopies, "copies", nil, "Copy count per template (repeatable)")
	generateCmd.Flags().StringVar(&genBundle, "bundle", "", "Load questionnaires from a saved template bundle")
	generateCmd.Flags().StringVar(&genBundlesDir, "bundles-dir", "", "Template bundles directory (default $SURVEYKIT_BUNDLES or ./template_bundles)")
	generateCmd.Flags().StringVar(&genProfile, "profile", "", "Load paths and questionnaires from a session profile")
}

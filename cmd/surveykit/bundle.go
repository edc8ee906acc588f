package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cgutt/surveykit/pkg/bundle"
	"github.com/cgutt/surveykit/pkg/core"
)

var (
	bundleDir       string
	bundleSurveys   []string
	bundleTemplates []string
	bundleCopies    []int
)

// bundlesDir resolves the template bundles directory from the flag, the
// environment or the default location, in that order.
func bundlesDir(flag string) string {
	if dir := envDefault(flag, "SURVEYKIT_BUNDLES"); dir != "" {
		return dir
	}
	return "template_bundles"
}

// bundleCmd represents the bundle command group
var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Manage reusable questionnaire template bundles",
	Long: `A template bundle is a named set of questionnaire templates with copy
counts, stored as JSON. Saved bundles can be passed to generate via
--bundle instead of repeating --survey/--template flags.`,
}

var bundleSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a template bundle",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		specs := buildSpecs(bundleSurveys, bundleTemplates, bundleCopies)
		if len(specs) == 0 {
			fatal("Invalid input", core.ErrNoQuestionnaires)
		}
		store := bundle.NewStore(bundlesDir(bundleDir))
		if err := store.Save(bundle.Bundle{Name: args[0], Questionnaires: specs}); err != nil {
			fatal("Failed to save bundle", err)
		}
		fmt.Printf("Bundle %q saved (%d questionnaire(s))\n", args[0], len(specs))
	},
}

var bundleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved template bundles",
	Run: func(cmd *cobra.Command, args []string) {
		names, err := bundle.NewStore(bundlesDir(bundleDir)).List()
		if err != nil {
			fatal("Failed to list bundles", err)
		}
		if len(names) == 0 {
			fmt.Println("No bundles saved.")
			return
		}
		for _, name := range names {
			fmt.Println(name)
		}
	},
}

var bundleShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the questionnaires in a bundle",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		b, err := bundle.NewStore(bundlesDir(bundleDir)).Load(args[0])
		if err != nil {
			fatal("Failed to load bundle", err)
		}
		fmt.Printf("%s: %d questionnaire(s)\n", b.Name, b.QuestionnaireCount)
		for _, q := range b.Questionnaires {
			fmt.Printf("  %s: %s x%d\n", q.SurveyName(), q.TemplatePath, q.Copies())
		}
	},
}

var bundleDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved bundle",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := bundle.NewStore(bundlesDir(bundleDir))
		if !store.Exists(args[0]) {
			fmt.Fprintf(os.Stderr, "Bundle %q does not exist.\n", args[0])
			os.Exit(1)
		}
		if err := store.Delete(args[0]); err != nil {
			fatal("Failed to delete bundle", err)
		}
		fmt.Printf("Bundle %q deleted.\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(bundleCmd)
	bundleCmd.AddCommand(bundleSaveCmd, bundleListCmd, bundleShowCmd, bundleDeleteCmd)

	bundleCmd.PersistentFlags().StringVar(&bundleDir, "dir", "", "Bundles directory (default $SURVEYKIT_BUNDLES or ./template_bundles)")
	bundleSaveCmd.Flags().StringArrayVar(&bundleSurveys, "survey", nil, "Survey name (repeatable, pairs with --template)")
	bundleSaveCmd.Flags().StringArrayVar(&bundleTemplates, "template", nil, "Template file path (repeatable)")
	bundleSaveCmd.Flags().IntSliceVar(&bundleCopies, "copies", nil, "Copy count per template (repeatable)")
}

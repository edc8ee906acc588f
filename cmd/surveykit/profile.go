package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cgutt/surveykit/pkg/profile"
)

var (
	profFile   string
	profTarget string
	profSource string
	profMaster string
)

// profilesFile resolves the profiles file from the flag, the environment
// or the default location, in that order.
func profilesFile() string {
	if path := envDefault(profFile, "SURVEYKIT_PROFILES"); path != "" {
		return path
	}
	return "surveykit.yaml"
}

// profileCmd represents the profile command group
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage session profiles",
	Long: `A session profile pins the target folder, source folder and masterfile
for a study so they do not have to be passed on every invocation. The
generate and extract commands accept --profile to load one.`,
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a session profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := profile.Profile{
			TargetPath:     profTarget,
			SourcePath:     profSource,
			MasterfilePath: profMaster,
		}
		if err := profile.NewStore(profilesFile()).Save(args[0], p); err != nil {
			fatal("Failed to save profile", err)
		}
		fmt.Printf("Profile %q saved to %s\n", args[0], profilesFile())
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	Run: func(cmd *cobra.Command, args []string) {
		names, err := profile.NewStore(profilesFile()).List()
		if err != nil {
			fatal("Failed to list profiles", err)
		}
		if len(names) == 0 {
			fmt.Println("No profiles saved.")
			return
		}
		for _, name := range names {
			fmt.Println(name)
		}
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a saved profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := profile.NewStore(profilesFile()).Load(args[0])
		if err != nil {
			fatal("Failed to load profile", err)
		}
		fmt.Printf("%s:\n", args[0])
		fmt.Printf("  target:     %s\n", p.TargetPath)
		fmt.Printf("  source:     %s\n", p.SourcePath)
		fmt.Printf("  masterfile: %s\n", p.MasterfilePath)
		for _, q := range p.Questionnaires {
			fmt.Printf("  %s: %s x%d\n", q.SurveyName(), q.TemplatePath, q.Copies())
		}
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := profile.NewStore(profilesFile()).Delete(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete profile: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Profile %q deleted.\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSaveCmd, profileListCmd, profileShowCmd, profileDeleteCmd)

	profileCmd.PersistentFlags().StringVar(&profFile, "file", "", "Profiles file (default $SURVEYKIT_PROFILES or ./surveykit.yaml)")
	profileSaveCmd.Flags().StringVar(&profTarget, "target", "", "Target folder for generation")
	profileSaveCmd.Flags().StringVar(&profSource, "source", "", "Source folder for extraction")
	profileSaveCmd.Flags().StringVar(&profMaster, "master", "", "Masterfile path")
}

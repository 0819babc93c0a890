package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cfdroid",
	Short: "Terminal guide to the Cloudflare developer platform",
	Long: "CF Droid: browse free-tier services, take the knowledge check, " +
		"track your progress and ask the assistant, all from the terminal.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CFDROID_DB env var)")

	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(topicCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(troubleshootCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

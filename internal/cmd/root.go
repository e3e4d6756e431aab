// Package cmd holds the cobra commands of the dashboard binary.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Follow-up tasks due today",
	Long: `Shows the non-completed follow-up tasks due today and lets you mark
them complete. Runs an interactive terminal view by default.`,
	SilenceUsage: true,
	RunE:         runToday,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")

	rootCmd.Flags().BoolVar(&todayPlain, "plain", false, "print today's tasks once and exit")
}

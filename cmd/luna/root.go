package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "luna",
	Short: "Lunatask command line client",
	Long: `A CLI for the Lunatask task API.

The access token is read from --token, LUNATASK_ACCESS_TOKEN (also from a
.env file in the current directory) or access_token in ~/.lunatask/config.toml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Global flags
var (
	jsonOutput bool
	verbose    bool
	tokenFlag  string
	baseURL    string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log request failures to stderr")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Access token (overrides config and environment)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err, jsonOutput)
		os.Exit(ExitGeneralError)
	}
}

package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
)

var errUnreachable = errors.New("connection check failed")

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the API is reachable",
	Long:  `Check that the API answers and accepts the configured token.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c, _, err := getClient(true)
		if err != nil {
			handleError(cmd.ErrOrStderr(), err)
		}

		if !c.CheckConnection(context.Background()) {
			printError(cmd.ErrOrStderr(), errUnreachable, jsonOutput)
			os.Exit(ExitUnreachable)
		}

		printSuccess(cmd.OutOrStdout(), "pong", jsonOutput)
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

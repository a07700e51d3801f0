package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwootten/extractor/internal/api"
	"github.com/mwootten/extractor/internal/editor"
	"github.com/mwootten/extractor/internal/tui"
)

func init() {
	var editServerURL string

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive request editor",
		Long: `Open a terminal editor for building and submitting extraction requests.

The editor loads the request schema from a running server, then lets you
edit the request as a form or as raw JSON. Both views share one value, so
edits in either are reflected in the other.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(editServerURL)
			session, err := editor.NewSession(cmd.Context(), client)
			if err != nil {
				return fmt.Errorf("connecting to %s: %w", editServerURL, err)
			}
			return tui.Run(session)
		},
	}
	editCmd.Flags().StringVar(
		&editServerURL, "server", "http://localhost:8080", "Server URL",
	)

	rootCmd.AddCommand(editCmd)
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/anonto42/mediashare/backend/pkg/config"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mediactl",
		Short:         "Admin tasks for the mediashare backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
	)
	return cmd
}

// openDB connects with the same environment the server uses.
func openDB() (*config.DB, error) {
	return config.InitDB(config.Load())
}

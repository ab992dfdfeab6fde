package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := newCommandContext()

	rootCmd := &cobra.Command{
		Use:           "dedications",
		Short:         "Read and manage the dedication wall",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&ctx.configDir, "config-dir", ".", "Directory holding configs/ and .env")
	flags.StringVarP(&ctx.profile, "profile", "p", "", "Configuration profile (default $APP_ENVIRONMENT or local)")
	flags.StringVar(&ctx.backend, "storage", "", "Override the storage backend")
	flags.StringVar(&ctx.remote, "remote", "", "Base URL of a running dedication service; implies --storage remote")
	flags.BoolVarP(&ctx.verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newAddCommand(ctx))
	rootCmd.AddCommand(newDeleteCommand(ctx))
	rootCmd.AddCommand(newSongCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))

	return rootCmd
}
